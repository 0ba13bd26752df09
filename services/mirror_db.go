package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"preptrack/models"
)

// DBSink mirrors engine state into a relational database through GORM. The
// same sink works for Postgres and SQLite; the caller picks the dialector.
type DBSink struct {
	db *gorm.DB
}

func NewDBSink(db *gorm.DB) (*DBSink, error) {
	err := db.AutoMigrate(
		&models.Profile{},
		&models.GoalConfig{},
		&models.StudyEntry{},
		&models.MealEntry{},
	)
	if err != nil {
		return nil, err
	}
	return &DBSink{db: db}, nil
}

// SaveProfile upserts on user_id. OnConflict with UpdateAll keeps zero
// values, so a streak reset to 0 actually lands in the row.
func (s *DBSink) SaveProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(p).Error
}

func (s *DBSink) SaveGoal(ctx context.Context, g *models.GoalConfig) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(g).Error
}

func (s *DBSink) SaveStudyEntry(ctx context.Context, entry *models.StudyEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *DBSink) SaveMealEntry(ctx context.Context, entry *models.MealEntry) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *DBSink) LoadProfile(ctx context.Context, userID string) (models.Profile, models.GoalConfig, bool, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Profile{}, models.GoalConfig{}, false, nil
		}
		return models.Profile{}, models.GoalConfig{}, false, err
	}
	var g models.GoalConfig
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// a profile without its goal row is treated as never mirrored
			return models.Profile{}, models.GoalConfig{}, false, nil
		}
		return models.Profile{}, models.GoalConfig{}, false, err
	}
	return p, g, true, nil
}
