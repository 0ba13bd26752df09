package services

import (
	"context"
	"log/slog"
	"time"

	"preptrack/models"
)

// PersistenceSink mirrors engine state to durable storage. The engine is the
// source of truth: sinks are written to after the in-memory mutation commits,
// one attempt per write, and a failing sink never rolls anything back.
type PersistenceSink interface {
	SaveProfile(ctx context.Context, p *models.Profile) error
	SaveGoal(ctx context.Context, g *models.GoalConfig) error
	SaveStudyEntry(ctx context.Context, s *models.StudyEntry) error
	SaveMealEntry(ctx context.Context, m *models.MealEntry) error

	// LoadProfile restores a prior session's profile and goal. Returning
	// found=false means the sink holds nothing for this user.
	LoadProfile(ctx context.Context, userID string) (models.Profile, models.GoalConfig, bool, error)
}

// NopSink is the default when no mirror is configured.
type NopSink struct{}

func (NopSink) SaveProfile(context.Context, *models.Profile) error       { return nil }
func (NopSink) SaveGoal(context.Context, *models.GoalConfig) error       { return nil }
func (NopSink) SaveStudyEntry(context.Context, *models.StudyEntry) error { return nil }
func (NopSink) SaveMealEntry(context.Context, *models.MealEntry) error   { return nil }
func (NopSink) LoadProfile(context.Context, string) (models.Profile, models.GoalConfig, bool, error) {
	return models.Profile{}, models.GoalConfig{}, false, nil
}

// mirrorWrite runs one sink write and downgrades any failure to a warning.
func mirrorWrite(kind, userID string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		slog.Warn("mirror write failed", "kind", kind, "user_id", userID, "error", err)
	}
}
