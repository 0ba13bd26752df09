package models

import "time"

// GoalConfig holds the daily study target in minutes, chosen once at
// onboarding and immutable for the rest of the session.
type GoalConfig struct {
	UserID             string    `json:"user_id" gorm:"primaryKey;type:uuid"`
	DailyTargetMinutes int       `json:"daily_target_minutes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// GoalPresets are the selectable daily targets.
var GoalPresets = map[string]int{
	"Light":   45,
	"Regular": 60,
	"Intense": 90,
}
