package models

import "time"

// Profile carries one visitor's gamification state plus the onboarding
// answers. MacroGoal is recorded as given and never evaluated against any
// target.
type Profile struct {
	UserID           string     `json:"user_id" gorm:"primaryKey;type:uuid"`
	Name             string     `json:"name"`
	ExamDate         string     `json:"exam_date"` // YYYY-MM-DD
	TargetPercentile int        `json:"target_percentile"`
	MacroGoal        string     `json:"macro_goal"` // "Cut" | "Bulk" | "Maintain"
	XP               int        `json:"xp"`
	Streak           int        `json:"streak"`
	StreakShields    int        `json:"streak_shields"`
	LastActive       *time.Time `json:"last_active"` // local day start; nil until the first qualifying action
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
