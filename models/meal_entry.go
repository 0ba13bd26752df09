package models

import "time"

// MealEntry is one logged meal with its macro snapshot. Append-only; the
// macros are stored for display and never scored against a target.
type MealEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;type:uuid"`
	Date      time.Time `json:"date" gorm:"index"` // local day start
	Item      string    `json:"item" gorm:"not null"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	CreatedAt time.Time `json:"created_at"`
}
