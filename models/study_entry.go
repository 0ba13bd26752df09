package models

import "time"

// StudyEntry is one logged block of study time. Entries are append-only;
// several entries on the same date are summed by the queries.
type StudyEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;type:uuid"`
	Date      time.Time `json:"date" gorm:"index"` // local day start
	Minutes   int       `json:"minutes"`
	CreatedAt time.Time `json:"created_at"`
}
