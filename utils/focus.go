package utils

import "time"

// Sections is the daily focus rotation, one section per calendar day.
var Sections = []string{"VARC", "DILR", "QA"}

// epochOrdinal is the proleptic Gregorian ordinal of 1970-01-01
// (day 1 being 0001-01-01).
const epochOrdinal = 719163

// FocusSection returns the focus section for t's local calendar date. The
// rotation is anchored to the date's ordinal, so it is stable across
// restarts and identical for every user on a given day.
func FocusSection(t time.Time) string {
	return Sections[dayOrdinal(t)%len(Sections)]
}

func dayOrdinal(t time.Time) int {
	tt := t.In(time.Local)
	unixDays := int(time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
	return unixDays + epochOrdinal
}
