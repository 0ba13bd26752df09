package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFocusSectionRotation(t *testing.T) {
	// 1970-01-01 has proleptic ordinal 719163, divisible by 3
	epoch := time.Date(1970, 1, 1, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "VARC", FocusSection(epoch))
	assert.Equal(t, "DILR", FocusSection(epoch.AddDate(0, 0, 1)))
	assert.Equal(t, "QA", FocusSection(epoch.AddDate(0, 0, 2)))
	assert.Equal(t, "VARC", FocusSection(epoch.AddDate(0, 0, 3)))
}

func TestFocusSectionStableWithinDay(t *testing.T) {
	morning := time.Date(2025, 11, 24, 0, 0, 1, 0, time.Local)
	night := time.Date(2025, 11, 24, 23, 59, 59, 0, time.Local)
	assert.Equal(t, FocusSection(morning), FocusSection(night))
	assert.Equal(t, "DILR", FocusSection(morning)) // ordinal 739579 % 3 == 1
}
