package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"preptrack/models"
)

// onDay returns a mid-morning instant n days after the fixed base date, so
// streak scenarios can walk the calendar explicitly.
func onDay(n int) time.Time {
	return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local).AddDate(0, 0, n)
}

func testEngine(shields, target int) *ProgressEngine {
	profile := models.Profile{UserID: "u-test", Name: "Asha", StreakShields: shields}
	goal := models.GoalConfig{UserID: "u-test", DailyTargetMinutes: target}
	return NewProgressEngine(profile, goal, nil)
}

func TestStudyAwardsXPAndAdvancesStreak(t *testing.T) {
	e := testEngine(1, 60)

	entry := e.RecordStudyMinutes(30, onDay(0))
	assert.Equal(t, 30, entry.Minutes)
	assert.Equal(t, "u-test", entry.UserID)

	profile, _ := e.Snapshot()
	assert.Equal(t, 30, profile.XP)
	assert.Equal(t, 1, profile.Streak)
	assert.NotNil(t, profile.LastActive)
	assert.Equal(t, 30, e.MinutesLoggedOn(onDay(0)))
}

func TestStreakBumpsOncePerDay(t *testing.T) {
	e := testEngine(1, 60)

	e.RecordStudyMinutes(30, onDay(0))
	e.RecordStudyMinutes(45, onDay(0))
	e.RecordMeal(models.MealEntry{Date: onDay(0), Item: "Oats"})

	profile, _ := e.Snapshot()
	assert.Equal(t, 1, profile.Streak)
	assert.Equal(t, 80, profile.XP) // 30 + 45 + meal bonus
	assert.Equal(t, 75, e.MinutesLoggedOn(onDay(0)))
}

func TestMealAwardsFlatBonus(t *testing.T) {
	e := testEngine(1, 60)

	entry := e.RecordMeal(models.MealEntry{Date: onDay(0), Item: "Eggs", Calories: 200, Protein: 12})
	assert.Equal(t, "Eggs", entry.Item)
	assert.Equal(t, "u-test", entry.UserID)

	profile, _ := e.Snapshot()
	assert.Equal(t, MealBonus, profile.XP)
	assert.Equal(t, 1, profile.Streak)
}

func TestGoalProgressPercent(t *testing.T) {
	e := testEngine(1, 90)
	assert.Equal(t, 0, e.GoalProgressPercent(onDay(0)))
	e.RecordStudyMinutes(30, onDay(0))
	assert.Equal(t, 33, e.GoalProgressPercent(onDay(0))) // floored, not rounded

	e = testEngine(1, 60)
	e.RecordStudyMinutes(30, onDay(0))
	assert.Equal(t, 50, e.GoalProgressPercent(onDay(0)))
	e.RecordStudyMinutes(60, onDay(0))
	assert.Equal(t, 100, e.GoalProgressPercent(onDay(0))) // capped at 100
}

func TestStreakAdvancesAcrossDays(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(0))
	e.RecordStudyMinutes(10, onDay(1))
	e.RecordMeal(models.MealEntry{Date: onDay(2), Item: "Dal"})

	profile, _ := e.Snapshot()
	assert.Equal(t, 3, profile.Streak)
}

func TestPastDatedEntryDoesNotRewindStreak(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(2))

	before, _ := e.Snapshot()
	e.RecordStudyMinutes(20, onDay(0)) // backfill for an earlier day

	after, _ := e.Snapshot()
	assert.Equal(t, before.Streak, after.Streak)
	assert.Equal(t, *before.LastActive, *after.LastActive)
	assert.Equal(t, 30, after.XP) // minutes still count
	assert.Equal(t, 20, e.MinutesLoggedOn(onDay(0)))
}

func TestGapCheckFreshProfile(t *testing.T) {
	e := testEngine(1, 60)
	assert.Equal(t, GapNone, e.ApplyGapCheck(onDay(0)))

	profile, _ := e.Snapshot()
	assert.Equal(t, 0, profile.Streak)
	assert.Nil(t, profile.LastActive)
	assert.Equal(t, 1, profile.StreakShields)
}

func TestGapCheckOneDayGap(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(0))

	assert.Equal(t, GapNone, e.ApplyGapCheck(onDay(1)))
	profile, _ := e.Snapshot()
	assert.Equal(t, 1, profile.Streak)
	assert.Equal(t, 1, profile.StreakShields)
}

func TestGapCheckConsumesShield(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(0))

	assert.Equal(t, GapShielded, e.ApplyGapCheck(onDay(2)))
	profile, _ := e.Snapshot()
	assert.Equal(t, 1, profile.Streak)
	assert.Equal(t, 0, profile.StreakShields)

	// the next action continues the protected streak
	e.RecordStudyMinutes(10, onDay(2))
	profile, _ = e.Snapshot()
	assert.Equal(t, 2, profile.Streak)
}

func TestGapCheckResetsStreakWithoutShield(t *testing.T) {
	e := testEngine(0, 60)
	e.RecordStudyMinutes(10, onDay(0))
	e.RecordStudyMinutes(10, onDay(1))

	assert.Equal(t, GapStreakLost, e.ApplyGapCheck(onDay(3)))
	profile, _ := e.Snapshot()
	assert.Equal(t, 0, profile.Streak)

	// a fresh streak starts from the next action
	e.RecordStudyMinutes(10, onDay(3))
	profile, _ = e.Snapshot()
	assert.Equal(t, 1, profile.Streak)
}

func TestEnsureGapCheckRunsOncePerDay(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(0))
	e.RecordStudyMinutes(10, onDay(1))

	assert.Equal(t, GapShielded, e.EnsureGapCheck(onDay(4)))
	assert.Equal(t, GapNone, e.EnsureGapCheck(onDay(4))) // same day, no second check

	profile, _ := e.Snapshot()
	assert.Equal(t, 2, profile.Streak)
	assert.Equal(t, 0, profile.StreakShields)

	// a later day re-checks; with no shield left the streak resets
	assert.Equal(t, GapStreakLost, e.EnsureGapCheck(onDay(6)))
	profile, _ = e.Snapshot()
	assert.Equal(t, 0, profile.Streak)
}

func TestCelebrationFiresOncePerDay(t *testing.T) {
	e := testEngine(1, 45)
	e.RecordStudyMinutes(45, onDay(0))

	assert.True(t, e.CelebrateGoalIfMet(onDay(0)))
	assert.False(t, e.CelebrateGoalIfMet(onDay(0)))

	e.RecordStudyMinutes(30, onDay(0)) // overshooting does not re-trigger
	assert.False(t, e.CelebrateGoalIfMet(onDay(0)))
	assert.True(t, e.CelebratedToday(onDay(0)))
}

func TestCelebrationRequiresFullGoal(t *testing.T) {
	e := testEngine(1, 45)
	e.RecordStudyMinutes(44, onDay(0))
	assert.False(t, e.CelebrateGoalIfMet(onDay(0)))
	assert.False(t, e.CelebratedToday(onDay(0)))
}

func TestCelebrationGateResetsNextDay(t *testing.T) {
	e := testEngine(1, 45)
	e.RecordStudyMinutes(45, onDay(0))
	assert.True(t, e.CelebrateGoalIfMet(onDay(0)))

	e.RecordStudyMinutes(45, onDay(1))
	assert.True(t, e.CelebrateGoalIfMet(onDay(1)))
}

func TestWeeklyStudyMinutesBuckets(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordStudyMinutes(10, onDay(0))
	e.RecordStudyMinutes(20, onDay(2))
	e.RecordStudyMinutes(30, onDay(6))

	days := e.WeeklyStudyMinutes(onDay(6))
	assert.Len(t, days, 7)
	assert.Equal(t, dayStart(onDay(0)).Format("2006-01-02"), days[0].Date)
	assert.Equal(t, 10, days[0].Minutes)
	assert.Equal(t, 0, days[1].Minutes)
	assert.Equal(t, 20, days[2].Minutes)
	assert.Equal(t, 30, days[6].Minutes)
}

func TestMealsNewestFirst(t *testing.T) {
	e := testEngine(1, 60)
	e.RecordMeal(models.MealEntry{Date: onDay(0), Item: "Poha"})
	e.RecordMeal(models.MealEntry{Date: onDay(0), Item: "Chicken"})

	meals := e.Meals()
	assert.Len(t, meals, 2)
	assert.Equal(t, "Chicken", meals[0].Item)
	assert.Equal(t, "Poha", meals[1].Item)
}

type failingSink struct{}

var errSinkDown = errors.New("sink down")

func (failingSink) SaveProfile(context.Context, *models.Profile) error       { return errSinkDown }
func (failingSink) SaveGoal(context.Context, *models.GoalConfig) error       { return errSinkDown }
func (failingSink) SaveStudyEntry(context.Context, *models.StudyEntry) error { return errSinkDown }
func (failingSink) SaveMealEntry(context.Context, *models.MealEntry) error   { return errSinkDown }
func (failingSink) LoadProfile(context.Context, string) (models.Profile, models.GoalConfig, bool, error) {
	return models.Profile{}, models.GoalConfig{}, false, errSinkDown
}

func TestMirrorFailureDoesNotBlockMutations(t *testing.T) {
	profile := models.Profile{UserID: "u-test", StreakShields: 1}
	goal := models.GoalConfig{UserID: "u-test", DailyTargetMinutes: 60}
	e := NewProgressEngine(profile, goal, failingSink{})

	e.RecordStudyMinutes(30, onDay(0))
	e.RecordMeal(models.MealEntry{Date: onDay(0), Item: "Rice"})
	assert.Equal(t, GapShielded, e.ApplyGapCheck(onDay(2)))

	got, _ := e.Snapshot()
	assert.Equal(t, 35, got.XP)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 0, got.StreakShields)
}
