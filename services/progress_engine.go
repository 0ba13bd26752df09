package services

import (
	"context"
	"sync"
	"time"

	"preptrack/models"
)

// XP tuning. Every study minute is worth XPPerMinute; a logged meal earns the
// flat MealBonus regardless of size or macros.
const (
	XPPerMinute     = 1
	MealBonus       = 5
	StartingShields = 1
)

// GapOutcome reports what the session-start gap check did to the streak.
type GapOutcome int

const (
	GapNone       GapOutcome = iota // no gap, or nothing to protect yet
	GapShielded                     // one shield consumed, streak kept
	GapStreakLost                   // no shields left, streak reset
)

// ProgressEngine owns one visitor's state: profile, goal config and the two
// append-only logs. All mutation goes through its methods; the mutex makes
// each interaction run to completion before the next one starts. Mirror
// writes are attempted at most once per mutation and never fail the caller.
type ProgressEngine struct {
	mu           sync.Mutex
	profile      models.Profile
	goal         models.GoalConfig
	studyLog     []models.StudyEntry
	mealLog      []models.MealEntry
	celebratedOn string // day key of the last goal celebration
	gapCheckedOn string // day key of the last missed-day check

	sink PersistenceSink
}

func NewProgressEngine(profile models.Profile, goal models.GoalConfig, sink PersistenceSink) *ProgressEngine {
	if sink == nil {
		sink = NopSink{}
	}
	return &ProgressEngine{profile: profile, goal: goal, sink: sink}
}

// RecordStudyMinutes appends a study entry for the given day, awards XP and
// advances the streak. minutes must be positive; callers validate input
// before invoking.
func (e *ProgressEngine) RecordStudyMinutes(minutes int, on time.Time) models.StudyEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := dayStart(on)
	entry := models.StudyEntry{UserID: e.profile.UserID, Date: day, Minutes: minutes}
	e.studyLog = append(e.studyLog, entry)
	e.profile.XP += minutes * XPPerMinute
	e.advanceStreak(day)

	mirrorWrite("study_entry", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveStudyEntry(ctx, &entry) })
	mirrorWrite("profile", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveProfile(ctx, &e.profile) })
	return entry
}

// RecordMeal appends the meal, awards the flat bonus and advances the streak
// using the entry's date.
func (e *ProgressEngine) RecordMeal(entry models.MealEntry) models.MealEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry.UserID = e.profile.UserID
	entry.Date = dayStart(entry.Date)
	e.mealLog = append(e.mealLog, entry)
	e.profile.XP += MealBonus
	e.advanceStreak(entry.Date)

	mirrorWrite("meal_entry", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveMealEntry(ctx, &entry) })
	mirrorWrite("profile", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveProfile(ctx, &e.profile) })
	return entry
}

// MinutesLoggedOn sums the study minutes logged for one calendar day.
func (e *ProgressEngine) MinutesLoggedOn(day time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.minutesLoggedOn(dayStart(day))
}

func (e *ProgressEngine) minutesLoggedOn(day time.Time) int {
	total := 0
	for _, s := range e.studyLog {
		if s.Date.Equal(day) {
			total += s.Minutes
		}
	}
	return total
}

// GoalProgressPercent reports how much of the daily target is done, floored
// to a whole percent and capped at 100.
func (e *ProgressEngine) GoalProgressPercent(day time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.goalProgressPercent(dayStart(day))
}

func (e *ProgressEngine) goalProgressPercent(day time.Time) int {
	// target is always positive by construction, so plain integer division
	pct := e.minutesLoggedOn(day) * 100 / e.goal.DailyTargetMinutes
	if pct > 100 {
		pct = 100
	}
	return pct
}

// advanceStreak bumps the streak at most once per calendar day. Any action on
// a later day counts as the ordinary advance, including the first action
// after a shield-forgiven gap; earlier days never rewind last-active.
func (e *ProgressEngine) advanceStreak(day time.Time) {
	if e.profile.LastActive != nil && !day.After(*e.profile.LastActive) {
		return
	}
	e.profile.Streak++
	d := day
	e.profile.LastActive = &d
}

// ApplyGapCheck runs the missed-day rule. A gap longer than one day consumes
// a shield when one is available (streak kept, last-active untouched until
// the next qualifying action) and resets the streak otherwise.
func (e *ProgressEngine) ApplyGapCheck(today time.Time) GapOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyGapCheck(dayStart(today))
}

// EnsureGapCheck applies the missed-day rule at most once per calendar day.
// With a long-lived process the first request of each day stands in for a
// session start; later requests that day are no-ops.
func (e *ProgressEngine) EnsureGapCheck(today time.Time) GapOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	day := dayStart(today)
	key := day.Format("2006-01-02")
	if e.gapCheckedOn == key {
		return GapNone
	}
	e.gapCheckedOn = key
	return e.applyGapCheck(day)
}

func (e *ProgressEngine) applyGapCheck(day time.Time) GapOutcome {
	if e.profile.LastActive == nil {
		return GapNone
	}
	if daysBetween(*e.profile.LastActive, day) <= 1 {
		return GapNone
	}
	if e.profile.StreakShields > 0 {
		e.profile.StreakShields--
		mirrorWrite("profile", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveProfile(ctx, &e.profile) })
		EmitEvent(e.profile.UserID, "streak.shielded", map[string]any{
			"streak":       e.profile.Streak,
			"shields_left": e.profile.StreakShields,
		})
		return GapShielded
	}
	lost := e.profile.Streak
	e.profile.Streak = 0
	mirrorWrite("profile", e.profile.UserID, func(ctx context.Context) error { return e.sink.SaveProfile(ctx, &e.profile) })
	EmitEvent(e.profile.UserID, "streak.lost", map[string]any{"lost_streak": lost})
	return GapStreakLost
}

// CelebrateGoalIfMet flips the daily celebration gate: true exactly once per
// calendar day, the first time the goal sits at 100% after a study
// recording. The per-day key resets the gate when the date changes.
func (e *ProgressEngine) CelebrateGoalIfMet(day time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	d := dayStart(day)
	key := d.Format("2006-01-02")
	if e.celebratedOn == key {
		return false
	}
	if e.goalProgressPercent(d) < 100 {
		return false
	}
	e.celebratedOn = key
	EmitEvent(e.profile.UserID, "goal.completed", map[string]any{
		"goal_minutes": e.goal.DailyTargetMinutes,
		"minutes":      e.minutesLoggedOn(d),
	})
	return true
}

// CelebratedToday reads the gate without flipping it.
func (e *ProgressEngine) CelebratedToday(day time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.celebratedOn == dayStart(day).Format("2006-01-02")
}

// DayMinutes is one bucket of the weekly overview.
type DayMinutes struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// WeeklyStudyMinutes returns the last seven days of study minutes, oldest
// first, zero-filled for days without entries.
func (e *ProgressEngine) WeeklyStudyMinutes(today time.Time) []DayMinutes {
	e.mu.Lock()
	defer e.mu.Unlock()

	end := dayStart(today)
	out := make([]DayMinutes, 0, 7)
	for i := 6; i >= 0; i-- {
		d := end.AddDate(0, 0, -i)
		out = append(out, DayMinutes{Date: d.Format("2006-01-02"), Minutes: e.minutesLoggedOn(d)})
	}
	return out
}

// Snapshot returns copies of the profile and goal for display. Mutation still
// only happens through the recording methods.
func (e *ProgressEngine) Snapshot() (models.Profile, models.GoalConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.profile, e.goal
}

// Meals returns the session meal log, newest first.
func (e *ProgressEngine) Meals() []models.MealEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.MealEntry, len(e.mealLog))
	for i, m := range e.mealLog {
		out[len(e.mealLog)-1-i] = m
	}
	return out
}

// dayStart truncates to local midnight, the engine's calendar-day unit.
func dayStart(t time.Time) time.Time {
	tt := t.In(time.Local)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
}

// daysBetween counts whole calendar days from a to b, DST-safe.
func daysBetween(a, b time.Time) int {
	return calendarDay(b) - calendarDay(a)
}

func calendarDay(t time.Time) int {
	tt := t.In(time.Local)
	return int(time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
