package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"preptrack/models"
)

var (
	ErrNotOnboarded     = errors.New("session not onboarded")
	ErrAlreadyOnboarded = errors.New("session already onboarded")
	ErrUnknownPreset    = errors.New("unknown goal preset")
)

// SessionManager owns the visitor-to-engine registry. Engines are created at
// onboarding and lazily restored from the mirror for returning visitors.
type SessionManager struct {
	mu      sync.Mutex
	engines map[string]*ProgressEngine
	sink    PersistenceSink
}

func NewSessionManager(sink PersistenceSink) *SessionManager {
	if sink == nil {
		sink = NopSink{}
	}
	return &SessionManager{engines: make(map[string]*ProgressEngine), sink: sink}
}

type OnboardingInput struct {
	Name             string
	ExamDate         string
	TargetPercentile int
	MacroGoal        string
	GoalPreset       string
}

// Onboard creates the profile and goal config for a new visitor and returns
// the fresh engine. The profile starts with zero XP, zero streak, one shield
// and no last-active date.
func (m *SessionManager) Onboard(userID string, in OnboardingInput) (*ProgressEngine, error) {
	target, ok := models.GoalPresets[in.GoalPreset]
	if !ok {
		return nil, ErrUnknownPreset
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[userID]; exists {
		return nil, ErrAlreadyOnboarded
	}
	if _, _, found, err := m.loadMirror(userID); err == nil && found {
		return nil, ErrAlreadyOnboarded
	}

	now := time.Now()
	profile := models.Profile{
		UserID:           userID,
		Name:             in.Name,
		ExamDate:         in.ExamDate,
		TargetPercentile: in.TargetPercentile,
		MacroGoal:        in.MacroGoal,
		StreakShields:    StartingShields,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	goal := models.GoalConfig{
		UserID:             userID,
		DailyTargetMinutes: target,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	eng := NewProgressEngine(profile, goal, m.sink)
	m.engines[userID] = eng

	mirrorWrite("profile", userID, func(ctx context.Context) error { return m.sink.SaveProfile(ctx, &profile) })
	mirrorWrite("goal", userID, func(ctx context.Context) error { return m.sink.SaveGoal(ctx, &goal) })
	return eng, nil
}

// Attach returns the visitor's engine, restoring a mirrored session when the
// process has none in memory. A mirror that cannot be read is treated as
// empty so the engine layer never depends on it. Every attach runs the
// once-per-day gap check.
func (m *SessionManager) Attach(userID string) (*ProgressEngine, error) {
	m.mu.Lock()
	eng, ok := m.engines[userID]
	if !ok {
		profile, goal, found, err := m.loadMirror(userID)
		if err != nil {
			slog.Warn("mirror load failed", "user_id", userID, "error", err)
			m.mu.Unlock()
			return nil, ErrNotOnboarded
		}
		if !found || goal.DailyTargetMinutes <= 0 {
			m.mu.Unlock()
			return nil, ErrNotOnboarded
		}
		eng = NewProgressEngine(profile, goal, m.sink)
		m.engines[userID] = eng
	}
	m.mu.Unlock()

	eng.EnsureGapCheck(time.Now())
	return eng, nil
}

func (m *SessionManager) loadMirror(userID string) (models.Profile, models.GoalConfig, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.sink.LoadProfile(ctx, userID)
}
