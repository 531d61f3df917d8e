package services

import (
	"fmt"
	"log"
	"time"

	"studyplanner/internal/models"
)

// streakWarningHour is the local hour from which an unextended streak is
// considered at risk
const streakWarningHour = 20

// StreakService owns the login-streak state machine and the evening
// streak-risk warning.
type StreakService struct {
	streaks       StreakStore
	notifications NotificationStore
	now           func() time.Time
}

// NewStreakService creates a streak tracker backed by the given stores
func NewStreakService(streaks StreakStore, notifications NotificationStore) *StreakService {
	return &StreakService{
		streaks:       streaks,
		notifications: notifications,
		now:           time.Now,
	}
}

// Login applies the streak transition for a successful authentication and
// returns the new streak value. A repeat login on the same day changes
// nothing; a login one day after the last extends the streak; any longer
// gap, or a first login, resets it to 1.
func (s *StreakService) Login(userID uint) (int, error) {
	state, err := s.streaks.StreakState(userID)
	if err != nil {
		return 0, fmt.Errorf("load streak state: %w", err)
	}

	today := startOfDay(s.now())
	yesterday := today.AddDate(0, 0, -1)

	streak := state.CurrentStreak
	switch {
	case state.LastLogin != nil && sameDay(*state.LastLogin, today):
		// Already logged in today, no change.
	case state.LastLogin != nil && sameDay(*state.LastLogin, yesterday):
		streak++
	default:
		streak = 1
	}

	if err := s.streaks.SaveStreakState(userID, today, streak); err != nil {
		return 0, fmt.Errorf("save streak state: %w", err)
	}

	// Seed today's calendar row; a separate activity-logging path flips
	// studied to true later. Not part of the streak transition itself.
	if err := s.streaks.UpsertDailyActivity(userID, today); err != nil {
		log.Printf("Warning: failed to upsert daily activity for user %d: %v", userID, err)
	}

	return streak, nil
}

// EvaluateRisk writes at most one streak warning per day, and only when the
// streak is alive (last login was yesterday, not yet extended today) and
// local time has passed the warning hour. Called from the hourly sweep.
func (s *StreakService) EvaluateRisk(userID uint) error {
	state, err := s.streaks.StreakState(userID)
	if err != nil {
		return fmt.Errorf("load streak state: %w", err)
	}
	if state.LastLogin == nil {
		return nil
	}

	now := s.now()
	today := startOfDay(now)
	if !sameDay(*state.LastLogin, today.AddDate(0, 0, -1)) {
		return nil
	}
	if now.Hour() < streakWarningHour {
		return nil
	}

	warned, err := s.notifications.HasNotificationSince(userID, models.KindStreakWarning, today)
	if err != nil {
		return fmt.Errorf("check existing streak warning: %w", err)
	}
	if warned {
		return nil
	}

	message := fmt.Sprintf("Streak Risk! You have %d hours left to login and save your %d day streak!",
		24-now.Hour(), state.CurrentStreak)

	return s.notifications.AddNotification(&models.Notification{
		UserID:   userID,
		Kind:     models.KindStreakWarning,
		Message:  message,
		Priority: models.PriorityHigh,
	})
}
