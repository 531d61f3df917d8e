package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"studyplanner/internal/models"
)

// socialReminderDelay is how far in the future the nudge reminder is
// scheduled so it rides the standard due-reminder pipeline
const socialReminderDelay = 10 * time.Second

// SocialService generates at most one leaderboard-comparison nudge per user
// per calendar day.
type SocialService struct {
	notifications NotificationStore
	leaderboard   Leaderboard
	now           func() time.Time
}

// NewSocialService creates a social nudge generator
func NewSocialService(notifications NotificationStore, leaderboard Leaderboard) *SocialService {
	return &SocialService{
		notifications: notifications,
		leaderboard:   leaderboard,
		now:           time.Now,
	}
}

// Check writes a social nudge if none exists today and the requesting user
// is not already the leaderboard leader. The notification row is the
// durable record; the companion reminder only drives toast/popup delivery.
func (s *SocialService) Check(userID uint) error {
	today := startOfDay(s.now())

	nudged, err := s.notifications.HasNotificationSince(userID, models.KindSocial, today)
	if err != nil {
		return fmt.Errorf("check existing social nudge: %w", err)
	}
	if nudged {
		return nil
	}

	leaders, err := s.leaderboard.TopEntries(1)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	if len(leaders) == 0 {
		return nil
	}

	top := leaders[0]
	if top.UserID == userID {
		// Never nudge the current leader.
		return nil
	}

	message := fmt.Sprintf("%s has studied for %d mins today! Catch up!", firstName(top), top.TotalMinutes)

	if err := s.notifications.AddNotification(&models.Notification{
		UserID:   userID,
		Kind:     models.KindSocial,
		Message:  message,
		Priority: models.PriorityHigh,
	}); err != nil {
		return fmt.Errorf("store social nudge: %w", err)
	}

	// Delivery failure must not undo the durable record above.
	if err := s.notifications.AddReminder(userID, message, s.now().Add(socialReminderDelay)); err != nil {
		log.Printf("Warning: failed to schedule social nudge reminder for user %d: %v", userID, err)
	}

	return nil
}

func firstName(entry models.LeaderboardEntry) string {
	if fields := strings.Fields(entry.FullName); len(fields) > 0 {
		return fields[0]
	}
	return entry.Username
}
