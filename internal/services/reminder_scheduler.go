package services

import (
	"fmt"
	"log"
	"time"
)

const (
	sessionLayout12Hour = "2006-01-02 3:04 PM"
	sessionLayout24Hour = "2006-01-02 15:04"
	goalDateLayout      = "2006-01-02"
)

// ReminderScheduler derives reminder rows from sessions and goals at
// creation time. Scheduling is strictly best-effort: a failure here never
// rolls back the parent session or goal.
type ReminderScheduler struct {
	store NotificationStore
}

// NewReminderScheduler creates a scheduler backed by the given store
func NewReminderScheduler(store NotificationStore) *ReminderScheduler {
	return &ReminderScheduler{store: store}
}

// ScheduleForSession creates the three reminders for a new study session:
// 15 minutes before the start, at the start, and 5 minutes after the end.
// Sessions edited later keep the reminders created here; nothing is
// regenerated or cancelled.
func (s *ReminderScheduler) ScheduleForSession(userID uint, sessionDate, startTime string, durationMinutes int, topics string) error {
	start, err := parseSessionStart(sessionDate, startTime)
	if err != nil {
		return fmt.Errorf("parse session start %q %q: %w", sessionDate, startTime, err)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	reminders := []struct {
		at      time.Time
		message string
	}{
		{start.Add(-15 * time.Minute), fmt.Sprintf("Get Ready! Study session '%s' starts in 15 mins.", topics)},
		{start, fmt.Sprintf("It's Time! Start studying '%s' now.", topics)},
		{end.Add(5 * time.Minute), fmt.Sprintf("Did you finish '%s'? Don't forget to review your notes!", topics)},
	}

	for _, r := range reminders {
		if err := s.store.AddReminder(userID, r.message, r.at); err != nil {
			log.Printf("Warning: failed to store session reminder for user %d: %v", userID, err)
		}
	}
	return nil
}

// ScheduleForGoal creates a single 09:00 reminder on the goal's target date.
// Goals without a target date get no reminder.
func (s *ReminderScheduler) ScheduleForGoal(userID uint, targetDate, title string) error {
	if targetDate == "" {
		return nil
	}

	day, err := time.ParseInLocation(goalDateLayout, targetDate, time.Local)
	if err != nil {
		return fmt.Errorf("parse goal target date %q: %w", targetDate, err)
	}

	at := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, time.Local)
	if err := s.store.AddReminder(userID, fmt.Sprintf("Goal Deadline: %s", title), at); err != nil {
		return fmt.Errorf("store goal reminder: %w", err)
	}
	return nil
}

// parseSessionStart combines the session date and start time, accepting the
// 12-hour form with meridiem first and falling back to 24-hour
func parseSessionStart(sessionDate, startTime string) (time.Time, error) {
	raw := sessionDate + " " + startTime
	start, err := time.ParseInLocation(sessionLayout12Hour, raw, time.Local)
	if err != nil {
		start, err = time.ParseInLocation(sessionLayout24Hour, raw, time.Local)
	}
	return start, err
}
