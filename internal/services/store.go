package services

import (
	"errors"
	"time"

	"studyplanner/internal/models"
)

// ErrTransientStore marks a data-access failure that callers treat as
// retryable: the current pass is skipped and the next cycle tries again.
// Nothing in this package turns a store failure into a fatal error.
var ErrTransientStore = errors.New("transient store error")

// NotificationStore is the persistence surface for reminders and the
// append-only notification history.
type NotificationStore interface {
	AddReminder(userID uint, message string, reminderTime time.Time) error
	DueReminders(userID uint, now time.Time) ([]models.Reminder, error)
	// MarkReminderSent is idempotent: marking an already-sent reminder is a
	// no-op, never an error.
	MarkReminderSent(reminderID uint) error
	AddNotification(n *models.Notification) error
	HasNotificationSince(userID uint, kind models.NotificationKind, since time.Time) (bool, error)
	Notifications(userID uint, limit int) ([]models.Notification, error)
	MarkNotificationRead(notificationID uint) error
	CountUnread(userID uint) (int64, error)
}

// StreakStore reads and writes the per-user login-streak state
type StreakStore interface {
	StreakState(userID uint) (models.StreakState, error)
	// SaveStreakState persists last_login and current_streak as one update.
	SaveStreakState(userID uint, lastLogin time.Time, streak int) error
	// UpsertDailyActivity seeds today's calendar row with studied=false,
	// leaving an existing row untouched.
	UpsertDailyActivity(userID uint, day time.Time) error
}

// Leaderboard ranks users by cumulative tracked study minutes, descending
type Leaderboard interface {
	TopEntries(limit int) ([]models.LeaderboardEntry, error)
}

// PlannerStore persists the primary study records reminders derive from
type PlannerStore interface {
	AddSession(session *models.StudySession) error
	Sessions(userID uint, limit int) ([]models.StudySession, error)
	DeleteSession(sessionID uint) error
	AddGoal(goal *models.StudyGoal) error
	Goals(userID uint, status models.GoalStatus) ([]models.StudyGoal, error)
	UpdateGoalStatus(goalID uint, status models.GoalStatus) error
	TotalStudyMinutes(userID uint) (int, error)
}

// UserStore persists accounts and login records
type UserStore interface {
	CreateUser(user *models.User) error
	UserByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	SaveOTPHash(userID uint, hash string) error
	MarkVerified(userID uint) error
	AddLoginLog(entry *models.LoginLog) error
}

// ChatStore persists AI assistant exchanges
type ChatStore interface {
	SaveChatMessage(msg *models.ChatMessage) error
	ChatHistory(userID uint, limit int) ([]models.ChatMessage, error)
	ClearChatHistory(userID uint) error
}

// startOfDay truncates a time to midnight in its own location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether two times fall on the same calendar day
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
