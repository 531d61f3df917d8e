package database

import (
	"errors"
	"fmt"
	"time"

	"studyplanner/internal/models"
	"studyplanner/internal/services"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM-backed implementation of the persistence interfaces the
// services consume. Each call runs on its own connection from the pool, so
// a slow or failing query stalls only that call.
type Store struct {
	db *gorm.DB
}

// NewStore wraps a database handle
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// transient tags a failed operation as retryable for the notification loop
func transient(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, services.ErrTransientStore, err)
}

// --- reminders & notifications ---

func (s *Store) AddReminder(userID uint, message string, reminderTime time.Time) error {
	rem := models.Reminder{
		UserID:       userID,
		Message:      message,
		ReminderTime: reminderTime,
		Status:       models.ReminderPending,
	}
	if err := s.db.Create(&rem).Error; err != nil {
		return transient("create reminder", err)
	}
	return nil
}

func (s *Store) DueReminders(userID uint, now time.Time) ([]models.Reminder, error) {
	var due []models.Reminder
	err := s.db.
		Where("user_id = ? AND status = ? AND reminder_time <= ?", userID, models.ReminderPending, now).
		Order("reminder_time").
		Find(&due).Error
	if err != nil {
		return nil, transient("query due reminders", err)
	}
	return due, nil
}

// MarkReminderSent transitions pending -> sent. A reminder already sent
// matches no rows, so a repeated mark is a no-op.
func (s *Store) MarkReminderSent(reminderID uint) error {
	err := s.db.Model(&models.Reminder{}).
		Where("id = ? AND status = ?", reminderID, models.ReminderPending).
		Update("status", models.ReminderSent).Error
	if err != nil {
		return transient("mark reminder sent", err)
	}
	return nil
}

func (s *Store) AddNotification(n *models.Notification) error {
	if n.Priority == "" {
		n.Priority = models.PriorityMedium
	}
	if err := s.db.Create(n).Error; err != nil {
		return transient("create notification", err)
	}
	return nil
}

func (s *Store) HasNotificationSince(userID uint, kind models.NotificationKind, since time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND kind = ? AND created_at >= ?", userID, kind, since).
		Count(&count).Error
	if err != nil {
		return false, transient("count notifications", err)
	}
	return count > 0, nil
}

func (s *Store) Notifications(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&notifications).Error; err != nil {
		return nil, transient("query notifications", err)
	}
	return notifications, nil
}

func (s *Store) MarkNotificationRead(notificationID uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
	if err != nil {
		return transient("mark notification read", err)
	}
	return nil
}

func (s *Store) CountUnread(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, transient("count unread notifications", err)
	}
	return count, nil
}

// --- streaks ---

func (s *Store) StreakState(userID uint) (models.StreakState, error) {
	var user models.User
	if err := s.db.Select("last_login", "current_streak").First(&user, userID).Error; err != nil {
		return models.StreakState{}, transient("load streak state", err)
	}

	state := models.StreakState{CurrentStreak: user.CurrentStreak}
	if user.LastLogin != nil {
		last := time.Time(*user.LastLogin)
		state.LastLogin = &last
	}
	return state, nil
}

func (s *Store) SaveStreakState(userID uint, lastLogin time.Time, streak int) error {
	err := s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login":     datatypes.Date(lastLogin),
			"current_streak": streak,
		}).Error
	if err != nil {
		return transient("save streak state", err)
	}
	return nil
}

func (s *Store) UpsertDailyActivity(userID uint, day time.Time) error {
	row := models.StudyStreak{
		UserID:      userID,
		StreakDate:  datatypes.Date(day),
		Studied:     false,
		FlowerLevel: 1,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "streak_date"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return transient("upsert daily activity", err)
	}
	return nil
}

// --- leaderboard ---

func (s *Store) TopEntries(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.Model(&models.User{}).
		Select("users.id AS user_id, users.username, users.full_name, COALESCE(SUM(study_sessions.duration_minutes), 0) AS total_minutes").
		Joins("LEFT JOIN study_sessions ON study_sessions.user_id = users.id").
		Group("users.id").
		Order("total_minutes DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, transient("query leaderboard", err)
	}
	return entries, nil
}

// --- study sessions & goals ---

func (s *Store) AddSession(session *models.StudySession) error {
	return s.db.Create(session).Error
}

func (s *Store) Sessions(userID uint, limit int) ([]models.StudySession, error) {
	var sessions []models.StudySession
	q := s.db.Where("user_id = ?", userID).Order("session_date DESC, start_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *Store) DeleteSession(sessionID uint) error {
	return s.db.Delete(&models.StudySession{}, sessionID).Error
}

func (s *Store) AddGoal(goal *models.StudyGoal) error {
	return s.db.Create(goal).Error
}

func (s *Store) Goals(userID uint, status models.GoalStatus) ([]models.StudyGoal, error) {
	var goals []models.StudyGoal
	q := s.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("priority DESC, target_date").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *Store) UpdateGoalStatus(goalID uint, status models.GoalStatus) error {
	return s.db.Model(&models.StudyGoal{}).
		Where("id = ?", goalID).
		Update("status", status).Error
}

func (s *Store) TotalStudyMinutes(userID uint) (int, error) {
	var total int
	err := s.db.Model(&models.StudySession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration_minutes), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --- users & login logs ---

func (s *Store) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *Store) UserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) UsernameExists(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (s *Store) EmailExists(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *Store) SaveOTPHash(userID uint, hash string) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("otp_hash", hash).Error
}

// MarkVerified flips the account to verified and discards the pending code
func (s *Store) MarkVerified(userID uint) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"verified": true,
			"otp_hash": "",
		}).Error
}

func (s *Store) AddLoginLog(entry *models.LoginLog) error {
	return s.db.Create(entry).Error
}

// --- chat history ---

func (s *Store) SaveChatMessage(msg *models.ChatMessage) error {
	return s.db.Create(msg).Error
}

func (s *Store) ChatHistory(userID uint, limit int) ([]models.ChatMessage, error) {
	var history []models.ChatMessage
	q := s.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Store) ClearChatHistory(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.ChatMessage{}).Error
}
