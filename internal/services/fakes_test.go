package services

import (
	"sync"
	"time"

	"studyplanner/internal/models"
)

// fakeStore is an in-memory stand-in for the GORM store. It implements the
// notification, streak and leaderboard interfaces and records call order in
// events so tests can assert sequencing.
type fakeStore struct {
	mu     sync.Mutex
	nextID uint

	reminders     []models.Reminder
	notifications []models.Notification

	streakState models.StreakState
	savedLogin  *time.Time
	savedStreak int
	activities  []time.Time

	leaders []models.LeaderboardEntry

	events []string

	failAddReminder      error
	failDueReminders     error
	failAddNotification  error
	failMarkReminderSent error
	failStreakState      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) record(event string) {
	f.events = append(f.events, event)
}

func (f *fakeStore) AddReminder(userID uint, message string, reminderTime time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAddReminder != nil {
		return f.failAddReminder
	}
	f.nextID++
	f.reminders = append(f.reminders, models.Reminder{
		ID:           f.nextID,
		UserID:       userID,
		Message:      message,
		ReminderTime: reminderTime,
		Status:       models.ReminderPending,
	})
	return nil
}

func (f *fakeStore) DueReminders(userID uint, now time.Time) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("due")
	if f.failDueReminders != nil {
		return nil, f.failDueReminders
	}
	var due []models.Reminder
	for _, r := range f.reminders {
		if r.UserID == userID && r.Status == models.ReminderPending && !r.ReminderTime.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (f *fakeStore) MarkReminderSent(reminderID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("mark")
	if f.failMarkReminderSent != nil {
		return f.failMarkReminderSent
	}
	for i := range f.reminders {
		if f.reminders[i].ID == reminderID && f.reminders[i].Status == models.ReminderPending {
			f.reminders[i].Status = models.ReminderSent
		}
	}
	return nil
}

func (f *fakeStore) AddNotification(n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("notification")
	if f.failAddNotification != nil {
		return f.failAddNotification
	}
	f.nextID++
	saved := *n
	saved.ID = f.nextID
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now()
	}
	f.notifications = append(f.notifications, saved)
	return nil
}

func (f *fakeStore) HasNotificationSince(userID uint, kind models.NotificationKind, since time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.UserID == userID && n.Kind == kind && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Notifications(userID uint, limit int) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) MarkNotificationRead(notificationID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == notificationID {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeStore) CountUnread(userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) StreakState(userID uint) (models.StreakState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStreakState != nil {
		return models.StreakState{}, f.failStreakState
	}
	return f.streakState, nil
}

func (f *fakeStore) SaveStreakState(userID uint, lastLogin time.Time, streak int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	last := lastLogin
	f.savedLogin = &last
	f.savedStreak = streak
	f.streakState = models.StreakState{LastLogin: &last, CurrentStreak: streak}
	return nil
}

func (f *fakeStore) UpsertDailyActivity(userID uint, day time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.activities {
		if sameDay(existing, day) {
			return nil
		}
	}
	f.activities = append(f.activities, day)
	return nil
}

func (f *fakeStore) TopEntries(limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.leaders) {
		limit = len(f.leaders)
	}
	return f.leaders[:limit], nil
}

func (f *fakeStore) remindersByStatus(status models.ReminderStatus) []models.Reminder {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reminder
	for _, r := range f.reminders {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeStore) notificationsOfKind(kind models.NotificationKind) []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.notifications {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

func (f *fakeStore) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

// fakeToaster records posted toasts, optionally failing every post
type fakeToaster struct {
	mu     sync.Mutex
	posted []string
	err    error
	store  *fakeStore // when set, toast posts are recorded in the store's event log
}

func (t *fakeToaster) Post(title, message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store != nil {
		t.store.mu.Lock()
		t.store.record("toast")
		t.store.mu.Unlock()
	}
	if t.err != nil {
		return t.err
	}
	t.posted = append(t.posted, message)
	return nil
}

func (t *fakeToaster) postedMessages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.posted...)
}

// fakeUserStore backs auth service tests
type fakeUserStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	loginLogs []models.LoginLog
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uint(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserStore) UserByUsername(username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[username], nil
}

func (f *fakeUserStore) UsernameExists(username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeUserStore) EmailExists(email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) SaveOTPHash(userID uint, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID {
			u.OTPHash = hash
		}
	}
	return nil
}

func (f *fakeUserStore) MarkVerified(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID {
			u.Verified = true
			u.OTPHash = ""
		}
	}
	return nil
}

func (f *fakeUserStore) AddLoginLog(entry *models.LoginLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginLogs = append(f.loginLogs, *entry)
	return nil
}

// fakePlannerStore backs study service tests
type fakePlannerStore struct {
	mu       sync.Mutex
	sessions []models.StudySession
	goals    []models.StudyGoal
}

func (f *fakePlannerStore) AddSession(session *models.StudySession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	session.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakePlannerStore) Sessions(userID uint, limit int) ([]models.StudySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.StudySession(nil), f.sessions...), nil
}

func (f *fakePlannerStore) DeleteSession(sessionID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].ID == sessionID {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakePlannerStore) AddGoal(goal *models.StudyGoal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	goal.ID = uint(len(f.goals) + 1)
	f.goals = append(f.goals, *goal)
	return nil
}

func (f *fakePlannerStore) Goals(userID uint, status models.GoalStatus) ([]models.StudyGoal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.StudyGoal(nil), f.goals...), nil
}

func (f *fakePlannerStore) UpdateGoalStatus(goalID uint, status models.GoalStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == goalID {
			f.goals[i].Status = status
		}
	}
	return nil
}

func (f *fakePlannerStore) TotalStudyMinutes(userID uint) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			total += s.DurationMinutes
		}
	}
	return total, nil
}

// fakeChatStore backs AI service tests
type fakeChatStore struct {
	mu       sync.Mutex
	messages []models.ChatMessage
}

func (f *fakeChatStore) SaveChatMessage(msg *models.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatStore) ChatHistory(userID uint, limit int) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ChatMessage(nil), f.messages...), nil
}

func (f *fakeChatStore) ClearChatHistory(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = nil
	return nil
}
