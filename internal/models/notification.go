package models

import "time"

// NotificationKind is the closed set of notification categories
type NotificationKind string

const (
	KindReminder      NotificationKind = "reminder"
	KindSocial        NotificationKind = "social"
	KindStreakWarning NotificationKind = "streak_warning"
	KindSystem        NotificationKind = "system"
)

// NotificationPriority indicates how prominently a notification is surfaced
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is an append-only history record of something the user was
// told. A fired reminder and its notification are separate rows with the
// message duplicated; history is never re-derived from the reminders table.
type Notification struct {
	ID        uint                 `gorm:"primaryKey;autoIncrement" json:"notification_id"`
	UserID    uint                 `gorm:"not null;index" json:"user_id"`
	Kind      NotificationKind     `gorm:"size:20;not null;index" json:"notification_type"`
	Message   string               `gorm:"type:text;not null" json:"message"`
	Priority  NotificationPriority `gorm:"size:10;not null;default:medium" json:"priority"`
	IsRead    bool                 `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time            `gorm:"not null;index" json:"created_at"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
