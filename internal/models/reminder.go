package models

import "time"

// ReminderStatus represents the delivery state of a reminder
type ReminderStatus string

const (
	ReminderPending ReminderStatus = "pending"
	ReminderSent    ReminderStatus = "sent"
)

// Reminder is a one-shot, time-triggered delivery event. Rows are created
// once (by the scheduler or the social nudge check) and transition
// pending -> sent exactly once; the reminder time is never rescheduled.
type Reminder struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"reminder_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Message      string         `gorm:"type:text;not null" json:"message"`
	ReminderTime time.Time      `gorm:"not null;index" json:"reminder_time"`
	Status       ReminderStatus `gorm:"size:10;not null;default:pending" json:"status"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminders"
}
