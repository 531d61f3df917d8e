package models

import "time"

// StudySession represents a planned block of study time. Reminders derived
// from a session are a snapshot taken at creation; editing or deleting the
// session afterwards does not regenerate or cancel them.
type StudySession struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"session_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	SubjectID       uint      `gorm:"not null;index" json:"subject_id"`
	SessionDate     string    `gorm:"size:10;not null;index" json:"session_date"` // YYYY-MM-DD
	StartTime       string    `gorm:"size:10;not null" json:"start_time"`
	EndTime         string    `gorm:"size:10;not null" json:"end_time"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	TopicsCovered   string    `gorm:"size:255;not null" json:"topics_covered"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the StudySession model
func (StudySession) TableName() string {
	return "study_sessions"
}
