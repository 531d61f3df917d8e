package models

import "time"

// Subject represents a course or topic the user tracks study time against
type Subject struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"subject_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	SubjectName string    `gorm:"size:100;not null" json:"subject_name"`
	SubjectCode string    `gorm:"size:20" json:"subject_code"`
	ColorCode   string    `gorm:"size:7;not null;default:#3498db" json:"color_code"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the Subject model
func (Subject) TableName() string {
	return "subjects"
}

// QuickNote is a free-form note, optionally attached to a subject
type QuickNote struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"note_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	SubjectID   *uint     `json:"subject_id"`
	NoteTitle   string    `gorm:"size:200;not null" json:"note_title"`
	NoteContent string    `gorm:"type:text;not null" json:"note_content"`
	IsPinned    bool      `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the QuickNote model
func (QuickNote) TableName() string {
	return "quick_notes"
}
