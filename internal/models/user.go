package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a user account in the system. The login-streak state
// (last_login + current_streak) lives on the user row and is mutated only
// by the streak service's login transition.
type User struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username      string          `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Email         string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	HashedPass    string          `gorm:"size:255;not null" json:"-"`
	FullName      string          `gorm:"size:100;not null" json:"full_name"`
	StudentLevel  string          `gorm:"size:30;not null;default:University" json:"student_level"`
	OTPHash       string          `gorm:"size:255" json:"-"`
	Verified      bool            `gorm:"not null;default:false" json:"verified"`
	LastLogin     *datatypes.Date `json:"last_login"`
	CurrentStreak int             `gorm:"not null;default:0" json:"current_streak"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	if u.StudentLevel == "" {
		u.StudentLevel = "University"
	}
	return nil
}

// BeforeSave hook is called before saving the user
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// LeaderboardEntry is one row of the study-time ranking
type LeaderboardEntry struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	TotalMinutes int    `json:"total_minutes"`
}

// LoginLog records each successful authentication
type LoginLog struct {
	ID      string    `gorm:"primaryKey;size:36" json:"id"`
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	LoginAt time.Time `gorm:"not null" json:"login_at"`
}

// TableName specifies the table name for the LoginLog model
func (LoginLog) TableName() string {
	return "login_logs"
}
