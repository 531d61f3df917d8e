package models

import (
	"time"

	"gorm.io/datatypes"
)

// StudyStreak is the per-day calendar activity row. One row exists per
// (user, day); the login transition seeds it with studied=false and a
// separate activity-logging path later flips it true.
type StudyStreak struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint           `gorm:"not null;uniqueIndex:idx_user_streak_day" json:"user_id"`
	StreakDate  datatypes.Date `gorm:"not null;uniqueIndex:idx_user_streak_day" json:"streak_date"`
	Studied     bool           `gorm:"not null;default:false" json:"studied"`
	FlowerLevel int            `gorm:"not null;default:1" json:"flower_level"`
}

// TableName specifies the table name for the StudyStreak model
func (StudyStreak) TableName() string {
	return "study_streaks"
}

// StreakState is the streak projection of a user row
type StreakState struct {
	LastLogin     *time.Time
	CurrentStreak int
}
