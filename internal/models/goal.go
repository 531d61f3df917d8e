package models

import (
	"time"

	"gorm.io/datatypes"
)

// GoalStatus represents the lifecycle state of a study goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// GoalPriority represents how urgent a goal is
type GoalPriority string

const (
	GoalLow    GoalPriority = "low"
	GoalMedium GoalPriority = "medium"
	GoalHigh   GoalPriority = "high"
)

// StudyGoal represents a deadline-driven target. A goal with a target date
// gets a single 09:00 reminder on that date at creation time.
type StudyGoal struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"goal_id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	SubjectID       *uint           `json:"subject_id"`
	GoalTitle       string          `gorm:"size:200;not null" json:"goal_title"`
	GoalDescription string          `gorm:"type:text" json:"goal_description"`
	TargetDate      *datatypes.Date `json:"target_date"`
	Priority        GoalPriority    `gorm:"size:10;not null;default:medium" json:"priority"`
	Status          GoalStatus      `gorm:"size:10;not null;default:active" json:"status"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the StudyGoal model
func (StudyGoal) TableName() string {
	return "study_goals"
}
