package services

import (
	"fmt"
	"log"
	"time"

	"studyplanner/internal/models"

	"gorm.io/datatypes"
)

// StudyService creates and queries the primary study records. Creating a
// session or goal also derives its reminders, but only best-effort: a
// reminder failure never fails the parent record.
type StudyService struct {
	store     PlannerStore
	scheduler *ReminderScheduler
}

// NewStudyService creates a study service
func NewStudyService(store PlannerStore, scheduler *ReminderScheduler) *StudyService {
	return &StudyService{store: store, scheduler: scheduler}
}

// AddSession persists a new study session and schedules its reminders.
// The session row is the transactional guarantee; reminders are not.
func (s *StudyService) AddSession(userID, subjectID uint, sessionDate, startTime, endTime string, durationMinutes int, topics, notes string) (*models.StudySession, error) {
	session := &models.StudySession{
		UserID:          userID,
		SubjectID:       subjectID,
		SessionDate:     sessionDate,
		StartTime:       startTime,
		EndTime:         endTime,
		DurationMinutes: durationMinutes,
		TopicsCovered:   topics,
		Notes:           notes,
	}

	if err := s.store.AddSession(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.scheduler.ScheduleForSession(userID, sessionDate, startTime, durationMinutes, topics); err != nil {
		log.Printf("Warning: failed to schedule reminders for session %d: %v", session.ID, err)
	}

	return session, nil
}

// AddGoal persists a new study goal and, when a target date is set,
// schedules its deadline reminder.
func (s *StudyService) AddGoal(userID uint, title, description string, subjectID *uint, targetDate string, priority models.GoalPriority) (*models.StudyGoal, error) {
	goal := &models.StudyGoal{
		UserID:          userID,
		SubjectID:       subjectID,
		GoalTitle:       title,
		GoalDescription: description,
		Priority:        priority,
		Status:          models.GoalActive,
	}

	if targetDate != "" {
		if day, err := time.ParseInLocation(goalDateLayout, targetDate, time.Local); err == nil {
			d := datatypes.Date(day)
			goal.TargetDate = &d
		} else {
			log.Printf("Warning: invalid goal target date %q: %v", targetDate, err)
		}
	}

	if err := s.store.AddGoal(goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}

	if err := s.scheduler.ScheduleForGoal(userID, targetDate, title); err != nil {
		log.Printf("Warning: failed to schedule reminder for goal %d: %v", goal.ID, err)
	}

	return goal, nil
}

// Sessions returns the user's sessions, newest first
func (s *StudyService) Sessions(userID uint, limit int) ([]models.StudySession, error) {
	return s.store.Sessions(userID, limit)
}

// DeleteSession removes a session. Reminders already derived from it are
// left in place.
func (s *StudyService) DeleteSession(sessionID uint) error {
	return s.store.DeleteSession(sessionID)
}

// Goals returns the user's goals, optionally filtered by status
func (s *StudyService) Goals(userID uint, status models.GoalStatus) ([]models.StudyGoal, error) {
	return s.store.Goals(userID, status)
}

// UpdateGoalStatus moves a goal to a new lifecycle state
func (s *StudyService) UpdateGoalStatus(goalID uint, status models.GoalStatus) error {
	return s.store.UpdateGoalStatus(goalID, status)
}

// TotalStudyMinutes returns the user's cumulative tracked minutes
func (s *StudyService) TotalStudyMinutes(userID uint) (int, error) {
	return s.store.TotalStudyMinutes(userID)
}
