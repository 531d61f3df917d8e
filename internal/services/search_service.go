package services

import (
	"strings"

	"studyplanner/internal/models"

	"gorm.io/gorm"
)

// SearchResults groups matches from every searchable record type
type SearchResults struct {
	Subjects []models.Subject     `json:"subjects"`
	Notes    []models.QuickNote   `json:"notes"`
	Chat     []models.ChatMessage `json:"chat"`
}

// SearchService performs the global search across subjects, notes and chat
// history
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// SearchEverything matches the term against every searchable table for one
// user. A blank term returns empty results without touching the database.
func (s *SearchService) SearchEverything(userID uint, term string) (*SearchResults, error) {
	results := &SearchResults{}

	term = strings.TrimSpace(term)
	if term == "" {
		return results, nil
	}
	pattern := "%" + term + "%"

	if err := s.db.
		Where("user_id = ? AND subject_name ILIKE ?", userID, pattern).
		Find(&results.Subjects).Error; err != nil {
		return nil, err
	}

	if err := s.db.
		Where("user_id = ? AND (note_title ILIKE ? OR note_content ILIKE ?)", userID, pattern, pattern).
		Find(&results.Notes).Error; err != nil {
		return nil, err
	}

	if err := s.db.
		Where("user_id = ? AND (message ILIKE ? OR response ILIKE ?)", userID, pattern, pattern).
		Find(&results.Chat).Error; err != nil {
		return nil, err
	}

	return results, nil
}
