package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"studyplanner/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

const fallbackResponse = "The AI assistant is not available right now. " +
	"A simple plan that always works: review yesterday's notes for 10 minutes, " +
	"study your hardest subject first in 25-minute blocks with 5-minute breaks, " +
	"and finish by writing a three-line summary of what you learned."

// AIService answers study questions through a Groq-hosted model. It fails
// open: with no API key, or on any request error, callers get a canned
// fallback string instead of an error.
type AIService struct {
	llm   llms.Model
	chats ChatStore
}

// NewAIService builds the client from GROQ_API_KEY and GROQ_MODEL. An empty
// key leaves the service in fallback-only mode.
func NewAIService(chats ChatStore) *AIService {
	s := &AIService{chats: chats}

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		log.Println("GROQ_API_KEY not set, AI assistant running in fallback mode")
		return s
	}

	model := os.Getenv("GROQ_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithBaseURL(groqBaseURL),
	)
	if err != nil {
		log.Printf("Groq initialization error: %v", err)
		return s
	}
	s.llm = llm
	return s
}

// Chat sends one prompt and persists the exchange. The reply is the model's
// text, or the fallback when the model is unavailable.
func (s *AIService) Chat(ctx context.Context, userID uint, message string) string {
	reply := s.generate(ctx, message)

	if err := s.chats.SaveChatMessage(&models.ChatMessage{
		UserID:   userID,
		Message:  message,
		Response: reply,
	}); err != nil {
		log.Printf("Warning: failed to save chat history for user %d: %v", userID, err)
	}

	return reply
}

// GenerateStudyPlan produces a personalized plan for the given subjects
func (s *AIService) GenerateStudyPlan(ctx context.Context, userID uint, subjects []string, hoursPerDay float64, examDate, level string) string {
	prompt := fmt.Sprintf(
		"You are an expert study planner. Create a detailed, personalized study plan.\n"+
			"Subjects: %s\nAvailable study time: %.1f hours per day\nTarget exam date: %s\nCurrent level: %s",
		strings.Join(subjects, ", "), hoursPerDay, examDate, level)

	return s.Chat(ctx, userID, prompt)
}

// History returns the user's recent chat exchanges
func (s *AIService) History(userID uint, limit int) ([]models.ChatMessage, error) {
	return s.chats.ChatHistory(userID, limit)
}

// ClearHistory wipes the user's chat history
func (s *AIService) ClearHistory(userID uint) error {
	return s.chats.ClearChatHistory(userID)
}

func (s *AIService) generate(ctx context.Context, prompt string) string {
	if s.llm == nil {
		return fallbackResponse
	}

	reply, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(1024),
	)
	if err != nil {
		log.Printf("AI request failed: %v", err)
		return fallbackResponse
	}
	return reply
}
