package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"studyplanner/internal/auth"
	"studyplanner/internal/models"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned when the username or password is wrong
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidOTP is returned when a verification code does not match
var ErrInvalidOTP = errors.New("invalid verification code")

// AuthService handles account creation and login. A successful login drives
// the streak transition; the caller is responsible for starting the
// notification worker for the new session.
type AuthService struct {
	users   UserStore
	streaks *StreakService
}

// NewAuthService creates an auth service
func NewAuthService(users UserStore, streaks *StreakService) *AuthService {
	return &AuthService{users: users, streaks: streaks}
}

// CreateUser registers a new account with a hashed password
func (s *AuthService) CreateUser(username, email, password, fullName, studentLevel string) (*models.User, error) {
	if exists, err := s.users.UsernameExists(username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, fmt.Errorf("username %q is already taken", username)
	}
	if exists, err := s.users.EmailExists(email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if exists {
		return nil, fmt.Errorf("email %q is already registered", email)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		HashedPass:   auth.HashPassword(password),
		FullName:     fullName,
		StudentLevel: studentLevel,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BeginVerification issues a fresh OTP for the account and stores its hash.
// The plaintext code is returned once for delivery and never persisted.
func (s *AuthService) BeginVerification(user *models.User) (string, error) {
	otp, err := auth.GenerateOTP()
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	if err := s.users.SaveOTPHash(user.ID, auth.HashPassword(otp)); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	return otp, nil
}

// VerifyEmail checks a submitted code against the stored hash and marks the
// account verified on a match.
func (s *AuthService) VerifyEmail(username, otp string) error {
	user, err := s.users.UserByUsername(username)
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if user.OTPHash == "" || !auth.CheckPassword(otp, user.OTPHash) {
		return ErrInvalidOTP
	}
	return s.users.MarkVerified(user.ID)
}

// Login verifies credentials, applies the streak transition and records the
// login. It returns the user and the new streak value. Side paths (login
// log) are best-effort and never fail the login itself.
func (s *AuthService) Login(username, password string) (*models.User, int, error) {
	user, err := s.users.UserByUsername(username)
	if err != nil {
		return nil, 0, fmt.Errorf("look up user: %w", err)
	}
	if user == nil || !auth.CheckPassword(password, user.HashedPass) {
		return nil, 0, ErrInvalidCredentials
	}

	streak, err := s.streaks.Login(user.ID)
	if err != nil {
		// The streak is a convenience, not a login precondition.
		log.Printf("Warning: streak update failed for user %d: %v", user.ID, err)
		streak = user.CurrentStreak
	}

	entry := &models.LoginLog{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		LoginAt: time.Now(),
	}
	if err := s.users.AddLoginLog(entry); err != nil {
		log.Printf("Warning: failed to record login for user %d: %v", user.ID, err)
	}

	return user, streak, nil
}
