package services

import (
	"testing"
	"time"

	"studyplanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	user, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "secret123", user.HashedPass)
	assert.NotEmpty(t, user.HashedPass)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	_, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	_, err = svc.CreateUser("sam", "other@example.com", "secret123", "Sam Other", "university")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	_, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	_, err = svc.CreateUser("samantha", "sam@example.com", "secret123", "Samantha", "university")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestLoginExtendsStreakAndRecordsLog(t *testing.T) {
	users := newFakeUserStore()
	store := newFakeStore()
	yesterday := time.Now().AddDate(0, 0, -1)
	store.streakState = models.StreakState{LastLogin: &yesterday, CurrentStreak: 4}

	svc := NewAuthService(users, NewStreakService(store, store))
	_, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	user, streak, err := svc.Login("sam", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "sam", user.Username)
	assert.Equal(t, 5, streak)

	require.Len(t, users.loginLogs, 1)
	assert.Equal(t, user.ID, users.loginLogs[0].UserID)
	assert.Len(t, users.loginLogs[0].ID, 36)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	_, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	_, _, err = svc.Login("sam", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	_, _, err := svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyEmailAcceptsTheIssuedCode(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	user, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	otp, err := svc.BeginVerification(user)
	require.NoError(t, err)
	require.Len(t, otp, 6)

	require.NoError(t, svc.VerifyEmail("sam", otp))
	assert.True(t, users.users["sam"].Verified)
	assert.Empty(t, users.users["sam"].OTPHash)
}

func TestVerifyEmailRejectsWrongCode(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	user, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	otp, err := svc.BeginVerification(user)
	require.NoError(t, err)

	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}
	assert.ErrorIs(t, svc.VerifyEmail("sam", wrong), ErrInvalidOTP)
	assert.False(t, users.users["sam"].Verified)
}

func TestVerifyEmailRejectsUserWithNoPendingCode(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, NewStreakService(newFakeStore(), newFakeStore()))

	_, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyEmail("sam", "123456"), ErrInvalidOTP)
}

func TestLoginSucceedsWhenStreakStoreIsDown(t *testing.T) {
	users := newFakeUserStore()
	store := newFakeStore()
	store.failStreakState = assert.AnError

	svc := NewAuthService(users, NewStreakService(store, store))
	created, err := svc.CreateUser("sam", "sam@example.com", "secret123", "Sam Chen", "university")
	require.NoError(t, err)
	created.CurrentStreak = 9

	user, streak, err := svc.Login("sam", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	// Falls back to the cached value on the account row.
	assert.Equal(t, 9, streak)
}
