package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"studyplanner/internal/database"
	"studyplanner/internal/models"
	"studyplanner/internal/services"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// This is our main function - the entry point of our application.
// The default mode runs the notification engine headless: the desktop UI
// attaches as a collaborator, draining the popup channel and providing
// visibility. The other modes exercise the same services from the shell.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	store := database.NewStore(db)

	streaks := services.NewStreakService(store, store)
	authService := services.NewAuthService(store, streaks)

	mode := "run"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "run":
		runWorker(store, streaks, authService)
	case "register":
		register(authService)
	case "verify":
		if len(os.Args) < 3 {
			log.Fatal("Usage: studyplanner verify <code>")
		}
		verify(authService, os.Args[2])
	case "search":
		if len(os.Args) < 3 {
			log.Fatal("Usage: studyplanner search <term>")
		}
		search(db, authService, os.Args[2])
	case "ask":
		if len(os.Args) < 3 {
			log.Fatal("Usage: studyplanner ask <question>")
		}
		ask(store, authService, os.Args[2])
	case "add-session":
		addSession(store, authService)
	default:
		log.Fatalf("Unknown mode %q (expected run, register, verify, search, ask or add-session)", mode)
	}
}

// login authenticates from STUDY_USERNAME/STUDY_PASSWORD and exits on failure
func login(authService *services.AuthService) *models.User {
	username := os.Getenv("STUDY_USERNAME")
	password := os.Getenv("STUDY_PASSWORD")
	if username == "" {
		log.Fatal("STUDY_USERNAME is not set")
	}

	user, streak, err := authService.Login(username, password)
	if err != nil {
		log.Fatal("Login failed:", err)
	}
	log.Printf("Logged in as %s (streak: %d days)", user.Username, streak)
	return user
}

func runWorker(store *database.Store, streaks *services.StreakService, authService *services.AuthService) {
	// The headless runner stands in for the desktop window; it is always
	// "visible" and prints popups to the console.
	toaster := services.NewToastService(os.Getenv("APP_ICON"))
	dispatcher := services.NewDispatcher(toaster, func() bool { return true })

	social := services.NewSocialService(store, store)
	worker := services.NewNotificationWorker(store, social, streaks, dispatcher)

	user := login(authService)

	go func() {
		for req := range dispatcher.Popups() {
			log.Printf("[popup] %s: %s", req.Title, req.Message)
		}
	}()

	worker.Start(user.ID)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	worker.Stop()
	log.Println("Shutting down")
}

func register(authService *services.AuthService) {
	username := os.Getenv("STUDY_USERNAME")
	password := os.Getenv("STUDY_PASSWORD")
	email := os.Getenv("STUDY_EMAIL")
	fullName := os.Getenv("STUDY_FULL_NAME")
	level := os.Getenv("STUDY_LEVEL")
	if username == "" || password == "" || email == "" {
		log.Fatal("STUDY_USERNAME, STUDY_PASSWORD and STUDY_EMAIL must be set")
	}

	user, err := authService.CreateUser(username, email, password, fullName, level)
	if err != nil {
		log.Fatal("Registration failed:", err)
	}

	otp, err := authService.BeginVerification(user)
	if err != nil {
		log.Fatal("Failed to generate verification code:", err)
	}
	if err := services.NewEmailService().SendOTPEmail(user.Email, otp); err != nil {
		log.Fatal("Failed to send verification email:", err)
	}

	log.Printf("Account %s created, verification code sent to %s", user.Username, user.Email)
}

func verify(authService *services.AuthService, otp string) {
	username := os.Getenv("STUDY_USERNAME")
	if username == "" {
		log.Fatal("STUDY_USERNAME is not set")
	}
	if err := authService.VerifyEmail(username, otp); err != nil {
		log.Fatal("Verification failed:", err)
	}
	log.Printf("Account %s verified", username)
}

func search(db *gorm.DB, authService *services.AuthService, term string) {
	user := login(authService)

	results, err := services.NewSearchService(db).SearchEverything(user.ID, term)
	if err != nil {
		log.Fatal("Search failed:", err)
	}

	for _, s := range results.Subjects {
		fmt.Printf("subject: %s\n", s.SubjectName)
	}
	for _, n := range results.Notes {
		fmt.Printf("note: %s\n", n.NoteTitle)
	}
	for _, c := range results.Chat {
		fmt.Printf("chat: %s\n", c.Message)
	}
}

func ask(store *database.Store, authService *services.AuthService, question string) {
	user := login(authService)

	ai := services.NewAIService(store)
	fmt.Println(ai.Chat(context.Background(), user.ID, question))
}

func addSession(store *database.Store, authService *services.AuthService) {
	user := login(authService)

	study := services.NewStudyService(store, services.NewReminderScheduler(store))
	created, err := study.AddSession(
		user.ID,
		uint(envInt("STUDY_SUBJECT_ID")),
		os.Getenv("STUDY_SESSION_DATE"),
		os.Getenv("STUDY_START_TIME"),
		os.Getenv("STUDY_END_TIME"),
		envInt("STUDY_DURATION_MINUTES"),
		os.Getenv("STUDY_TOPICS"),
		os.Getenv("STUDY_NOTES"),
	)
	if err != nil {
		log.Fatal("Failed to add session:", err)
	}
	log.Printf("Session %d created with reminders scheduled", created.ID)
}

// envInt parses an integer environment variable, exiting on a bad value
func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return n
}
