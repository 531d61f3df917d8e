package services

import (
	"log"
	"sync"
	"time"

	"studyplanner/internal/models"
)

// NotificationWorker is the background loop for one logged-in session. One
// instance exists per session: started at login, stopped at logout or exit.
// Every iteration sweeps due reminders, runs hourly maintenance (social
// nudge + streak risk) when due, then sleeps in one-second increments so a
// stop request is honored within about a second.
type NotificationWorker struct {
	store      NotificationStore
	social     *SocialService
	streaks    *StreakService
	dispatcher *Dispatcher

	sweepInterval time.Duration // total sleep between sweeps
	tick          time.Duration // granularity of the cooperative sleep
	deliveryPause time.Duration // pause between successive deliveries
	hourlyEvery   time.Duration // maintenance gate

	mu      sync.Mutex
	running bool
	quit    chan struct{}
}

// NewNotificationWorker creates a stopped worker
func NewNotificationWorker(store NotificationStore, social *SocialService, streaks *StreakService, dispatcher *Dispatcher) *NotificationWorker {
	return &NotificationWorker{
		store:         store,
		social:        social,
		streaks:       streaks,
		dispatcher:    dispatcher,
		sweepInterval: time.Minute,
		tick:          time.Second,
		deliveryPause: 2 * time.Second,
		hourlyEvery:   time.Hour,
	}
}

// Start launches the loop for the given user. Calling Start while the
// worker is already running is a no-op.
func (w *NotificationWorker) Start(userID uint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.quit = make(chan struct{})
	go w.run(userID, w.quit)
	log.Printf("Notification worker started for user %d", userID)
}

// Stop requests loop exit. It only flips the flag: in-flight work is never
// interrupted, and the loop observes the request within one sleep tick.
func (w *NotificationWorker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.quit)
}

// Running reports whether the loop is active
func (w *NotificationWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *NotificationWorker) run(userID uint, quit chan struct{}) {
	// Zero value makes the first iteration run maintenance immediately.
	var lastHourly time.Time

	for {
		w.sweep(userID, quit)

		if time.Since(lastHourly) > w.hourlyEvery {
			if err := w.social.Check(userID); err != nil {
				log.Printf("Error in social nudge check: %v", err)
			}
			if err := w.streaks.EvaluateRisk(userID); err != nil {
				log.Printf("Error in streak risk check: %v", err)
			}
			lastHourly = time.Now()
		}

		for slept := time.Duration(0); slept < w.sweepInterval; slept += w.tick {
			select {
			case <-quit:
				log.Printf("Notification worker stopped for user %d", userID)
				return
			case <-time.After(w.tick):
			}
		}
	}
}

// sweep processes every reminder that has come due. A failure on one item
// is logged and never blocks the rest of the sweep; the reminder is marked
// sent only after both delivery channels have been attempted, so a crash
// mid-sweep retries an already-delivered item at most once more.
func (w *NotificationWorker) sweep(userID uint, quit <-chan struct{}) {
	due, err := w.store.DueReminders(userID, time.Now())
	if err != nil {
		log.Printf("Error fetching due reminders for user %d: %v", userID, err)
		return
	}

	for i := range due {
		rem := &due[i]

		w.dispatcher.Deliver(rem)

		if err := w.store.AddNotification(&models.Notification{
			UserID:   rem.UserID,
			Kind:     models.KindReminder,
			Message:  rem.Message,
			Priority: models.PriorityHigh,
		}); err != nil {
			log.Printf("Error recording notification for reminder %d: %v", rem.ID, err)
		}

		if err := w.store.MarkReminderSent(rem.ID); err != nil {
			log.Printf("Error marking reminder %d sent: %v", rem.ID, err)
		}

		// Pause between deliveries so toasts don't stack on the OS side.
		if i < len(due)-1 {
			select {
			case <-quit:
				return
			case <-time.After(w.deliveryPause):
			}
		}
	}
}
