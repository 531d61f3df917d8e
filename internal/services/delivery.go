package services

import (
	"log"
	"time"

	"studyplanner/internal/models"
)

// popupQueueSize bounds how many popup requests may wait for the UI to
// drain them before further requests are dropped
const popupQueueSize = 16

// Toaster posts an OS-level notification. Toasts are best-effort and are
// delivered regardless of whether the application window is visible.
type Toaster interface {
	Post(title, message string) error
}

// PopupRequest is the typed delivery message handed to the UI context. The
// background worker never touches UI state directly; it only enqueues these.
type PopupRequest struct {
	Title    string
	Message  string
	Priority models.NotificationPriority
	At       time.Time
}

// Dispatcher fans a due reminder out to the two delivery channels: the OS
// toast (always attempted) and the in-app popup queue (only while the host
// window is visible).
type Dispatcher struct {
	toaster Toaster
	visible func() bool
	popups  chan PopupRequest
}

// NewDispatcher creates a dispatcher. visible reports whether the host UI
// is currently mapped; a nil probe suppresses popups entirely.
func NewDispatcher(toaster Toaster, visible func() bool) *Dispatcher {
	return &Dispatcher{
		toaster: toaster,
		visible: visible,
		popups:  make(chan PopupRequest, popupQueueSize),
	}
}

// Popups is the channel the UI context drains on its own turn
func (d *Dispatcher) Popups() <-chan PopupRequest {
	return d.popups
}

// Deliver attempts both channels for one reminder. Failures are logged and
// swallowed; the caller marks the reminder sent regardless.
func (d *Dispatcher) Deliver(rem *models.Reminder) {
	if err := d.toaster.Post("Study Reminder", rem.Message); err != nil {
		log.Printf("Failed to post toast for reminder %d: %v", rem.ID, err)
	}

	if d.visible == nil || !d.visible() {
		return
	}

	req := PopupRequest{
		Title:    "Reminder",
		Message:  rem.Message,
		Priority: models.PriorityHigh,
		At:       time.Now(),
	}

	// Never block the worker on a UI that is not draining.
	select {
	case d.popups <- req:
	default:
		log.Printf("Popup queue full, dropping popup for reminder %d", rem.ID)
	}
}
