package services

import "github.com/gen2brain/beeep"

// ToastService posts OS-level notifications through the desktop
// notification facility
type ToastService struct {
	appIcon string
}

// NewToastService creates a toast poster. iconPath may be empty.
func NewToastService(iconPath string) *ToastService {
	return &ToastService{appIcon: iconPath}
}

// Post implements Toaster
func (t *ToastService) Post(title, message string) error {
	return beeep.Notify(title, message, t.appIcon)
}
