package main

import (
	"github.com/gen2brain/beeep"
)

// SendNotification sends an OS-level notification.
func (a *App) SendNotification(title, message string) error {
	// On macOS, use native Notification Center so the notification uses the app icon.
	if err := notifyNative(title, message); err == nil {
		return nil
	}
	return beeep.Notify(title, message, "")
}

// notifyAssert surfaces a failed page assertion as an OS notification when
// the user opted in.
func (a *App) notifyAssert(message string) {
	a.settingsMu.Lock()
	enabled := a.settings.NotifyOnAssert
	a.settingsMu.Unlock()
	if !enabled {
		return
	}
	_ = a.SendNotification("Assertion failed", message)
}
