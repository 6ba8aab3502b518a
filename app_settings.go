// Settings API for the Walnut frontend.

package main

import (
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/settings"
)

// GetSettings returns the current user settings.
func (a *App) GetSettings() settings.Settings {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()
	return a.settings
}

// UpdateSettings replaces the user settings and persists them. The window
// geometry is owned by the window facet and kept as-is.
func (a *App) UpdateSettings(updated settings.Settings) error {
	a.settingsMu.Lock()
	updated.Window = a.settings.Window
	a.settings = updated
	maxLogs := updated.MaxLogs
	path := a.settingsPath
	snapshot := a.settings
	a.settingsMu.Unlock()

	if maxLogs > 0 {
		a.store.SetMaxLogs(maxLogs)
	}
	return settings.Save(path, snapshot)
}
