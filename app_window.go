// Window management functionality for Walnut.
// This file contains window state persistence, export dialogs, and file
// operations.

package main

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/settings"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// RevealInFinder opens the file's parent directory in Finder (macOS) or Explorer (Windows)
// and selects the file. On Linux, it opens the parent directory in the default file manager.
func (a *App) RevealInFinder(filePath string) error {
	if filePath == "" {
		return errors.New("no file path provided")
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return errors.New("file does not exist: " + filePath)
	}

	switch goruntime.GOOS {
	case "darwin":
		return exec.Command("open", "-R", filePath).Start()
	case "windows":
		return exec.Command("explorer", "/select,", filePath).Start()
	case "linux":
		parentDir := filepath.Dir(filePath)
		return exec.Command("xdg-open", parentDir).Start()
	default:
		return errors.New("unsupported operating system")
	}
}

// SaveConsoleExport opens a native save dialog and writes content to the
// chosen path. Returns the path, or an empty string if the user cancelled.
func (a *App) SaveConsoleExport(defaultName, content string) (string, error) {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Console Export",
		DefaultFilename: defaultName,
		Filters: []runtime.FileFilter{
			{DisplayName: "Text Files", Pattern: "*.txt"},
			{DisplayName: "JSON Files", Pattern: "*.json"},
			{DisplayName: "All Files", Pattern: "*"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveWindowState saves the current window position and size
func (a *App) SaveWindowState() error {
	x, y := runtime.WindowGetPosition(a.ctx)
	width, height := runtime.WindowGetSize(a.ctx)
	maximized := runtime.WindowIsMaximised(a.ctx)

	a.settingsMu.Lock()
	a.settings.Window = settings.WindowState{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		Maximized: maximized,
	}
	path := a.settingsPath
	snapshot := a.settings
	a.settingsMu.Unlock()

	return settings.Save(path, snapshot)
}

// RestoreWindowState restores the window to its saved position and size
func (a *App) RestoreWindowState() {
	a.settingsMu.Lock()
	state := a.settings.Window
	a.settingsMu.Unlock()

	// Validate the state - ensure window is at least partially visible
	if state.Width < 400 {
		state.Width = 1100
	}
	if state.Height < 300 {
		state.Height = 760
	}

	runtime.WindowSetPosition(a.ctx, state.X, state.Y)
	runtime.WindowSetSize(a.ctx, state.Width, state.Height)

	if state.Maximized {
		runtime.WindowMaximise(a.ctx)
	}
}
