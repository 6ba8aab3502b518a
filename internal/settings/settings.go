// Package settings persists Walnut user settings as TOML under the
// platform config directory (~/.config/walnut/settings.toml on Linux).
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ClearPolicy controls what happens to captured console entries when the
// inspected page navigates.
type ClearPolicy string

const (
	// ClearKeepAll keeps every entry across navigations.
	ClearKeepAll ClearPolicy = "keep-all"
	// ClearSameOrigin clears only when the navigation crosses origins.
	ClearSameOrigin ClearPolicy = "same-origin"
	// ClearEachPage clears on every navigation.
	ClearEachPage ClearPolicy = "each-page"
)

// WindowState remembers host window geometry between runs.
type WindowState struct {
	Width     int  `toml:"width"`
	Height    int  `toml:"height"`
	X         int  `toml:"x"`
	Y         int  `toml:"y"`
	Maximized bool `toml:"maximized"`
}

// Settings holds user settings for Walnut.
type Settings struct {
	MaxLogs        int         `toml:"max_logs"`
	PreserveLog    bool        `toml:"preserve_log"`
	ClearPolicy    ClearPolicy `toml:"clear_policy"`
	NotifyOnAssert bool        `toml:"notify_on_assert"`
	Window         WindowState `toml:"window"`
}

const settingsFile = "settings.toml"

// Default returns the settings used before the user has saved anything.
func Default() Settings {
	return Settings{
		MaxLogs:     5000,
		ClearPolicy: ClearEachPage,
		Window:      WindowState{Width: 1100, Height: 760},
	}
}

// DefaultPath returns the default settings file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "walnut", settingsFile), nil
}

// Load reads settings from the given path, falling back to defaults when
// the file is missing or unreadable. An empty path means DefaultPath.
func Load(path string) (Settings, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	out := Default()

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &out); err != nil {
		return Default(), nil // Graceful degradation
	}

	return normalize(out), nil
}

// Save writes settings to the given path, creating directories as needed.
func Save(path string, s Settings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(normalize(s))
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

func normalize(s Settings) Settings {
	if s.MaxLogs <= 0 {
		s.MaxLogs = Default().MaxLogs
	}
	switch s.ClearPolicy {
	case ClearKeepAll, ClearSameOrigin, ClearEachPage:
	default:
		s.ClearPolicy = ClearEachPage
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		s.Window = Default().Window
	}
	return s
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return DefaultPath()
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
