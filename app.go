package main

import (
	"context"
	"sync"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/evaluator"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/settings"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

const consoleEntryEventName = "console-entry"

// App struct
type App struct {
	ctx context.Context

	store *console.Store
	eval  *evaluator.Evaluator

	settingsMu   sync.Mutex
	settings     settings.Settings
	settingsPath string

	originMu      sync.Mutex
	currentOrigin string

	vault     *CredentialVault
	vaultOnce sync.Once
	vaultErr  error
}

// NewApp creates a new App application struct
func NewApp() *App {
	a := &App{}
	a.settings, _ = settings.Load("")
	a.store = console.NewStore(console.Options{
		MaxLogs:  a.settings.MaxLogs,
		Retained: a.preserveLog,
		OnAppend: a.emitEntry,
	})
	a.eval = evaluator.New(a.store, "eval")
	return a
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// onDomReady is called when the frontend DOM is ready
func (a *App) onDomReady(ctx context.Context) {
	// Restore window state after DOM is ready (ensures window functions work)
	a.RestoreWindowState()
}

// onBeforeClose is called when the window is about to close
func (a *App) onBeforeClose(ctx context.Context) bool {
	// Save window state before closing
	_ = a.SaveWindowState()
	return false // Allow close
}

func (a *App) preserveLog() bool {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()
	return a.settings.PreserveLog
}

// emitEntry pushes newly captured entries to the frontend as they arrive.
func (a *App) emitEntry(entry console.Entry) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, consoleEntryEventName, entry)
	}
	if entry.Kind == console.KindAssert {
		a.notifyAssert(entry.Message)
	}
}
