// Navigation tracking for the inspected WebView.

package main

import (
	"net/url"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/settings"
)

// PageNavigated records that the inspected page moved to rawURL and applies
// the configured clear policy to the captured log.
func (a *App) PageNavigated(rawURL string) {
	newOrigin := originOf(rawURL)

	a.originMu.Lock()
	previous := a.currentOrigin
	a.currentOrigin = newOrigin
	a.originMu.Unlock()

	a.settingsMu.Lock()
	policy := a.settings.ClearPolicy
	preserve := a.settings.PreserveLog
	a.settingsMu.Unlock()

	if preserve {
		return
	}

	switch policy {
	case settings.ClearKeepAll:
	case settings.ClearSameOrigin:
		if previous != "" && previous != newOrigin {
			a.store.Clear()
		}
	default: // each-page
		a.store.Clear()
	}
}

// CurrentOrigin returns the origin of the page being inspected.
func (a *App) CurrentOrigin() string {
	a.originMu.Lock()
	defer a.originMu.Unlock()
	return a.currentOrigin
}

// originOf reduces a URL to its scheme://host origin. Unparseable URLs map
// to an empty origin.
func originOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
