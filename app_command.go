// Command-line evaluation for the Walnut console panel.

package main

import (
	"strings"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
)

// EvaluateConsoleCommand runs an expression typed into the console input.
// The echoed command, any console output the expression produces, and the
// result (or error) all land in the shared log in that order.
func (a *App) EvaluateConsoleCommand(expression string) {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return
	}

	a.store.AddLog(console.KindCommand, trimmed, "eval", nil, nil, nil)

	result, err := a.eval.Evaluate(trimmed)
	if err != nil {
		a.store.AddLog(console.KindError, err.Error(), "eval", nil, nil, nil)
		return
	}
	a.store.AddLog(console.KindResult, consolefmt.FormatResult(result), "eval", nil, nil, nil)
}
