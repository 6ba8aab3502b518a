// Console capture API for Walnut.
// This file receives console events bridged out of the inspected WebView
// and exposes the captured log to the frontend.

package main

import (
	"strings"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/ansidump"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsonextract"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// ConsoleCounts summarizes badge counters for the console toolbar.
type ConsoleCounts struct {
	Total  int `json:"total"`
	Errors int `json:"errors"`
	Warns  int `json:"warns"`
}

// RecordConsoleEvent ingests one bridged console call. Every argument
// arrives as a tagged payload produced by the injected page script.
func (a *App) RecordConsoleEvent(method string, args []interface{}, source string) {
	switch method {
	case "log", "info", "warn", "error", "debug", "trace":
		a.recordLevel(levelKind(method), args, source)
	case "dir":
		value := decodeFirst(args)
		a.store.AddLog(console.KindDir, value.Display(), source, nil, value, nil)
	case "table":
		value := decodeFirst(args)
		table := console.BuildTable(value)
		a.store.AddLog(console.KindTable, value.Display(), source, table, value, nil)
	case "group":
		a.store.AddLog(console.KindGroup, labelFromArgs(args, "console.group"), source, nil, nil, nil)
	case "groupCollapsed":
		a.store.AddLog(console.KindGroupCollapsed, labelFromArgs(args, "console.group"), source, nil, nil, nil)
	case "groupEnd":
		a.store.AddLog(console.KindGroupEnd, "", source, nil, nil, nil)
	case "time":
		a.store.Time(labelFromArgs(args, "default"))
	case "timeLog":
		a.store.TimeLog(labelFromArgs(args, "default"))
	case "timeEnd":
		a.store.TimeEnd(labelFromArgs(args, "default"))
	case "count":
		a.store.Count(labelFromArgs(args, "default"))
	case "countReset":
		a.store.CountReset(labelFromArgs(args, "default"))
	case "assert":
		condition := false
		if len(args) > 0 {
			if payload, ok := args[0].(map[string]interface{}); ok {
				if v := jsvalue.Decode(payload); v != nil && v.Kind == jsvalue.KindBoolean {
					condition = v.Boolean
				}
			}
		}
		a.store.Assert(condition, labelFromArgs(args[min(1, len(args)):], ""))
	case "clear":
		a.store.ClearIfNotRetained()
	default:
		a.recordLevel(console.KindLog, args, source)
	}
}

func (a *App) recordLevel(kind console.EntryKind, args []interface{}, source string) {
	values := decodeArgs(args)

	// A single structured argument keeps its tree for expansion in the UI.
	if len(values) == 1 && values[0] != nil && structuredKind(values[0].Kind) {
		a.store.AddLog(kind, values[0].Display(), source, nil, values[0], nil)
		return
	}

	// Format-specifier expansion when the first argument is a string
	// containing a directive.
	if len(values) > 0 && values[0] != nil && values[0].Kind == jsvalue.KindString && strings.Contains(values[0].Text, "%") {
		rest := make([]interface{}, 0, len(values)-1)
		for _, v := range values[1:] {
			rest = append(rest, v)
		}
		segments := consolefmt.Expand(values[0].Text, rest)
		var b strings.Builder
		hasStyle := false
		for _, seg := range segments {
			b.WriteString(seg.Text)
			if seg.Style != nil {
				hasStyle = true
			}
		}
		if !hasStyle {
			segments = nil
		}
		a.store.AddLog(kind, b.String(), source, nil, nil, segments)
		return
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.Display())
	}
	a.store.AddLog(kind, strings.Join(parts, " "), source, nil, nil, nil)
}

// GetConsoleEntries returns the entries visible under the given filter.
func (a *App) GetConsoleEntries(kinds []string, search string, useRegex bool) []console.Entry {
	return a.store.Visible(buildQuery(kinds, search, useRegex))
}

// ToggleConsoleGroup flips the collapsed state of a group header entry.
func (a *App) ToggleConsoleGroup(groupID string) {
	a.store.ToggleGroup(groupID)
}

// ClearConsole wipes the captured log unconditionally.
func (a *App) ClearConsole() {
	a.store.Clear()
}

// SetConsoleCapture pauses or resumes ingestion of bridged events.
func (a *App) SetConsoleCapture(enabled bool) {
	a.store.SetCapturing(enabled)
}

// IsConsoleCapturing reports whether bridged events are being ingested.
func (a *App) IsConsoleCapturing() bool {
	return a.store.IsCapturing()
}

// GetConsoleCounts returns toolbar badge counters.
func (a *App) GetConsoleCounts() ConsoleCounts {
	return ConsoleCounts{
		Total:  a.store.Len(),
		Errors: a.store.ErrorCount(),
		Warns:  a.store.WarnCount(),
	}
}

// GetEntryArrayChunks splits an entry's captured array value into
// fixed-size chunks so the frontend can render large arrays lazily.
func (a *App) GetEntryArrayChunks(entryID string) []jsvalue.Chunk {
	for _, entry := range a.store.Entries() {
		if entry.ID != entryID {
			continue
		}
		if entry.Value == nil || entry.Value.Array == nil {
			return nil
		}
		return jsvalue.ChunkElements(entry.Value.Array.Elements, jsvalue.DefaultChunkSize)
	}
	return nil
}

// ExtractEntryJSON finds the first JSON document embedded in a log message
// and returns pretty and minified renderings of it. Returns nil when the
// message carries no parseable JSON.
func (a *App) ExtractEntryJSON(message string) *jsonextract.Extraction {
	return jsonextract.Extract(message)
}

// ExportConsoleText renders the filtered log as plain text.
func (a *App) ExportConsoleText(kinds []string, search string, useRegex bool) string {
	return a.store.ExportText(buildQuery(kinds, search, useRegex))
}

// ExportConsoleJSON renders the filtered log as a JSON array.
func (a *App) ExportConsoleJSON(kinds []string, search string, useRegex bool) (string, error) {
	return a.store.ExportJSON(buildQuery(kinds, search, useRegex))
}

// ExportConsoleANSI renders the filtered log with terminal colors.
func (a *App) ExportConsoleANSI(kinds []string, search string, useRegex bool) string {
	return ansidump.Render(a.store.Visible(buildQuery(kinds, search, useRegex)))
}

func buildQuery(kinds []string, search string, useRegex bool) console.Query {
	q := console.Query{Search: search, UseRegex: useRegex}
	if len(kinds) > 0 {
		q.EnabledKinds = make(map[console.EntryKind]bool, len(kinds))
		for _, kind := range kinds {
			q.EnabledKinds[console.EntryKind(kind)] = true
		}
	}
	return q
}

func levelKind(method string) console.EntryKind {
	switch method {
	case "info":
		return console.KindInfo
	case "warn":
		return console.KindWarn
	case "error":
		return console.KindError
	case "debug":
		return console.KindDebug
	case "trace":
		return console.KindTrace
	default:
		return console.KindLog
	}
}

func structuredKind(kind jsvalue.Kind) bool {
	switch kind {
	case jsvalue.KindObject, jsvalue.KindArray, jsvalue.KindMap, jsvalue.KindSet, jsvalue.KindError, jsvalue.KindDOMNode:
		return true
	}
	return false
}

func decodeArgs(args []interface{}) []*jsvalue.Value {
	values := make([]*jsvalue.Value, 0, len(args))
	for _, arg := range args {
		payload, _ := arg.(map[string]interface{})
		values = append(values, jsvalue.Decode(payload))
	}
	return values
}

func decodeFirst(args []interface{}) *jsvalue.Value {
	if len(args) == 0 {
		return nil
	}
	payload, _ := args[0].(map[string]interface{})
	return jsvalue.Decode(payload)
}

func labelFromArgs(args []interface{}, fallback string) string {
	for _, arg := range args {
		payload, ok := arg.(map[string]interface{})
		if !ok {
			continue
		}
		v := jsvalue.Decode(payload)
		if v == nil {
			continue
		}
		if text := strings.TrimSpace(v.Display()); text != "" {
			return text
		}
	}
	return fallback
}
