package console

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ExportText renders the visible projection as shareable plain text, one
// "[timestamp] [KIND] message (source)" line per entry, blank-line
// separated.
func (s *Store) ExportText(q Query) string {
	entries := s.Visible(q)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf("[%s] [%s] %s",
			entry.Timestamp.UTC().Format(time.RFC3339),
			strings.ToUpper(string(entry.Kind)),
			entry.Message)
		if entry.Source != "" {
			line += " (" + entry.Source + ")"
		}
		if entry.RepeatCount > 1 {
			line += fmt.Sprintf(" (x%d)", entry.RepeatCount)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n\n")
}

type exportedEntry struct {
	Timestamp string `json:"timestamp"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Source    string `json:"source,omitempty"`
}

// ExportJSON renders the visible projection as a pretty-printed JSON array
// of {timestamp, kind, message, source?} objects.
func (s *Store) ExportJSON(q Query) (string, error) {
	entries := s.Visible(q)
	exported := make([]exportedEntry, 0, len(entries))
	for _, entry := range entries {
		exported = append(exported, exportedEntry{
			Timestamp: entry.Timestamp.UTC().Format(time.RFC3339),
			Kind:      string(entry.Kind),
			Message:   entry.Message,
			Source:    entry.Source,
		})
	}
	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export console log: %w", err)
	}
	return string(data), nil
}
