package console

import (
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/logfilter"
)

// Query selects the visible projection of the store. The zero value means
// "everything visible": no kind filter, no search, collapsed groups still
// hidden and group-close markers still dropped.
type Query struct {
	// Kind is an explicit single-kind filter; it takes precedence over
	// EnabledKinds when non-empty.
	Kind EntryKind `json:"kind,omitempty"`
	// EnabledKinds is the allow-list from the level toggle buttons. Nil
	// means all kinds enabled.
	EnabledKinds map[EntryKind]bool `json:"enabledKinds,omitempty"`
	Search       string             `json:"search,omitempty"`
	UseRegex     bool               `json:"useRegex,omitempty"`
}

// Visible returns the filtered, ordered projection of the store: close
// markers dropped, members of collapsed groups hidden (group headers stay
// so they can be expanded), then the kind filter and text/regex search
// applied. It is a pure snapshot; concurrent mutations are not reflected.
func (s *Store) Visible(q Query) []Entry {
	s.mu.Lock()
	entries := s.snapshotLocked()
	collapsed := make(map[string]bool, len(s.collapsed))
	for id := range s.collapsed {
		collapsed[id] = true
	}
	s.mu.Unlock()

	// A malformed regex falls back to substring search rather than
	// filtering everything out or letting everything through.
	var filter *logfilter.Filter
	useSubstring := q.Search != "" && !q.UseRegex
	if q.Search != "" && q.UseRegex {
		compiled, err := logfilter.Compile(q.Search)
		if err == nil {
			filter = compiled
		} else {
			useSubstring = true
		}
	}

	visible := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind == KindGroupEnd {
			continue
		}
		if entry.GroupID != "" && collapsed[entry.GroupID] && !isGroupHeader(entry.Kind) {
			continue
		}
		if q.Kind != "" {
			if entry.Kind != q.Kind {
				continue
			}
		} else if q.EnabledKinds != nil && !q.EnabledKinds[entry.Kind] {
			continue
		}
		if filter != nil && !filter.Matches(entry.Message, entry.Source) {
			continue
		}
		if useSubstring && !logfilter.MatchSubstring(entry.Message, entry.Source, q.Search) {
			continue
		}
		visible = append(visible, entry)
	}
	return visible
}

func isGroupHeader(kind EntryKind) bool {
	return kind == KindGroup || kind == KindGroupCollapsed
}
