package console

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/ringbuffer"
)

// DefaultMaxLogs bounds the stored entry list. Oldest entries are evicted
// first once the bound is exceeded.
const DefaultMaxLogs = 5000

// Options configures a Store.
type Options struct {
	// MaxLogs caps the entry list; DefaultMaxLogs when <= 0.
	MaxLogs int
	// Retained reports the externally-owned "preserve log" setting for
	// ClearIfNotRetained. Nil means not retained.
	Retained func() bool
	// OnAppend is invoked after each append or coalesce with a snapshot of
	// the affected entry, outside the store's lock. Used by the host to
	// push entries to the frontend.
	OnAppend func(Entry)
	// Now is a test seam; time.Now when nil.
	Now func() time.Time
}

// Store is the console log store. Every mutation runs as one atomic step
// under a single mutex, so interleaved WebView callbacks and UI reads
// never race; group balance, coalescing and eviction hold as invariants
// without per-field locking.
type Store struct {
	mu         sync.Mutex
	entries    *ringbuffer.Buffer[*Entry]
	groupStack []string
	collapsed  map[string]bool
	timers     map[string]time.Time
	counters   map[string]int
	capturing  bool

	retained func() bool
	onAppend func(Entry)
	now      func() time.Time
}

// NewStore builds an empty store with capture enabled.
func NewStore(opts Options) *Store {
	maxLogs := opts.MaxLogs
	if maxLogs <= 0 {
		maxLogs = DefaultMaxLogs
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		entries:   ringbuffer.New[*Entry](maxLogs),
		collapsed: make(map[string]bool),
		timers:    make(map[string]time.Time),
		counters:  make(map[string]int),
		capturing: true,
		retained:  opts.Retained,
		onAppend:  opts.OnAppend,
		now:       now,
	}
}

// AddLog ingests one console event. Group kinds mutate the group stack;
// everything else is tagged with the current depth and enclosing group,
// coalesced against the latest entry when possible, then appended with
// FIFO eviction.
func (s *Store) AddLog(kind EntryKind, message, source string, table *TableData, value *jsvalue.Value, segments []consolefmt.Segment) {
	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	snapshot, ok := s.ingestLocked(kind, message, source, table, value, segments)
	s.mu.Unlock()
	if ok {
		s.notify(snapshot)
	}
}

func (s *Store) ingestLocked(kind EntryKind, message, source string, table *TableData, value *jsvalue.Value, segments []consolefmt.Segment) (Entry, bool) {
	entry := &Entry{
		ID:          uuid.NewString(),
		Kind:        kind,
		Message:     message,
		Source:      source,
		Timestamp:   s.now(),
		GroupDepth:  len(s.groupStack),
		Value:       value,
		Table:       table,
		Segments:    segments,
		RepeatCount: 1,
	}
	if len(s.groupStack) > 0 {
		entry.GroupID = s.groupStack[len(s.groupStack)-1]
	}

	switch kind {
	case KindGroup, KindGroupCollapsed:
		// The header keeps the pre-push depth and enclosing group id; the
		// id it owns is what ToggleGroup takes.
		id := uuid.NewString()
		if kind == KindGroupCollapsed {
			s.collapsed[id] = true
		}
		s.groupStack = append(s.groupStack, id)
		entry.OwnedGroupID = id
	case KindGroupEnd:
		// Unbalanced close is a no-op, not an error.
		if len(s.groupStack) > 0 {
			s.groupStack = s.groupStack[:len(s.groupStack)-1]
		}
		entry.GroupDepth = len(s.groupStack)
		entry.GroupID = ""
		if len(s.groupStack) > 0 {
			entry.GroupID = s.groupStack[len(s.groupStack)-1]
		}
	default:
		if coalescible(kind) {
			if last, ok := s.entries.Last(); ok && last.sameAs(entry) {
				last.RepeatCount++
				last.Timestamp = entry.Timestamp
				return *last, true
			}
		}
	}

	s.entries.Append(entry)
	return *entry, true
}

// Time starts (or restarts) the labeled timer.
func (s *Store) Time(label string) {
	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	s.timers[label] = s.now()
	snapshot, ok := s.ingestLocked(KindTimeStart, label+": timer started", "", nil, nil, nil)
	s.mu.Unlock()
	if ok {
		s.notify(snapshot)
	}
}

// TimeLog reports elapsed time without stopping the timer.
func (s *Store) TimeLog(label string) {
	s.logElapsed(label, KindTimeLog, false)
}

// TimeEnd reports elapsed time and removes the timer.
func (s *Store) TimeEnd(label string) {
	s.logElapsed(label, KindTimeEnd, true)
}

func (s *Store) logElapsed(label string, kind EntryKind, remove bool) {
	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	start, found := s.timers[label]
	if found && remove {
		delete(s.timers, label)
	}

	var snapshot Entry
	var ok bool
	if !found {
		snapshot, ok = s.ingestLocked(KindError, fmt.Sprintf("Timer %q does not exist", label), "", nil, nil, nil)
	} else {
		ms := float64(s.now().Sub(start)) / float64(time.Millisecond)
		snapshot, ok = s.ingestLocked(kind, fmt.Sprintf("%s: %sms", label, jsvalue.FormatNumber(ms)), "", nil, nil, nil)
	}
	s.mu.Unlock()
	if ok {
		s.notify(snapshot)
	}
}

// Count increments the labeled counter and logs the new value.
func (s *Store) Count(label string) {
	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	s.counters[label]++
	snapshot, ok := s.ingestLocked(KindCount, fmt.Sprintf("%s: %d", label, s.counters[label]), "", nil, nil, nil)
	s.mu.Unlock()
	if ok {
		s.notify(snapshot)
	}
}

// CountReset removes the labeled counter and logs the prior value.
func (s *Store) CountReset(label string) {
	s.mu.Lock()
	if !s.capturing {
		s.mu.Unlock()
		return
	}
	prior := s.counters[label]
	delete(s.counters, label)
	snapshot, ok := s.ingestLocked(KindCountReset, fmt.Sprintf("%s: reset (was %d)", label, prior), "", nil, nil, nil)
	s.mu.Unlock()
	if ok {
		s.notify(snapshot)
	}
}

// Assert logs an assertion-failure entry when condition is false and does
// nothing otherwise.
func (s *Store) Assert(condition bool, message string) {
	if condition {
		return
	}
	if message == "" {
		message = "console.assert"
	}
	s.AddLog(KindAssert, "Assertion failed: "+message, "", nil, nil, nil)
}

// Clear empties the entry list and all group, collapse, timer and counter
// state unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries.Clear()
	s.groupStack = nil
	s.collapsed = make(map[string]bool)
	s.timers = make(map[string]time.Time)
	s.counters = make(map[string]int)
	s.mu.Unlock()
}

// ClearIfNotRetained clears unless the externally-owned retention setting
// says to preserve the log across navigations.
func (s *Store) ClearIfNotRetained() {
	if s.retained != nil && s.retained() {
		return
	}
	s.Clear()
}

// ToggleGroup flips a group's collapsed state. Only future queries are
// affected; stored entries never change.
func (s *Store) ToggleGroup(groupID string) {
	if groupID == "" {
		return
	}
	s.mu.Lock()
	if s.collapsed[groupID] {
		delete(s.collapsed, groupID)
	} else {
		s.collapsed[groupID] = true
	}
	s.mu.Unlock()
}

// SetCapturing pauses or resumes ingest. While paused every mutating
// operation short-circuits with no state change; stored entries stay put
// and missed events are not replayed on resume.
func (s *Store) SetCapturing(capturing bool) {
	s.mu.Lock()
	s.capturing = capturing
	s.mu.Unlock()
}

// IsCapturing reports whether ingest is active.
func (s *Store) IsCapturing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capturing
}

// SetMaxLogs adjusts the capacity bound, evicting oldest entries if the
// store is already over the new bound.
func (s *Store) SetMaxLogs(maxLogs int) {
	if maxLogs <= 0 {
		maxLogs = DefaultMaxLogs
	}
	s.mu.Lock()
	s.entries.SetCap(maxLogs)
	s.mu.Unlock()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

// GroupDepth returns the current open-group nesting depth.
func (s *Store) GroupDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groupStack)
}

// ErrorCount sums occurrences of error entries, repeats included.
func (s *Store) ErrorCount() int {
	return s.countKinds(KindError, KindAssert)
}

// WarnCount sums occurrences of warning entries, repeats included.
func (s *Store) WarnCount() int {
	return s.countKinds(KindWarn)
}

func (s *Store) countKinds(kinds ...EntryKind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, entry := range s.entries.Items() {
		for _, kind := range kinds {
			if entry.Kind == kind {
				total += entry.RepeatCount
			}
		}
	}
	return total
}

// Entries returns a snapshot of all stored entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []Entry {
	items := s.entries.Items()
	out := make([]Entry, len(items))
	for i, entry := range items {
		out[i] = *entry
	}
	return out
}

func (s *Store) notify(entry Entry) {
	if s.onAppend != nil {
		s.onAppend(entry)
	}
}
