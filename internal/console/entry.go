// Package console owns the in-app developer console's log store: the
// bounded entry list plus the grouping, coalescing, timer, counter and
// assertion bookkeeping applied while the embedded WebView streams
// diagnostic events at it.
package console

import (
	"reflect"
	"time"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// EntryKind identifies what produced a console entry.
type EntryKind string

const (
	KindLog            EntryKind = "log"
	KindInfo           EntryKind = "info"
	KindWarn           EntryKind = "warn"
	KindError          EntryKind = "error"
	KindDebug          EntryKind = "debug"
	KindGroup          EntryKind = "group"
	KindGroupCollapsed EntryKind = "groupCollapsed"
	KindGroupEnd       EntryKind = "groupEnd"
	KindTable          EntryKind = "table"
	KindTimeStart      EntryKind = "timeStart"
	KindTimeLog        EntryKind = "timeLog"
	KindTimeEnd        EntryKind = "timeEnd"
	KindCount          EntryKind = "count"
	KindCountReset     EntryKind = "countReset"
	KindAssert         EntryKind = "assert"
	KindDir            EntryKind = "dir"
	KindTrace          EntryKind = "trace"
	KindCommand        EntryKind = "command"
	KindResult         EntryKind = "result"
)

// TableData carries the parsed rows of a console.table call.
type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Entry is one stored console line. RepeatCount is the only field mutated
// after append, when an identical entry is coalesced into this one.
type Entry struct {
	ID         string    `json:"id"`
	Kind       EntryKind `json:"kind"`
	Message    string    `json:"message"`
	Source     string    `json:"source,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	GroupDepth int       `json:"groupDepth"`
	GroupID    string    `json:"groupId,omitempty"`
	// OwnedGroupID is set on group-header entries only: the id of the
	// group this entry opens, distinct from the enclosing GroupID.
	OwnedGroupID string               `json:"ownedGroupId,omitempty"`
	Value        *jsvalue.Value       `json:"value,omitempty"`
	Table        *TableData           `json:"table,omitempty"`
	Segments     []consolefmt.Segment `json:"segments,omitempty"`
	RepeatCount  int                  `json:"repeatCount"`
}

// coalescible reports whether consecutive identical entries of this kind
// merge into a repeat count instead of stacking up.
func coalescible(kind EntryKind) bool {
	switch kind {
	case KindLog, KindInfo, KindWarn, KindError, KindDebug, KindDir, KindTrace:
		return true
	}
	return false
}

// sameAs is the coalescing equality rule. Structured payloads compare by
// deep equality.
func (e *Entry) sameAs(other *Entry) bool {
	if e == nil || other == nil {
		return false
	}
	if e.Kind != other.Kind || e.Message != other.Message || e.Source != other.Source {
		return false
	}
	if e.GroupDepth != other.GroupDepth || e.GroupID != other.GroupID {
		return false
	}
	if !reflect.DeepEqual(e.Value, other.Value) {
		return false
	}
	if !reflect.DeepEqual(e.Table, other.Table) {
		return false
	}
	return reflect.DeepEqual(e.Segments, other.Segments)
}
