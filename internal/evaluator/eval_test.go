package evaluator

import (
	"strings"
	"testing"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

type sinkCall struct {
	kind    console.EntryKind
	message string
	source  string
	table   *console.TableData
	value   *jsvalue.Value
	styled  []consolefmt.Segment
}

type fakeSink struct {
	logs    []sinkCall
	times   []string
	ends    []string
	counts  []string
	asserts []struct {
		condition bool
		message   string
	}
	cleared int
}

func (f *fakeSink) AddLog(kind console.EntryKind, message, source string, table *console.TableData, value *jsvalue.Value, segments []consolefmt.Segment) {
	f.logs = append(f.logs, sinkCall{kind: kind, message: message, source: source, table: table, value: value, styled: segments})
}
func (f *fakeSink) Time(label string)    { f.times = append(f.times, label) }
func (f *fakeSink) TimeLog(label string) {}
func (f *fakeSink) TimeEnd(label string) { f.ends = append(f.ends, label) }
func (f *fakeSink) Count(label string)   { f.counts = append(f.counts, label) }
func (f *fakeSink) CountReset(label string) {}
func (f *fakeSink) Assert(condition bool, message string) {
	f.asserts = append(f.asserts, struct {
		condition bool
		message   string
	}{condition, message})
}
func (f *fakeSink) Clear() { f.cleared++ }

func TestEvaluate_ReturnsResult(t *testing.T) {
	e := New(&fakeSink{}, "eval")

	result, err := e.Evaluate("1 + 2")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if n, ok := result.(int64); !ok || n != 3 {
		t.Fatalf("result=%v (%T) want 3", result, result)
	}
}

func TestEvaluate_UndefinedResultIsNil(t *testing.T) {
	e := New(&fakeSink{}, "eval")
	result, err := e.Evaluate("undefined")
	if err != nil || result != nil {
		t.Fatalf("result=%v err=%v want nil/nil", result, err)
	}
	result, err = e.Evaluate("   ")
	if err != nil || result != nil {
		t.Fatalf("blank expr result=%v err=%v", result, err)
	}
}

func TestEvaluate_ScriptErrorReturned(t *testing.T) {
	e := New(&fakeSink{}, "eval")
	if _, err := e.Evaluate("throw new Error('bad')"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := e.Evaluate("not valid js {{"); err == nil {
		t.Fatalf("expected syntax error")
	}
}

func TestEvaluate_ConsoleLogReachesSink(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")

	if _, err := e.Evaluate("console.log('hello', 2)"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(sink.logs) != 1 {
		t.Fatalf("logs=%d want 1", len(sink.logs))
	}
	entry := sink.logs[0]
	if entry.kind != console.KindLog || entry.message != "hello 2" || entry.source != "eval" {
		t.Fatalf("entry=%+v", entry)
	}
}

func TestEvaluate_ConsoleLevels(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	script := `
		console.info('i');
		console.warn('w');
		console.error('e');
		console.debug('d');
	`
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	wantKinds := []console.EntryKind{console.KindInfo, console.KindWarn, console.KindError, console.KindDebug}
	if len(sink.logs) != len(wantKinds) {
		t.Fatalf("logs=%d want %d", len(sink.logs), len(wantKinds))
	}
	for i, want := range wantKinds {
		if sink.logs[i].kind != want {
			t.Fatalf("logs[%d].kind=%q want %q", i, sink.logs[i].kind, want)
		}
	}
}

func TestEvaluate_FormatSpecifiers(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	if _, err := e.Evaluate("console.log('%cstyled', 'color: red')"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	entry := sink.logs[0]
	if entry.message != "styled" {
		t.Fatalf("message=%q", entry.message)
	}
	if len(entry.styled) != 1 || entry.styled[0].Style == nil || entry.styled[0].Style.Foreground == nil {
		t.Fatalf("segments=%+v want styled segment", entry.styled)
	}
}

func TestEvaluate_LoneObjectCarriesValue(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	if _, err := e.Evaluate("console.log({a: 1, b: 'two'})"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	entry := sink.logs[0]
	if entry.value == nil || entry.value.Kind != jsvalue.KindObject {
		t.Fatalf("value=%+v want decoded object", entry.value)
	}
	props := entry.value.Object.Properties
	if props["a"].Number != 1 || props["b"].Text != "two" {
		t.Fatalf("props=%+v", props)
	}
}

func TestEvaluate_CircularObjectGetsCircularTag(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	if _, err := e.Evaluate("var o = {name: 'x'}; o.self = o; console.log(o)"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	entry := sink.logs[0]
	if entry.value == nil || entry.value.Kind != jsvalue.KindObject {
		t.Fatalf("value=%+v", entry.value)
	}
	self := entry.value.Object.Properties["self"]
	if self == nil || self.Kind != jsvalue.KindCircular {
		t.Fatalf("self=%+v want circular reference", self)
	}
	if self.Text != "$" {
		t.Fatalf("path=%q want $", self.Text)
	}
}

func TestEvaluate_SharedSiblingIsNotCircular(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	script := "var shared = {v: 1}; console.log({a: shared, b: shared})"
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	props := sink.logs[0].value.Object.Properties
	if props["a"].Kind != jsvalue.KindObject || props["b"].Kind != jsvalue.KindObject {
		t.Fatalf("shared sibling miscoded as cycle: a=%+v b=%+v", props["a"], props["b"])
	}
}

func TestEvaluate_MapSetDateError(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	script := `console.log({
		m: new Map([['k1', 1], ['k2', 2]]),
		s: new Set([1, 2, 3]),
		d: new Date('2026-05-04T03:02:01Z'),
		err: new Error('kaput')
	})`
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	props := sink.logs[0].value.Object.Properties

	m := props["m"]
	if m.Kind != jsvalue.KindMap || len(m.Entries) != 2 || m.Entries[0].Key != "k1" {
		t.Fatalf("map=%+v", m)
	}
	s := props["s"]
	if s.Kind != jsvalue.KindSet || len(s.Members) != 3 {
		t.Fatalf("set=%+v", s)
	}
	d := props["d"]
	if d.Kind != jsvalue.KindDate || d.Time.IsZero() {
		t.Fatalf("date=%+v", d)
	}
	errVal := props["err"]
	if errVal.Kind != jsvalue.KindError || !strings.Contains(errVal.Text, "kaput") {
		t.Fatalf("error=%+v", errVal)
	}
}

func TestEvaluate_LargeArrayTruncated(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	script := "console.log(Array.from({length: 250}, (_, i) => i))"
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	arr := sink.logs[0].value.Array
	if arr == nil {
		t.Fatalf("value=%+v want array", sink.logs[0].value)
	}
	if len(arr.Elements) != 100 || arr.TotalCount != 250 || !arr.Truncated {
		t.Fatalf("elements=%d total=%d truncated=%v", len(arr.Elements), arr.TotalCount, arr.Truncated)
	}
}

func TestEvaluate_TimerCounterGroupBindings(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	script := `
		console.time('load');
		console.timeEnd('load');
		console.count('clicks');
		console.group('section');
		console.groupEnd();
		console.assert(false, 'broken');
		console.clear();
	`
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(sink.times) != 1 || sink.times[0] != "load" {
		t.Fatalf("times=%v", sink.times)
	}
	if len(sink.ends) != 1 || len(sink.counts) != 1 {
		t.Fatalf("ends=%v counts=%v", sink.ends, sink.counts)
	}
	if len(sink.asserts) != 1 || sink.asserts[0].condition || sink.asserts[0].message != "broken" {
		t.Fatalf("asserts=%+v", sink.asserts)
	}
	if sink.cleared != 1 {
		t.Fatalf("cleared=%d", sink.cleared)
	}
	var sawGroup, sawGroupEnd bool
	for _, log := range sink.logs {
		if log.kind == console.KindGroup && log.message == "section" {
			sawGroup = true
		}
		if log.kind == console.KindGroupEnd {
			sawGroupEnd = true
		}
	}
	if !sawGroup || !sawGroupEnd {
		t.Fatalf("group calls missing: %+v", sink.logs)
	}
}

func TestEvaluate_ConsoleTable(t *testing.T) {
	sink := &fakeSink{}
	e := New(sink, "eval")
	if _, err := e.Evaluate("console.table([{id: 1}, {id: 2}])"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	entry := sink.logs[0]
	if entry.kind != console.KindTable || entry.table == nil {
		t.Fatalf("entry=%+v want table", entry)
	}
	if len(entry.table.Rows) != 2 {
		t.Fatalf("rows=%v", entry.table.Rows)
	}
}

func TestEvaluate_AgainstRealStore(t *testing.T) {
	store := console.NewStore(console.Options{})
	e := New(store, "eval")

	script := `
		console.group('req');
		console.log('sent');
		console.groupEnd();
		console.log('done');
	`
	if _, err := e.Evaluate(script); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	visible := store.Visible(console.Query{})
	if len(visible) != 3 {
		t.Fatalf("visible=%d want header + member + done", len(visible))
	}
	if visible[1].Message != "sent" || visible[1].GroupDepth != 1 {
		t.Fatalf("member=%+v", visible[1])
	}
}
