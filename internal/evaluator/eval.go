// Package evaluator runs user-entered console expressions in an embedded
// goja VM. The VM's console bindings feed the log store through a sink, and
// evaluated values are funneled through the same tagged wire-payload form
// the WebView bridge uses, so the decoder path is exercised either way.
package evaluator

import (
	"strings"

	"github.com/dop251/goja"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// Sink receives everything the evaluated script logs. *console.Store
// satisfies it.
type Sink interface {
	AddLog(kind console.EntryKind, message, source string, table *console.TableData, value *jsvalue.Value, segments []consolefmt.Segment)
	Time(label string)
	TimeLog(label string)
	TimeEnd(label string)
	Count(label string)
	CountReset(label string)
	Assert(condition bool, message string)
	Clear()
}

// Evaluator executes expressions against a fresh VM per call so state from
// one command never leaks into the next.
type Evaluator struct {
	sink   Sink
	source string
}

// New builds an Evaluator logging to sink; source tags the entries the
// script produces (e.g. "eval").
func New(sink Sink, source string) *Evaluator {
	if source == "" {
		source = "eval"
	}
	return &Evaluator{sink: sink, source: source}
}

// Evaluate runs expr and returns its exported result, nil for undefined.
// Script errors come back as normal Go errors; console output the script
// produced before failing has already reached the sink.
func (e *Evaluator) Evaluate(expr string) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	vm := goja.New()
	e.bindConsole(vm)

	result, err := vm.RunString(expr)
	if err != nil {
		return nil, err
	}
	if result == nil || goja.IsUndefined(result) {
		return nil, nil
	}
	return result.Export(), nil
}

func (e *Evaluator) bindConsole(vm *goja.Runtime) {
	consoleObj := vm.NewObject()

	logFn := func(kind console.EntryKind) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			e.emit(vm, kind, call.Arguments)
			return goja.Undefined()
		}
	}
	_ = consoleObj.Set("log", logFn(console.KindLog))
	_ = consoleObj.Set("info", logFn(console.KindInfo))
	_ = consoleObj.Set("warn", logFn(console.KindWarn))
	_ = consoleObj.Set("error", logFn(console.KindError))
	_ = consoleObj.Set("debug", logFn(console.KindDebug))
	_ = consoleObj.Set("trace", logFn(console.KindTrace))

	_ = consoleObj.Set("dir", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		arg := call.Arguments[0]
		value := jsvalue.Decode(encodeValue(vm, arg))
		e.sink.AddLog(console.KindDir, displayString(arg), e.source, nil, value, nil)
		return goja.Undefined()
	})

	_ = consoleObj.Set("table", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		value := jsvalue.Decode(encodeValue(vm, call.Arguments[0]))
		table := console.BuildTable(value)
		e.sink.AddLog(console.KindTable, "console.table", e.source, table, value, nil)
		return goja.Undefined()
	})

	_ = consoleObj.Set("group", func(call goja.FunctionCall) goja.Value {
		e.sink.AddLog(console.KindGroup, groupLabel(vm, call.Arguments), e.source, nil, nil, nil)
		return goja.Undefined()
	})
	_ = consoleObj.Set("groupCollapsed", func(call goja.FunctionCall) goja.Value {
		e.sink.AddLog(console.KindGroupCollapsed, groupLabel(vm, call.Arguments), e.source, nil, nil, nil)
		return goja.Undefined()
	})
	_ = consoleObj.Set("groupEnd", func(call goja.FunctionCall) goja.Value {
		e.sink.AddLog(console.KindGroupEnd, "", e.source, nil, nil, nil)
		return goja.Undefined()
	})

	labelFn := func(op func(string)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			label := "default"
			if len(call.Arguments) > 0 {
				label = call.Arguments[0].String()
			}
			op(label)
			return goja.Undefined()
		}
	}
	_ = consoleObj.Set("time", labelFn(e.sink.Time))
	_ = consoleObj.Set("timeLog", labelFn(e.sink.TimeLog))
	_ = consoleObj.Set("timeEnd", labelFn(e.sink.TimeEnd))
	_ = consoleObj.Set("count", labelFn(e.sink.Count))
	_ = consoleObj.Set("countReset", labelFn(e.sink.CountReset))

	_ = consoleObj.Set("assert", func(call goja.FunctionCall) goja.Value {
		condition := len(call.Arguments) > 0 && call.Arguments[0].ToBoolean()
		message := ""
		if len(call.Arguments) > 1 {
			message = buildMessage(vm, call.Arguments[1:])
		}
		e.sink.Assert(condition, message)
		return goja.Undefined()
	})

	_ = consoleObj.Set("clear", func(call goja.FunctionCall) goja.Value {
		e.sink.Clear()
		return goja.Undefined()
	})

	_ = vm.Set("console", consoleObj)
}

// emit turns a console.* call into a store entry: format expansion when
// the first argument is a format string, plus a structured payload when a
// lone composite value is logged.
func (e *Evaluator) emit(vm *goja.Runtime, kind console.EntryKind, args []goja.Value) {
	if len(args) == 0 {
		e.sink.AddLog(kind, "", e.source, nil, nil, nil)
		return
	}

	var value *jsvalue.Value
	if len(args) == 1 {
		if _, isObject := args[0].(*goja.Object); isObject {
			value = jsvalue.Decode(encodeValue(vm, args[0]))
		}
	}

	var segments []consolefmt.Segment
	message := ""
	if first, ok := args[0].Export().(string); ok && strings.ContainsRune(first, '%') {
		rest := make([]any, 0, len(args)-1)
		for _, arg := range args[1:] {
			rest = append(rest, exportArg(vm, arg))
		}
		segments = consolefmt.Expand(first, rest)
		parts := make([]string, len(segments))
		for i, seg := range segments {
			parts[i] = seg.Text
		}
		message = strings.Join(parts, "")
		if !hasStyle(segments) {
			segments = nil
		}
	} else {
		message = buildMessage(vm, args)
	}

	e.sink.AddLog(kind, message, e.source, nil, value, segments)
}

func hasStyle(segments []consolefmt.Segment) bool {
	for _, seg := range segments {
		if seg.Style != nil {
			return true
		}
	}
	return false
}

// exportArg flattens a goja value into something the format expander can
// substitute: primitives as themselves, composites as decoded values.
func exportArg(vm *goja.Runtime, arg goja.Value) any {
	switch exported := arg.Export().(type) {
	case nil, bool, string, int64, float64:
		return exported
	default:
		return jsvalue.Decode(encodeValue(vm, arg))
	}
}

func buildMessage(vm *goja.Runtime, args []goja.Value) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, jsvalue.Decode(encodeValue(vm, arg)).Display())
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func groupLabel(vm *goja.Runtime, args []goja.Value) string {
	if len(args) == 0 {
		return "console.group"
	}
	return buildMessage(vm, args)
}
