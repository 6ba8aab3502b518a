package evaluator

import (
	"fmt"
	"math/big"
	"time"

	"github.com/dop251/goja"
)

// Encoding limits mirror what the WebView-side encoder applies before a
// payload crosses the bridge.
const (
	maxEncodeElements   = 100
	maxEncodeProperties = 50
)

// encoder builds tagged wire payloads from live goja values. Cycle
// detection happens here, on object identity, exactly because the decoder
// cannot do it after identity is lost: a revisited object becomes an
// explicit "circular" tag carrying its path.
type encoder struct {
	rt   *goja.Runtime
	seen map[*goja.Object]string
}

// encodeValue converts v into the tagged payload form the value decoder
// consumes.
func encodeValue(rt *goja.Runtime, v goja.Value) map[string]any {
	enc := &encoder{rt: rt, seen: make(map[*goja.Object]string)}
	return enc.encode(v, "$")
}

func (enc *encoder) encode(v goja.Value, path string) map[string]any {
	if v == nil || goja.IsUndefined(v) {
		return map[string]any{"type": "undefined"}
	}
	if goja.IsNull(v) {
		return map[string]any{"type": "null"}
	}
	if _, ok := v.(*goja.Symbol); ok {
		return map[string]any{"type": "symbol", "value": v.String()}
	}

	switch exported := v.Export().(type) {
	case bool:
		return map[string]any{"type": "boolean", "value": exported}
	case string:
		return map[string]any{"type": "string", "value": exported}
	case int64:
		return map[string]any{"type": "number", "value": float64(exported)}
	case float64:
		return map[string]any{"type": "number", "value": exported}
	case *big.Int:
		return map[string]any{"type": "bigint", "value": exported.String() + "n"}
	case time.Time:
		return map[string]any{"type": "date", "value": exported.UTC().Format(time.RFC3339)}
	}

	obj, ok := v.(*goja.Object)
	if !ok {
		return map[string]any{"type": "string", "value": v.String()}
	}
	if seenPath, ok := enc.seen[obj]; ok {
		return map[string]any{"type": "circular", "path": seenPath}
	}
	enc.seen[obj] = path
	defer delete(enc.seen, obj)

	switch obj.ClassName() {
	case "Array":
		return enc.encodeArray(obj, path)
	case "Function":
		name := ""
		if n := obj.Get("name"); n != nil && !goja.IsUndefined(n) {
			name = n.String()
		}
		return map[string]any{"type": "function", "name": name}
	case "Error":
		payload := map[string]any{"type": "error", "message": stringProp(obj, "message")}
		if stack := stringProp(obj, "stack"); stack != "" {
			payload["stack"] = stack
		}
		return payload
	case "Map":
		return enc.encodeMap(obj, path)
	case "Set":
		return enc.encodeSet(obj, path)
	case "RegExp":
		return map[string]any{"type": "string", "value": obj.String()}
	default:
		return enc.encodeObject(obj, path)
	}
}

func (enc *encoder) encodeArray(obj *goja.Object, path string) map[string]any {
	length := 0
	if n := obj.Get("length"); n != nil {
		length = int(n.ToInteger())
	}
	limit := length
	truncated := false
	if limit > maxEncodeElements {
		limit = maxEncodeElements
		truncated = true
	}
	items := make([]any, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, enc.encode(obj.Get(fmt.Sprintf("%d", i)), fmt.Sprintf("%s[%d]", path, i)))
	}
	return map[string]any{
		"type":      "array",
		"items":     items,
		"length":    length,
		"truncated": truncated,
	}
}

func (enc *encoder) encodeObject(obj *goja.Object, path string) map[string]any {
	keys := obj.Keys()
	truncated := false
	if len(keys) > maxEncodeProperties {
		keys = keys[:maxEncodeProperties]
		truncated = true
	}
	properties := make(map[string]any, len(keys))
	for _, key := range keys {
		properties[key] = enc.encode(obj.Get(key), path+"."+key)
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"truncated":  truncated,
	}
}

func (enc *encoder) encodeMap(obj *goja.Object, path string) map[string]any {
	entries := make([]any, 0)
	enc.forEach(obj, func(value, key goja.Value) {
		keyLabel := displayString(key)
		entries = append(entries, map[string]any{
			"keyString": keyLabel,
			"value":     enc.encode(value, path+"["+keyLabel+"]"),
		})
	})
	return map[string]any{"type": "map", "entries": entries}
}

func (enc *encoder) encodeSet(obj *goja.Object, path string) map[string]any {
	values := make([]any, 0)
	i := 0
	enc.forEach(obj, func(value, _ goja.Value) {
		values = append(values, enc.encode(value, fmt.Sprintf("%s[%d]", path, i)))
		i++
	})
	return map[string]any{"type": "set", "values": values}
}

// forEach walks a Map or Set through its own forEach method, preserving
// insertion order, which Go-side export would lose.
func (enc *encoder) forEach(obj *goja.Object, visit func(value, key goja.Value)) {
	fn, ok := goja.AssertFunction(obj.Get("forEach"))
	if !ok {
		return
	}
	callback := enc.rt.ToValue(func(call goja.FunctionCall) goja.Value {
		var key goja.Value = goja.Undefined()
		if len(call.Arguments) > 1 {
			key = call.Arguments[1]
		}
		if len(call.Arguments) > 0 {
			visit(call.Arguments[0], key)
		}
		return goja.Undefined()
	})
	_, _ = fn(obj, callback)
}

func stringProp(obj *goja.Object, name string) string {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

func displayString(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
