package jsvalue

import (
	"fmt"
	"time"
)

// DefaultMaxDepth bounds value-tree nesting for the standard ingest path.
const DefaultMaxDepth = 5

// MaxDepthText is the leaf substituted once decoding hits the depth bound.
const MaxDepthText = "[Max Depth]"

// Decode converts a tagged wire payload into a Value using the default
// depth bound. It returns nil when the payload has no recognizable type
// tag; callers fall back to raw-string rendering.
func Decode(payload map[string]any) *Value {
	return DecodeDepth(payload, 0, DefaultMaxDepth)
}

// DecodeDepth decodes payload as a node already depth levels deep in the
// tree. Once depth reaches maxDepth the node is replaced by a string leaf
// rather than recursing further. Cycle handling is the encoder's job: true
// cycles arrive as explicit "circular" tags, so sibling subtrees decode
// independently with no shared visited state.
func DecodeDepth(payload map[string]any, depth, maxDepth int) *Value {
	if payload == nil {
		return nil
	}
	tag, ok := payload["type"].(string)
	if !ok {
		return nil
	}
	if depth >= maxDepth {
		return &Value{Kind: KindString, Text: MaxDepthText}
	}

	switch tag {
	case "null":
		return &Value{Kind: KindNull}
	case "undefined":
		return &Value{Kind: KindUndefined}
	case "boolean":
		b, ok := payload["value"].(bool)
		if !ok {
			return nil
		}
		return &Value{Kind: KindBoolean, Boolean: b}
	case "number":
		n, ok := toFloat(payload["value"])
		if !ok {
			return nil
		}
		return &Value{Kind: KindNumber, Number: n}
	case "string":
		s, ok := payload["value"].(string)
		if !ok {
			return nil
		}
		return &Value{Kind: KindString, Text: s}
	case "symbol", "bigint":
		// No dedicated variant: both are display-only leaves.
		s, ok := payload["value"].(string)
		if !ok {
			return nil
		}
		return &Value{Kind: KindString, Text: s}
	case "function":
		name, _ := payload["name"].(string)
		return &Value{Kind: KindFunction, Text: name}
	case "date":
		iso, ok := payload["value"].(string)
		if !ok {
			return nil
		}
		v := &Value{Kind: KindDate, Text: iso}
		if t, err := time.Parse(time.RFC3339, iso); err == nil {
			v.Time = t
		}
		return v
	case "error":
		message, ok := payload["message"].(string)
		if !ok {
			return nil
		}
		text := message
		if stack, ok := payload["stack"].(string); ok && stack != "" {
			text = message + "\n" + stack
		}
		return &Value{Kind: KindError, Text: text}
	case "dom":
		tagName, ok := payload["tag"].(string)
		if !ok {
			return nil
		}
		return &Value{Kind: KindDOMNode, Tag: tagName, Attributes: toStringMap(payload["attributes"])}
	case "circular":
		path, _ := payload["path"].(string)
		return &Value{Kind: KindCircular, Text: path}
	case "array":
		return decodeArray(payload, depth, maxDepth)
	case "object":
		return decodeObject(payload, depth, maxDepth)
	case "map":
		return decodeMap(payload, depth, maxDepth)
	case "set":
		return decodeSet(payload, depth, maxDepth)
	}
	return nil
}

func decodeArray(payload map[string]any, depth, maxDepth int) *Value {
	items, _ := payload["items"].([]any)
	elements := make([]*Value, 0, len(items))
	for _, item := range items {
		elements = append(elements, decodeChild(item, depth+1, maxDepth))
	}
	truncated, _ := payload["truncated"].(bool)
	total := len(elements)
	if n, ok := toFloat(payload["length"]); ok && int(n) >= len(elements) {
		total = int(n)
	}
	return &Value{Kind: KindArray, Array: &Array{
		Elements:   elements,
		TotalCount: total,
		Depth:      depth,
		Truncated:  truncated,
	}}
}

func decodeObject(payload map[string]any, depth, maxDepth int) *Value {
	props, _ := payload["properties"].(map[string]any)
	properties := make(map[string]*Value, len(props))
	for name, raw := range props {
		properties[name] = decodeChild(raw, depth+1, maxDepth)
	}
	truncated, _ := payload["truncated"].(bool)
	return &Value{Kind: KindObject, Object: &Object{
		Properties: properties,
		Depth:      depth,
		Truncated:  truncated,
	}}
}

func decodeMap(payload map[string]any, depth, maxDepth int) *Value {
	rawEntries, _ := payload["entries"].([]any)
	entries := make([]MapEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		pair, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		key, _ := pair["keyString"].(string)
		entries = append(entries, MapEntry{Key: key, Value: decodeChild(pair["value"], depth+1, maxDepth)})
	}
	return &Value{Kind: KindMap, Entries: entries}
}

func decodeSet(payload map[string]any, depth, maxDepth int) *Value {
	rawValues, _ := payload["values"].([]any)
	members := make([]*Value, 0, len(rawValues))
	for _, raw := range rawValues {
		members = append(members, decodeChild(raw, depth+1, maxDepth))
	}
	return &Value{Kind: KindSet, Members: members}
}

// decodeChild decodes a nested payload, substituting a raw-string leaf when
// the child is malformed so one bad element never drops its siblings.
func decodeChild(raw any, depth, maxDepth int) *Value {
	if child, ok := raw.(map[string]any); ok {
		if v := DecodeDepth(child, depth, maxDepth); v != nil {
			return v
		}
	}
	return &Value{Kind: KindString, Text: fmt.Sprint(raw)}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toStringMap(raw any) map[string]string {
	result := make(map[string]string)
	switch data := raw.(type) {
	case map[string]string:
		for k, v := range data {
			result[k] = v
		}
	case map[string]any:
		for k, v := range data {
			result[k] = fmt.Sprint(v)
		}
	}
	return result
}
