package jsvalue

import "testing"

func TestDecode_Leaves(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		check   func(t *testing.T, v *Value)
	}{
		{
			name:    "null",
			payload: map[string]any{"type": "null"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindNull {
					t.Fatalf("kind=%q want null", v.Kind)
				}
			},
		},
		{
			name:    "undefined",
			payload: map[string]any{"type": "undefined"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindUndefined {
					t.Fatalf("kind=%q want undefined", v.Kind)
				}
			},
		},
		{
			name:    "boolean",
			payload: map[string]any{"type": "boolean", "value": true},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindBoolean || !v.Boolean {
					t.Fatalf("got %+v want boolean true", v)
				}
			},
		},
		{
			name:    "number",
			payload: map[string]any{"type": "number", "value": 3.5},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindNumber || v.Number != 3.5 {
					t.Fatalf("got %+v want number 3.5", v)
				}
			},
		},
		{
			name:    "string",
			payload: map[string]any{"type": "string", "value": "hi"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindString || v.Text != "hi" {
					t.Fatalf("got %+v want string hi", v)
				}
			},
		},
		{
			name:    "function",
			payload: map[string]any{"type": "function", "name": "fetchData"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindFunction || v.Text != "fetchData" {
					t.Fatalf("got %+v want function fetchData", v)
				}
			},
		},
		{
			name:    "date",
			payload: map[string]any{"type": "date", "value": "2025-06-01T12:00:00Z"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindDate || v.Time.IsZero() {
					t.Fatalf("got %+v want parsed date", v)
				}
			},
		},
		{
			name:    "error with stack",
			payload: map[string]any{"type": "error", "message": "boom", "stack": "at line 1"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindError || v.Text != "boom\nat line 1" {
					t.Fatalf("got %+v want error boom with stack", v)
				}
			},
		},
		{
			name:    "symbol maps to string leaf",
			payload: map[string]any{"type": "symbol", "value": "Symbol(id)"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindString || v.Text != "Symbol(id)" {
					t.Fatalf("got %+v want string Symbol(id)", v)
				}
			},
		},
		{
			name:    "bigint maps to string leaf",
			payload: map[string]any{"type": "bigint", "value": "9007199254740993n"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindString || v.Text != "9007199254740993n" {
					t.Fatalf("got %+v want string bigint", v)
				}
			},
		},
		{
			name:    "circular",
			payload: map[string]any{"type": "circular", "path": "root.self"},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindCircular || v.Text != "root.self" {
					t.Fatalf("got %+v want circular root.self", v)
				}
			},
		},
		{
			name: "dom",
			payload: map[string]any{
				"type":       "dom",
				"tag":        "div",
				"attributes": map[string]any{"id": "main", "class": "box"},
			},
			check: func(t *testing.T, v *Value) {
				if v.Kind != KindDOMNode || v.Tag != "div" {
					t.Fatalf("got %+v want dom div", v)
				}
				if v.Attributes["id"] != "main" || v.Attributes["class"] != "box" {
					t.Fatalf("attributes=%v", v.Attributes)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Decode(tt.payload)
			if v == nil {
				t.Fatalf("Decode returned nil")
			}
			tt.check(t, v)
		})
	}
}

func TestDecode_UnrecognizedOrMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "nil payload", payload: nil},
		{name: "missing type", payload: map[string]any{"value": 1}},
		{name: "unknown tag", payload: map[string]any{"type": "blob"}},
		{name: "boolean without value", payload: map[string]any{"type": "boolean"}},
		{name: "number with string value", payload: map[string]any{"type": "number", "value": "x"}},
		{name: "error without message", payload: map[string]any{"type": "error"}},
		{name: "dom without tag", payload: map[string]any{"type": "dom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if v := Decode(tt.payload); v != nil {
				t.Fatalf("expected nil, got %+v", v)
			}
		})
	}
}

func TestDecode_DepthGuard(t *testing.T) {
	// Any recognized tag at the depth bound becomes the placeholder leaf.
	payload := map[string]any{"type": "object", "properties": map[string]any{}}
	v := DecodeDepth(payload, DefaultMaxDepth, DefaultMaxDepth)
	if v == nil || v.Kind != KindString || v.Text != MaxDepthText {
		t.Fatalf("got %+v want max-depth placeholder", v)
	}

	// Nesting deeper than the bound is cut off, not recursed.
	deep := map[string]any{"type": "string", "value": "leaf"}
	for i := 0; i < 10; i++ {
		deep = map[string]any{
			"type":       "object",
			"properties": map[string]any{"next": deep},
		}
	}
	v = Decode(deep)
	depth := 0
	for v.Kind == KindObject {
		v = v.Object.Properties["next"]
		depth++
	}
	if v.Text != MaxDepthText {
		t.Fatalf("expected placeholder at cutoff, got %+v", v)
	}
	if depth >= 10 {
		t.Fatalf("recursion was not bounded, walked %d levels", depth)
	}
}

func TestDecode_Array(t *testing.T) {
	payload := map[string]any{
		"type": "array",
		"items": []any{
			map[string]any{"type": "number", "value": float64(1)},
			map[string]any{"type": "string", "value": "two"},
		},
		"length":    float64(50),
		"truncated": true,
	}
	v := Decode(payload)
	if v == nil || v.Kind != KindArray {
		t.Fatalf("got %+v want array", v)
	}
	arr := v.Array
	if len(arr.Elements) != 2 || arr.TotalCount != 50 || !arr.Truncated {
		t.Fatalf("array=%+v", arr)
	}
	if len(arr.Elements) > arr.TotalCount {
		t.Fatalf("elements %d exceed total %d", len(arr.Elements), arr.TotalCount)
	}
}

func TestDecode_ArrayLengthNeverBelowElements(t *testing.T) {
	payload := map[string]any{
		"type": "array",
		"items": []any{
			map[string]any{"type": "number", "value": float64(1)},
			map[string]any{"type": "number", "value": float64(2)},
		},
		"length": float64(1),
	}
	v := Decode(payload)
	if v.Array.TotalCount != 2 {
		t.Fatalf("total=%d want clamp to element count", v.Array.TotalCount)
	}
}

func TestDecode_ObjectMapSet(t *testing.T) {
	payload := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "value": "walnut"},
			"tags": map[string]any{
				"type":   "set",
				"values": []any{map[string]any{"type": "number", "value": float64(7)}},
			},
			"meta": map[string]any{
				"type": "map",
				"entries": []any{
					map[string]any{"keyString": "k1", "value": map[string]any{"type": "boolean", "value": false}},
				},
			},
		},
		"truncated": false,
	}
	v := Decode(payload)
	if v == nil || v.Kind != KindObject {
		t.Fatalf("got %+v want object", v)
	}
	props := v.Object.Properties
	if props["name"].Text != "walnut" {
		t.Fatalf("name=%+v", props["name"])
	}
	set := props["tags"]
	if set.Kind != KindSet || len(set.Members) != 1 || set.Members[0].Number != 7 {
		t.Fatalf("set=%+v", set)
	}
	m := props["meta"]
	if m.Kind != KindMap || len(m.Entries) != 1 || m.Entries[0].Key != "k1" {
		t.Fatalf("map=%+v", m)
	}
	if m.Entries[0].Value.Kind != KindBoolean || m.Entries[0].Value.Boolean {
		t.Fatalf("map entry value=%+v", m.Entries[0].Value)
	}
}

func TestDecode_MalformedChildBecomesRawString(t *testing.T) {
	payload := map[string]any{
		"type":  "array",
		"items": []any{"not-a-payload"},
	}
	v := Decode(payload)
	if len(v.Array.Elements) != 1 {
		t.Fatalf("elements=%d want 1", len(v.Array.Elements))
	}
	child := v.Array.Elements[0]
	if child.Kind != KindString || child.Text != "not-a-payload" {
		t.Fatalf("child=%+v want raw string fallback", child)
	}
}
