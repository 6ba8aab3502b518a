// Package jsvalue models JavaScript values captured from the embedded
// WebView as a bounded, typed tree. Values cross the bridge as tagged
// payloads (see Decode) and are immutable once built.
package jsvalue

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the variants of Value.
type Kind string

const (
	KindNull      Kind = "null"
	KindUndefined Kind = "undefined"
	KindBoolean   Kind = "boolean"
	KindNumber    Kind = "number"
	KindString    Kind = "string"
	KindFunction  Kind = "function"
	KindDate      Kind = "date"
	KindDOMNode   Kind = "dom"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
	KindMap       Kind = "map"
	KindSet       Kind = "set"
	KindCircular  Kind = "circular"
	KindError     Kind = "error"
)

// Synthetic property names injected by the WebView-side encoder.
const (
	PrototypeKey = "[[Prototype]]"
	TruncatedKey = "[[Truncated]]"
)

// Value is one node of a captured value tree. Kind selects which of the
// optional fields carry data. A single struct with a discriminator (rather
// than an interface hierarchy) keeps the tree JSON-serializable for the
// frontend without custom marshalling.
type Value struct {
	Kind Kind `json:"kind"`

	// Text holds the display text for string-like kinds: the string value
	// itself, a function name, a date's ISO form, an error message, or a
	// circular reference path.
	Text    string  `json:"text,omitempty"`
	Number  float64 `json:"number,omitempty"`
	Boolean bool    `json:"boolean,omitempty"`

	// DOM node fields.
	Tag        string            `json:"tag,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`

	// Date field, zero when the ISO string did not parse.
	Time time.Time `json:"time,omitempty"`

	Object  *Object    `json:"object,omitempty"`
	Array   *Array     `json:"array,omitempty"`
	Entries []MapEntry `json:"entries,omitempty"`
	Members []*Value   `json:"members,omitempty"`
}

// Object is an unordered property bag with truncation metadata.
type Object struct {
	Properties map[string]*Value `json:"properties"`
	Depth      int               `json:"depth"`
	Truncated  bool              `json:"truncated"`
}

// Array is an ordered element list. TotalCount may exceed len(Elements)
// when the encoder truncated the source array.
type Array struct {
	Elements   []*Value `json:"elements"`
	TotalCount int      `json:"totalCount"`
	Depth      int      `json:"depth"`
	Truncated  bool     `json:"truncated"`
}

// MapEntry is one ordered key/value pair of a captured Map. Keys arrive as
// pre-rendered labels because Map keys can be arbitrary values.
type MapEntry struct {
	Key   string `json:"key"`
	Value *Value `json:"value"`
}

// IsSyntheticKey reports whether name is an encoder-injected pseudo
// property such as "[[Prototype]]".
func IsSyntheticKey(name string) bool {
	return strings.HasPrefix(name, "[[") && strings.HasSuffix(name, "]]")
}

// SortedNames returns property names in display order: real properties
// alphabetically, synthetic "[[...]]" properties after them.
func (o *Object) SortedNames() []string {
	if o == nil || len(o.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := IsSyntheticKey(names[i]), IsSyntheticKey(names[j])
		if si != sj {
			return sj
		}
		return names[i] < names[j]
	})
	return names
}

// Display renders a single-line summary of the value, used for %s
// substitution and raw-string fallbacks.
func (v *Value) Display() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindBoolean:
		if v.Boolean {
			return "true"
		}
		return "false"
	case KindNumber:
		return FormatNumber(v.Number)
	case KindString:
		return v.Text
	case KindFunction:
		name := v.Text
		if name == "" {
			name = "anonymous"
		}
		return "ƒ " + name + "()"
	case KindDate:
		return v.Text
	case KindDOMNode:
		return "<" + v.Tag + ">"
	case KindArray:
		if v.Array == nil {
			return "Array(0)"
		}
		return "Array(" + strconv.Itoa(v.Array.TotalCount) + ")"
	case KindObject:
		return "Object"
	case KindMap:
		return "Map(" + strconv.Itoa(len(v.Entries)) + ")"
	case KindSet:
		return "Set(" + strconv.Itoa(len(v.Members)) + ")"
	case KindCircular:
		return "[Circular: " + v.Text + "]"
	case KindError:
		return v.Text
	}
	return v.Text
}

// FormatNumber renders a float the way consoles do: integers without a
// decimal point, everything else in shortest round-trip form.
func FormatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
