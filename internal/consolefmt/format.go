package consolefmt

import (
	"fmt"
	"math"
	"strconv"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// Segment is a run of console text with an optional %c style. A message
// expands into an ordered list of segments.
type Segment struct {
	Text  string `json:"text"`
	Style *Style `json:"style,omitempty"`
}

// Expand scans format left to right for %c, %s, %d, %i, %f, %o, %O and %%
// and substitutes args in order. %c consumes its arg as a style declaration
// applied to the text that follows, up to the next %c or the end. Leftover
// args are appended space-separated, mirroring browser console semantics.
func Expand(format string, args []any) []Segment {
	var segments []Segment
	var current []rune
	var style *Style
	next := 0

	flush := func() {
		if len(current) > 0 {
			segments = append(segments, Segment{Text: string(current), Style: style})
			current = current[:0]
		}
	}
	takeArg := func() (any, bool) {
		if next >= len(args) {
			return nil, false
		}
		arg := args[next]
		next++
		return arg, true
	}

	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			current = append(current, runes[i])
			continue
		}
		verb := runes[i+1]
		switch verb {
		case '%':
			current = append(current, '%')
			i++
		case 'c':
			arg, ok := takeArg()
			if !ok {
				current = append(current, '%', 'c')
				i++
				continue
			}
			flush()
			style = ParseStyle(argString(arg))
			i++
		case 's', 'o', 'O':
			arg, ok := takeArg()
			if !ok {
				current = append(current, '%', verb)
				i++
				continue
			}
			current = append(current, []rune(argString(arg))...)
			i++
		case 'd', 'i':
			arg, ok := takeArg()
			if !ok {
				current = append(current, '%', verb)
				i++
				continue
			}
			current = append(current, []rune(argInteger(arg))...)
			i++
		case 'f':
			arg, ok := takeArg()
			if !ok {
				current = append(current, '%', 'f')
				i++
				continue
			}
			current = append(current, []rune(argFloat(arg))...)
			i++
		default:
			current = append(current, runes[i])
		}
	}

	// Trailing args that no specifier consumed.
	for ; next < len(args); next++ {
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, []rune(argString(args[next]))...)
	}
	flush()

	if segments == nil {
		segments = []Segment{{Text: ""}}
	}
	return segments
}

func argString(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return jsvalue.FormatNumber(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case *jsvalue.Value:
		return v.Display()
	default:
		return fmt.Sprint(v)
	}
}

func argInteger(arg any) string {
	n, ok := argNumber(arg)
	if !ok || math.IsNaN(n) {
		return "NaN"
	}
	return strconv.FormatInt(int64(n), 10)
}

func argFloat(arg any) string {
	n, ok := argNumber(arg)
	if !ok || math.IsNaN(n) {
		return "NaN"
	}
	return jsvalue.FormatNumber(n)
}

func argNumber(arg any) (float64, bool) {
	switch v := arg.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case *jsvalue.Value:
		if v != nil && v.Kind == jsvalue.KindNumber {
			return v.Number, true
		}
		return 0, false
	default:
		return 0, false
	}
}
