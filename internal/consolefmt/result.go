package consolefmt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// FormatResult renders an evaluated command's result for the console:
// strings quoted, numbers and booleans as-is, arrays bracketed with
// recursive element formatting, objects as pretty JSON when serializable.
func FormatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "undefined"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return jsvalue.FormatNumber(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			parts = append(parts, FormatResult(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(data)
		}
		return fmt.Sprintf("%#v", v)
	default:
		return fmt.Sprint(v)
	}
}
