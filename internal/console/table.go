package console

import (
	"sort"
	"strconv"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/jsvalue"
)

// BuildTable converts a decoded array value into console.table rows: one
// row per element, a column per property name across all object elements,
// and a single "Value" column for primitive elements. Returns nil when the
// value is not an array or is empty.
func BuildTable(value *jsvalue.Value) *TableData {
	if value == nil || value.Kind != jsvalue.KindArray || value.Array == nil {
		return nil
	}
	elements := value.Array.Elements
	if len(elements) == 0 {
		return nil
	}

	propSet := make(map[string]bool)
	hasPrimitive := false
	for _, elem := range elements {
		if elem != nil && elem.Kind == jsvalue.KindObject && elem.Object != nil {
			for name := range elem.Object.Properties {
				if !jsvalue.IsSyntheticKey(name) {
					propSet[name] = true
				}
			}
		} else {
			hasPrimitive = true
		}
	}
	props := make([]string, 0, len(propSet))
	for name := range propSet {
		props = append(props, name)
	}
	sort.Strings(props)

	columns := []string{"(index)"}
	columns = append(columns, props...)
	if hasPrimitive {
		columns = append(columns, "Value")
	}

	rows := make([][]string, 0, len(elements))
	for i, elem := range elements {
		row := make([]string, len(columns))
		row[0] = strconv.Itoa(i)
		if elem != nil && elem.Kind == jsvalue.KindObject && elem.Object != nil {
			for j, name := range props {
				if prop, ok := elem.Object.Properties[name]; ok {
					row[j+1] = prop.Display()
				}
			}
		} else if hasPrimitive {
			row[len(row)-1] = elem.Display()
		}
		rows = append(rows, row)
	}
	return &TableData{Columns: columns, Rows: rows}
}
