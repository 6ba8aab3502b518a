// Package consolefmt implements the console text pipeline: %-specifier
// expansion into styled segments, the CSS-ish %c style parser, and the
// formatter for command evaluation results.
package consolefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is a parsed CSS color, normalized to #rrggbb plus an alpha channel.
type Color struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

// Style is the subset of CSS a %c declaration can apply to console text.
type Style struct {
	Foreground *Color  `json:"foreground,omitempty"`
	Background *Color  `json:"background,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	PointSize  float64 `json:"pointSize,omitempty"`
	FontFamily string  `json:"fontFamily,omitempty"`
	Padding    float64 `json:"padding,omitempty"`
	Opacity    float64 `json:"opacity"`
}

var rgbRegex = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9.]+)\s*)?\)$`)

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"brown":   "#a52a2a",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"gold":    "#ffd700",
	"navy":    "#000080",
	"teal":    "#008080",
	"lime":    "#00ff00",
	"maroon":  "#800000",
	"olive":   "#808000",
}

// ParseStyle parses a semicolon-delimited declaration list, e.g.
// "color: red; font-weight: bold". Unknown declarations are skipped, never
// errors, matching how browsers treat %c styles.
func ParseStyle(css string) *Style {
	style := &Style{Opacity: 1}
	for _, decl := range strings.Split(css, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch name {
		case "color":
			style.Foreground = parseColor(value)
		case "background", "background-color":
			style.Background = parseColor(value)
		case "font-weight":
			style.Bold = isBoldWeight(value)
		case "font-size":
			if size, ok := parseLength(value); ok {
				style.PointSize = size
			}
		case "font-family":
			style.FontFamily = parseFontFamily(value)
		case "padding":
			if pad, ok := parseLength(value); ok {
				style.Padding = pad
			}
		case "opacity":
			if op, ok := parseOpacity(value); ok {
				style.Opacity = op
			}
		}
	}
	return style
}

func parseColor(value string) *Color {
	value = strings.ToLower(strings.TrimSpace(value))

	if hex, ok := namedColors[value]; ok {
		return &Color{Hex: hex, Alpha: 1}
	}

	if strings.HasPrefix(value, "#") {
		digits := value[1:]
		switch len(digits) {
		case 3:
			expanded := make([]byte, 6)
			for i := 0; i < 3; i++ {
				expanded[2*i] = digits[i]
				expanded[2*i+1] = digits[i]
			}
			digits = string(expanded)
		case 6:
			// already full form
		default:
			return nil
		}
		if _, err := strconv.ParseUint(digits, 16, 64); err != nil {
			return nil
		}
		return &Color{Hex: "#" + digits, Alpha: 1}
	}

	if m := rgbRegex.FindStringSubmatch(value); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return nil
		}
		alpha := 1.0
		if m[4] != "" {
			if a, err := strconv.ParseFloat(m[4], 64); err == nil {
				alpha = clamp01(a)
			}
		}
		return &Color{Hex: fmt.Sprintf("#%02x%02x%02x", r, g, b), Alpha: alpha}
	}

	return nil
}

func isBoldWeight(value string) bool {
	if strings.EqualFold(value, "bold") || strings.EqualFold(value, "bolder") {
		return true
	}
	if weight, err := strconv.Atoi(value); err == nil {
		return weight >= 600
	}
	return false
}

func parseLength(value string) (float64, bool) {
	value = strings.TrimSuffix(strings.TrimSuffix(value, "px"), "pt")
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parseFontFamily(value string) string {
	lower := strings.ToLower(value)
	switch {
	case strings.Contains(lower, "monospace"), strings.Contains(lower, "courier"), strings.Contains(lower, "menlo"):
		return "monospace"
	case strings.Contains(lower, "serif") && !strings.Contains(lower, "sans"):
		return "serif"
	default:
		return "default"
	}
}

// parseOpacity accepts a 0-1 decimal or a percentage ("45%" -> 0.45).
func parseOpacity(value string) (float64, bool) {
	percent := strings.HasSuffix(value, "%")
	value = strings.TrimSuffix(value, "%")
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	if percent {
		n /= 100
	}
	return clamp01(n), true
}

func clamp01(n float64) float64 {
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
