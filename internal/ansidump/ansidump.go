// Package ansidump renders captured console entries as ANSI-colored text,
// for pasting into a terminal-friendly report or issue.
package ansidump

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/semanticist21/walnut-webview-tester-sub004/internal/console"
	"github.com/semanticist21/walnut-webview-tester-sub004/internal/consolefmt"
)

var kindStyles = map[console.EntryKind]lipgloss.Style{
	console.KindError:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	console.KindAssert:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	console.KindWarn:           lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	console.KindInfo:           lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	console.KindDebug:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	console.KindGroup:          lipgloss.NewStyle().Bold(true),
	console.KindGroupCollapsed: lipgloss.NewStyle().Bold(true),
	console.KindCommand:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	console.KindResult:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Faint(true),
}

var (
	metaStyle   = lipgloss.NewStyle().Faint(true)
	repeatStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Render produces the ANSI dump of entries, one line per entry, indented by
// group depth.
func Render(entries []console.Entry) string {
	var b strings.Builder
	for i, entry := range entries {
		if entry.Kind == console.KindGroupEnd {
			continue
		}
		if i > 0 && b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderEntry(entry))
	}
	return b.String()
}

func renderEntry(entry console.Entry) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("  ", entry.GroupDepth))
	b.WriteString(metaStyle.Render("[" + entry.Timestamp.UTC().Format("15:04:05.000") + "]"))
	b.WriteString(" ")

	body := entry.Message
	if len(entry.Segments) > 0 {
		body = renderSegments(entry.Segments)
	} else if style, ok := kindStyles[entry.Kind]; ok {
		body = style.Render(body)
	}
	b.WriteString(body)

	if entry.RepeatCount > 1 {
		b.WriteString(" ")
		b.WriteString(repeatStyle.Render(formatRepeat(entry.RepeatCount)))
	}
	if entry.Source != "" {
		b.WriteString(" ")
		b.WriteString(metaStyle.Render("(" + entry.Source + ")"))
	}
	return b.String()
}

// renderSegments maps the page's %c styling onto terminal attributes. Only
// color and weight translate; font sizes and families do not exist here.
func renderSegments(segments []consolefmt.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Style == nil {
			b.WriteString(seg.Text)
			continue
		}
		style := lipgloss.NewStyle()
		if seg.Style.Foreground != nil {
			style = style.Foreground(lipgloss.Color(seg.Style.Foreground.Hex))
		}
		if seg.Style.Background != nil {
			style = style.Background(lipgloss.Color(seg.Style.Background.Hex))
		}
		if seg.Style.Bold {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(seg.Text))
	}
	return b.String()
}

func formatRepeat(count int) string {
	return "(x" + strconv.Itoa(count) + ")"
}
