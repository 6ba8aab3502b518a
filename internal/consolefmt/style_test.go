package consolefmt

import "testing"

func TestParseStyle_Colors(t *testing.T) {
	tests := []struct {
		name      string
		css       string
		wantHex   string
		wantAlpha float64
	}{
		{name: "named", css: "color: red", wantHex: "#ff0000", wantAlpha: 1},
		{name: "short hex", css: "color: #f0a", wantHex: "#ff00aa", wantAlpha: 1},
		{name: "long hex", css: "color: #1a2b3c", wantHex: "#1a2b3c", wantAlpha: 1},
		{name: "rgb", css: "color: rgb(255, 128, 0)", wantHex: "#ff8000", wantAlpha: 1},
		{name: "rgba", css: "color: rgba(0, 0, 255, 0.5)", wantHex: "#0000ff", wantAlpha: 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := ParseStyle(tt.css)
			if style.Foreground == nil {
				t.Fatalf("no foreground parsed from %q", tt.css)
			}
			if style.Foreground.Hex != tt.wantHex {
				t.Fatalf("hex=%q want %q", style.Foreground.Hex, tt.wantHex)
			}
			if style.Foreground.Alpha != tt.wantAlpha {
				t.Fatalf("alpha=%v want %v", style.Foreground.Alpha, tt.wantAlpha)
			}
		})
	}
}

func TestParseStyle_InvalidColorIgnored(t *testing.T) {
	tests := []string{
		"color: #12345",
		"color: rgb(300, 0, 0)",
		"color: notacolor",
		"color: rgb(1,2)",
	}
	for _, css := range tests {
		if style := ParseStyle(css); style.Foreground != nil {
			t.Fatalf("%q parsed to %+v, want nil foreground", css, style.Foreground)
		}
	}
}

func TestParseStyle_Declarations(t *testing.T) {
	style := ParseStyle("background-color: #222; font-weight: 700; font-size: 14px; font-family: Menlo, monospace; padding: 4px; opacity: 45%")
	if style.Background == nil || style.Background.Hex != "#222222" {
		t.Fatalf("background=%+v", style.Background)
	}
	if !style.Bold {
		t.Fatalf("weight 700 should be bold")
	}
	if style.PointSize != 14 {
		t.Fatalf("pointSize=%v want 14", style.PointSize)
	}
	if style.FontFamily != "monospace" {
		t.Fatalf("fontFamily=%q want monospace", style.FontFamily)
	}
	if style.Padding != 4 {
		t.Fatalf("padding=%v want 4", style.Padding)
	}
	if style.Opacity != 0.45 {
		t.Fatalf("opacity=%v want 0.45", style.Opacity)
	}
}

func TestParseStyle_OpacityDecimal(t *testing.T) {
	if op := ParseStyle("opacity: 0.8").Opacity; op != 0.8 {
		t.Fatalf("opacity=%v want 0.8", op)
	}
	if op := ParseStyle("opacity: 3").Opacity; op != 1 {
		t.Fatalf("opacity=%v want clamp to 1", op)
	}
}

func TestParseStyle_UnknownAndMalformedIgnored(t *testing.T) {
	style := ParseStyle("border: 1px solid red; whatever; color: green")
	if style.Foreground == nil || style.Foreground.Hex != "#008000" {
		t.Fatalf("foreground=%+v want green", style.Foreground)
	}
}

func TestParseStyle_DefaultOpacity(t *testing.T) {
	if op := ParseStyle("color: red").Opacity; op != 1 {
		t.Fatalf("opacity=%v want default 1", op)
	}
}
