// Package jsonextract pulls JSON fragments out of free-form console
// messages so the UI can offer pretty-printed and minified views.
package jsonextract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extraction is a successfully parsed JSON fragment of a message.
type Extraction struct {
	Raw      string `json:"raw"`
	Pretty   string `json:"pretty"`
	Minified string `json:"minified"`
}

// fragmentRegex finds the first brace- or bracket-balanced candidate
// substring. Regular expressions cannot match arbitrary nesting, so this
// matches up to three levels and the json parse validates the rest.
var fragmentRegex = regexp.MustCompile(
	`[{\[](?:[^{}\[\]]|[{\[](?:[^{}\[\]]|[{\[][^{}\[\]]*[}\]])*[}\]])*[}\]]`)

// Extract tries the whole trimmed text as JSON first, then the first
// balanced {...} or [...] substring. Returns nil when nothing parses;
// callers render the text unchanged.
func Extract(text string) *Extraction {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if ex := tryParse(trimmed); ex != nil {
		return ex
	}
	if candidate := fragmentRegex.FindString(trimmed); candidate != "" {
		return tryParse(candidate)
	}
	return nil
}

func tryParse(candidate string) *Extraction {
	// Only object/array fragments are interesting; bare literals like "42"
	// would make nearly every message "extractable".
	if len(candidate) == 0 || (candidate[0] != '{' && candidate[0] != '[') {
		return nil
	}
	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil
	}
	pretty, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return nil
	}
	minified, err := json.Marshal(parsed)
	if err != nil {
		return nil
	}
	return &Extraction{
		Raw:      candidate,
		Pretty:   string(pretty),
		Minified: string(minified),
	}
}
