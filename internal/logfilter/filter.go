// Package logfilter compiles user-entered search patterns for the console
// entry list.
package logfilter

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a compiled case-insensitive pattern matched against an entry's
// message and source independently.
type Filter struct {
	re *regexp.Regexp
}

// Compile builds a case-insensitive regex filter. A malformed pattern is a
// normal error return; callers fall back to substring search instead of
// silently matching everything or nothing.
func Compile(pattern string) (*Filter, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", pattern, err)
	}
	return &Filter{re: re}, nil
}

// Matches reports whether the pattern matches the message or the source.
func (f *Filter) Matches(message, source string) bool {
	if f == nil || f.re == nil {
		return false
	}
	if f.re.MatchString(message) {
		return true
	}
	return source != "" && f.re.MatchString(source)
}

// MatchSubstring is the fallback predicate: case-insensitive substring
// match against message or source.
func MatchSubstring(message, source, needle string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(message), needle) {
		return true
	}
	return source != "" && strings.Contains(strings.ToLower(source), needle)
}
