// Package shape prepares right-to-left text for PDF output.
//
// PDF text operators lay glyphs out left to right and know nothing about
// Arabic joining. Shape replaces Arabic letters with their contextual
// presentation forms and reorders the string into visual order, so the
// result can be drawn as-is with a Unicode font. Left-to-right text passes
// through untouched.
package shape

import "fmt"

// Shaper runs the two shaping steps. A zero Shaper uses Reshape and Reorder.
type Shaper struct {
	Reshape func(string) string
	Reorder func(string) (string, error)
}

var std Shaper

// Shape shapes text with the default steps.
func Shape(text string) string {
	return std.Shape(text)
}

// IsRTL reports whether text contains a strong right-to-left character.
func IsRTL(text string) bool {
	for _, r := range text {
		if strongRTL(r) {
			return true
		}
	}
	return false
}

// Shape returns text in joined visual form, or text itself when it holds no
// right-to-left characters or when a shaping step fails.
func (s Shaper) Shape(text string) string {
	out, err := s.Try(text)
	if err != nil {
		return text
	}
	return out
}

// Try is Shape without the fallback, for callers that want to know why
// shaping failed.
func (s Shaper) Try(text string) (out string, err error) {
	if !IsRTL(text) {
		return text, nil
	}
	defer func() {
		if r := recover(); r != nil {
			out, err = text, fmt.Errorf("shape: %v", r)
		}
	}()

	reshape := s.Reshape
	if reshape == nil {
		reshape = Reshape
	}
	reorder := s.Reorder
	if reorder == nil {
		reorder = Reorder
	}
	out, err = reorder(reshape(text))
	if err != nil {
		return text, fmt.Errorf("shape: reorder: %w", err)
	}
	return out, nil
}
