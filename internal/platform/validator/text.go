package validator

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips every HTML tag from user-supplied plain text
// (titles, captions, bios). Entities are decoded afterwards so "Tom & Jerry"
// round-trips unchanged; clients are expected to escape on render.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeTextPtr is SanitizeText for optional fields.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
