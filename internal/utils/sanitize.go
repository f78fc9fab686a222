package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from free text entered by users. Entities
// escaped by the policy are decoded again so "&" survives as typed.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}

	v := SanitizeText(*s)

	return &v
}
