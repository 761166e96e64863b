package engine

import (
	"regexp"
	"strings"
)

// ============================================================================
// DISPLAY HELPERS
// ============================================================================

var schemePrefix = regexp.MustCompile(`(?i)^https?://`)

// SafeURL normalizes a link cell for display: trims whitespace and prepends
// https:// when no scheme is present. Empty stays empty.
func SafeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if !schemePrefix.MatchString(url) {
		return "https://" + url
	}
	return url
}
