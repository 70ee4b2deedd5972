package cardparser

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// displayPolicy strips all HTML tags from rendered card text. Decks are plain
// Markdown, but authors sometimes paste raw HTML (e.g. from a web clipping); an
// unescaped tag must not reach whatever terminal or remote renderer displays the
// string.
var displayPolicy = bluemonday.StrictPolicy()

// SanitizeDisplay strips HTML from text bound for display.
func SanitizeDisplay(text string) string {
	return displayPolicy.Sanitize(text)
}

// renderClozePrompt replaces every [hidden] span with the fixed-length occlusion
// marker, independent of the hidden text's own length.
func renderClozePrompt(body string) string {
	var out strings.Builder
	depth := 0
	for _, r := range body {
		switch r {
		case '[':
			depth = 1
			out.WriteString(clozePlaceholder)
		case ']':
			depth = 0
		default:
			if depth == 0 {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

// renderClozeReveal returns the body with brackets stripped, leaving the hidden
// text visible in place.
func renderClozeReveal(body string) string {
	var out strings.Builder
	for _, r := range body {
		if r == '[' || r == ']' {
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
