// Package extract converts uploaded document bytes to plain text for
// analysis prompts. Extraction is best-effort: unreadable or empty
// documents yield an empty string rather than an error, and callers
// treat empty text as an unreadable document.
package extract

import "strings"

// cleanText trims every line, drops blank lines, and joins the
// remainder with single newlines.
func cleanText(text string) string {
	if text == "" {
		return ""
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	return strings.Join(lines, "\n")
}
