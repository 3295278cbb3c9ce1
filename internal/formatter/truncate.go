package formatter

import "unicode/utf8"

// TruncateWithEllipsis truncates a string to maxLen runes and adds "..."
// if truncated. Handles UTF-8 by counting runes, not bytes.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}

	return string(runes[:maxLen-3]) + "..."
}
