package note

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// textReplacer canonicalizes dash variants and line endings.
// "\r\n" must come before "\r" so CRLF is not split into two replacements.
var textReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"–", "-", // en dash
	"—", "-", // em dash
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText canonicalizes dashes and line endings in raw note text.
// Idempotent.
func NormalizeText(s string) string {
	return textReplacer.Replace(s)
}

// CleanTitle applies Unicode NFC normalization and whitespace collapsing
// to a note title.
func CleanTitle(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(NormalizeText(s))
	return CollapseWhitespace(s)
}

// CollapseWhitespace replaces whitespace runs with a single space and trims
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// SplitLines splits normalized text into lines
func SplitLines(s string) []string {
	return strings.Split(s, "\n")
}
