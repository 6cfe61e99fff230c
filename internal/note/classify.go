package note

import (
	"regexp"
	"strings"
	"unicode"
)

// LineKind is the classification of a single body line.
type LineKind int

const (
	LineContent LineKind = iota
	LineBlank
	LineReference
	LineTab
)

// urlRe matches a full bare URL with no surrounding text.
var urlRe = regexp.MustCompile(`^https?://\S+$`)

// Classify categorizes one line of normalized note text.
// Reference takes priority: a URL alone on a line is never content.
func Classify(line string) LineKind {
	switch {
	case IsBlankLine(line):
		return LineBlank
	case IsReferenceLine(line):
		return LineReference
	case IsTabLine(line):
		return LineTab
	default:
		return LineContent
	}
}

// IsBlankLine reports whether a line is empty or whitespace-only.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsReferenceLine reports whether the entire trimmed line is a single URL.
func IsReferenceLine(line string) bool {
	return urlRe.MatchString(strings.TrimSpace(line))
}

// IsTabLine reports whether a line is a guitar tablature string row:
// optional leading whitespace, one string-name letter (e/E/G/B/D/A),
// optional whitespace, then a pipe.
func IsTabLine(line string) bool {
	rs := []rune(line)
	i := 0
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	if i == len(rs) {
		return false
	}
	switch rs[i] {
	case 'e', 'E', 'G', 'B', 'D', 'A':
		i++
	default:
		return false
	}
	for i < len(rs) && unicode.IsSpace(rs[i]) {
		i++
	}
	return i < len(rs) && rs[i] == '|'
}

// ExtractReferences removes bare reference lines from the content stream.
// References keep their original order; all other lines keep their relative
// order, blanks included.
func ExtractReferences(lines []string) (content []string, refs []string) {
	content = make([]string, 0, len(lines))
	for _, line := range lines {
		if IsReferenceLine(line) {
			refs = append(refs, strings.TrimSpace(line))
			continue
		}
		content = append(content, line)
	}
	return content, refs
}
