package note

import "unicode"

// SplitHeader decides whether the note body opens with a metadata header and,
// if so, consumes it.
//
// The decision looks only at the first paragraph (the run of non-blank lines
// from line 0). Leading lines are treated as a header unless the first line
// starts with a digit or the paragraph contains a tablature line — both are
// strong signals the note jumps straight into verses or tab.
//
// When a header is consumed, the blank separator line after it is consumed
// too. A header that runs to end of input swallows everything and leaves no
// content; that mirrors the long-standing converter behavior and is kept
// on purpose.
func SplitHeader(lines []string) (header []string, rest []string) {
	if !hasHeader(lines) {
		return nil, lines
	}

	i := 0
	for i < len(lines) && !IsBlankLine(lines[i]) {
		header = append(header, lines[i])
		i++
	}
	// Skip the blank separator as well.
	if i+1 < len(lines) {
		rest = lines[i+1:]
	}
	return header, rest
}

// hasHeader applies the first-paragraph shape heuristics.
func hasHeader(lines []string) bool {
	var firstPara []string
	for _, line := range lines {
		if IsBlankLine(line) {
			break
		}
		firstPara = append(firstPara, line)
	}

	if len(firstPara) == 0 {
		return true
	}
	if startsWithDigit(firstPara[0]) {
		return false
	}
	for _, line := range firstPara {
		if IsTabLine(line) {
			return false
		}
	}
	return true
}

func startsWithDigit(line string) bool {
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		return unicode.IsDigit(r)
	}
	return false
}
