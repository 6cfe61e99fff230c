package note

import (
	"regexp"
	"strings"
)

// noteNames enumerates the accepted chord root spellings, both sharp and
// flat. Theoretical spellings like E# or Cb are deliberately absent.
var noteNames = map[string]bool{
	"C": true, "C#": true, "Db": true,
	"D": true, "D#": true, "Eb": true,
	"E": true,
	"F": true, "F#": true, "Gb": true,
	"G": true, "G#": true, "Ab": true,
	"A": true, "A#": true, "Bb": true,
	"B": true,
}

// chordQualities are the accepted quality suffixes. A quality is exactly one
// of these words or a digit run, never a combination ("Cmaj7" is rejected).
var chordQualities = map[string]bool{
	"m": true, "maj": true, "min": true, "dim": true, "aug": true, "sus": true,
}

var (
	bracketRe    = regexp.MustCompile(`\((.*?)\)`)
	chordSplitRe = regexp.MustCompile(`[,\s]+`)
)

// IsChord reports whether a token is a valid chord name: a note root,
// an optional quality suffix, and an optional slash-bass note.
func IsChord(token string) bool {
	if token == "" {
		return false
	}
	// Try both the one- and two-character root readings so that tokens like
	// "C#m" resolve via the longer root.
	for _, n := range []int{1, 2} {
		if len(token) < n || !noteNames[token[:n]] {
			continue
		}
		if chordRemainderOK(token[n:]) {
			return true
		}
	}
	return false
}

// chordRemainderOK validates what follows the root: optional quality,
// optional "/bass".
func chordRemainderOK(rest string) bool {
	quality, bass, hasBass := strings.Cut(rest, "/")
	if !qualityOK(quality) {
		return false
	}
	if hasBass {
		return bassOK(bass)
	}
	return true
}

func qualityOK(s string) bool {
	if s == "" || chordQualities[s] {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// bassOK validates a slash-bass note: A-G with an optional b or #.
// Unlike roots, any accidental spelling is accepted here.
func bassOK(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	if s[0] < 'A' || s[0] > 'G' {
		return false
	}
	if len(s) == 2 && s[1] != 'b' && s[1] != '#' {
		return false
	}
	return true
}

// ExtractChords cleans a title and pulls a chord annotation out of it.
//
// Only the first parenthesized group is ever inspected. If it contains at
// least one valid chord token the whole group is removed from the title
// (surrounding text concatenated, whitespace re-collapsed) and an annotation
// line is returned. Otherwise the cleaned title is returned unchanged with
// an empty annotation.
func ExtractChords(title string) (clean string, annotation string) {
	title = CleanTitle(title)

	m := bracketRe.FindStringSubmatchIndex(title)
	if m == nil {
		return title, ""
	}

	inner := title[m[2]:m[3]]
	var chords []string
	for _, tok := range chordSplitRe.Split(inner, -1) {
		tok = strings.TrimSpace(tok)
		if tok != "" && IsChord(tok) {
			chords = append(chords, tok)
		}
	}
	if len(chords) == 0 {
		return title, ""
	}

	annotation = "Chords used : " + strings.Join(chords, ", ")
	title = strings.TrimSpace(title[:m[0]]) + strings.TrimSpace(title[m[1]:])
	return CollapseWhitespace(title), annotation
}
