package sqlgen

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/util"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func testNote(title string, labels ...string) *note.Note {
	ts := time.Date(2021, 3, 15, 9, 30, 0, 0, time.UTC)
	return &note.Note{
		Title:     title,
		Labels:    labels,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestWriteSharedLabel(t *testing.T) {
	notes := []*note.Note{
		testNote("First", "music"),
		testNote("Second", "music"),
	}

	var buf strings.Builder
	stats, err := Write(&buf, notes, testUserID)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if stats.Tags != 1 {
		t.Errorf("Tags = %d, expected 1 for a shared label", stats.Tags)
	}
	if stats.Notes != 2 {
		t.Errorf("Notes = %d, expected 2", stats.Notes)
	}
	if stats.Links != 2 {
		t.Errorf("Links = %d, expected 2", stats.Links)
	}

	out := buf.String()
	if got := strings.Count(out, "INSERT INTO public.tags"); got != 1 {
		t.Errorf("tag inserts = %d, expected 1", got)
	}

	// Both link rows must reference the same tag id
	linkRe := regexp.MustCompile(`INSERT INTO public\.note_tags \(id, user_id, note_id, tag_id\) VALUES \('[^']+', '[^']+', '[^']+', '([^']+)'\);`)
	matches := linkRe.FindAllStringSubmatch(out, -1)
	if len(matches) != 2 {
		t.Fatalf("link inserts = %d, expected 2", len(matches))
	}
	if matches[0][1] != matches[1][1] {
		t.Errorf("link rows reference different tag ids: %s vs %s", matches[0][1], matches[1][1])
	}
}

func TestWriteNullRendering(t *testing.T) {
	n := testNote("Bare")

	var buf strings.Builder
	if _, err := Write(&buf, []*note.Note{n}, testUserID); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	// artist, album, release_year, metadata, references are all absent
	if got := strings.Count(out, "NULL"); got != 5 {
		t.Errorf("NULL count = %d, expected 5 in:\n%s", got, out)
	}
	if !strings.Contains(out, "FALSE") {
		t.Error("expected FALSE pin literal")
	}
}

func TestWriteEnrichedFields(t *testing.T) {
	n := testNote("Riff", "music")
	n.Artist = "Some Band"
	n.Album = "First Album"
	n.ReleaseYear = 1997
	n.IsPinned = true

	var buf strings.Builder
	if _, err := Write(&buf, []*note.Note{n}, testUserID); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"'Some Band'", "'First Album'", "1997", "TRUE"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestWriteMissingUserID(t *testing.T) {
	var buf strings.Builder
	_, err := Write(&buf, nil, "")
	if !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "'plain'"},
		{"it's", "'it''s'"},
		{"O''Brien's", "'O''''Brien''s'"},
		{"em\u2014dash", "'em-dash'"},
		{"en\u2013dash", "'en-dash'"},
		{"", "''"},
	}

	for _, tt := range tests {
		if got := Escape(tt.input); got != tt.expected {
			t.Errorf("Escape(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestNullableString(t *testing.T) {
	if got := NullableString(""); got != "NULL" {
		t.Errorf("NullableString(\"\") = %s, expected NULL", got)
	}
	if got := NullableString("x"); got != "'x'" {
		t.Errorf("NullableString(\"x\") = %s, expected 'x'", got)
	}
}
