package note

import (
	"strconv"
	"strings"
	"time"
)

// RawNote mirrors a single Keep export JSON file. It is read once and never
// mutated.
type RawNote struct {
	Title       string        `json:"title"`
	TextContent string        `json:"textContent"`
	Labels      []RawLabel    `json:"labels"`
	IsPinned    bool          `json:"isPinned"`
	CreatedUsec UsecTimestamp `json:"createdTimestampUsec"`
	EditedUsec  UsecTimestamp `json:"userEditedTimestampUsec"`
}

// RawLabel is a named label attached to an exported note.
type RawLabel struct {
	Name string `json:"name"`
}

// UsecTimestamp is a microsecond Unix timestamp that tolerates sloppy
// exports: JSON numbers, numeric strings, and anything unparseable, which
// decodes as zero (absent).
type UsecTimestamp int64

func (t *UsecTimestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*t = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		// Malformed timestamps degrade to absent, never fail the note.
		*t = 0
		return nil
	}
	*t = UsecTimestamp(v)
	return nil
}

// Time converts the timestamp to UTC wall time. Zero means absent.
func (t UsecTimestamp) Time() time.Time {
	return time.UnixMicro(int64(t)).UTC()
}

// Note is the structured record derived from a RawNote. The enrichment
// fields are filled in later by the MusicBrainz pass and stay empty
// otherwise. The JSON field set round-trips exactly through the manifest.
type Note struct {
	Title      string    `json:"title"`
	Metadata   string    `json:"metadata"`
	Content    string    `json:"content"`
	References string    `json:"references"`
	Labels     []string  `json:"labels"`
	IsPinned   bool      `json:"is_pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Artist      string `json:"artist,omitempty"`
	Album       string `json:"album,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
}
