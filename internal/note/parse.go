package note

import (
	"strings"
	"time"
)

// Parse runs the full pipeline over one raw note: text normalization, title
// chord extraction, reference extraction, metadata header detection,
// tablature grouping, and record assembly.
//
// now is the conversion run's reference time, used when the export carries
// no creation timestamp. Passing it in keeps Parse deterministic.
func Parse(raw *RawNote, now time.Time) *Note {
	title, chordLine := ExtractChords(raw.Title)

	lines := SplitLines(NormalizeText(raw.TextContent))
	lines, refs := ExtractReferences(lines)
	header, lines := SplitHeader(lines)

	metadata := strings.TrimSpace(strings.Join(header, "\n"))
	if chordLine != "" {
		if metadata != "" {
			metadata += "\n" + chordLine
		} else {
			metadata = chordLine
		}
	}

	labels := make([]string, 0, len(raw.Labels))
	for _, l := range raw.Labels {
		if name := strings.TrimSpace(l.Name); name != "" {
			labels = append(labels, name)
		}
	}

	createdAt := now.UTC()
	if raw.CreatedUsec > 0 {
		createdAt = raw.CreatedUsec.Time()
	}
	updatedAt := createdAt
	if raw.EditedUsec > 0 {
		updatedAt = raw.EditedUsec.Time()
	}

	return &Note{
		Title:      title,
		Metadata:   metadata,
		Content:    RenderContent(lines),
		References: strings.Join(refs, "\n"),
		Labels:     labels,
		IsPinned:   raw.IsPinned,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}
