// Package sqlgen emits the SQL script that loads converted notes, their
// tags, and tag associations into the target schema. Labels are deduplicated
// across the whole run: one tags row per unique label, shared by every note
// that carries it.
package sqlgen

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/util"
)

// Stats summarizes what was written
type Stats struct {
	Notes int
	Tags  int
	Links int
}

// Write emits the full SQL script for notes to w. userID is the owning
// Supabase auth.users UUID and is required.
func Write(w io.Writer, notes []*note.Note, userID string) (*Stats, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", util.ErrInvalidConfig)
	}

	stats := &Stats{}

	if _, err := fmt.Fprintln(w, "-- SQL statements generated from Keep JSON export"); err != nil {
		return nil, err
	}

	// Tags first: one row per unique label, sorted for deterministic output
	tagIDs := make(map[string]string)
	for _, n := range notes {
		for _, label := range n.Labels {
			if _, ok := tagIDs[label]; !ok {
				tagIDs[label] = uuid.NewString()
			}
		}
	}
	names := make([]string, 0, len(tagIDs))
	for name := range tagIDs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		_, err := fmt.Fprintf(w, "INSERT INTO public.tags (id, user_id, name) VALUES ('%s', '%s', %s);\n",
			tagIDs[name], userID, Escape(name))
		if err != nil {
			return nil, err
		}
		stats.Tags++
	}

	for _, n := range notes {
		noteID := uuid.NewString()

		_, err := fmt.Fprintf(w,
			"INSERT INTO public.notes (id, user_id, title, content, artist, album, release_year, metadata, \"references\", isPinned, created_at, updated_at) "+
				"VALUES ('%s', '%s', %s, %s, %s, %s, %s, %s, %s, %s, '%s', '%s');\n",
			noteID,
			userID,
			Escape(n.Title),
			Escape(n.Content),
			NullableString(n.Artist),
			NullableString(n.Album),
			nullableInt(n.ReleaseYear),
			NullableString(n.Metadata),
			NullableString(n.References),
			boolLiteral(n.IsPinned),
			n.CreatedAt.Format("2006-01-02T15:04:05.999999Z07:00"),
			n.UpdatedAt.Format("2006-01-02T15:04:05.999999Z07:00"),
		)
		if err != nil {
			return nil, err
		}
		stats.Notes++

		for _, label := range n.Labels {
			tagID, ok := tagIDs[label]
			if !ok {
				continue
			}
			_, err := fmt.Fprintf(w,
				"INSERT INTO public.note_tags (id, user_id, note_id, tag_id) VALUES ('%s', '%s', '%s', '%s');\n",
				uuid.NewString(), userID, noteID, tagID)
			if err != nil {
				return nil, err
			}
			stats.Links++
		}
	}

	return stats, nil
}

func boolLiteral(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func nullableInt(n int) string {
	if n == 0 {
		return "NULL"
	}
	return strconv.Itoa(n)
}
