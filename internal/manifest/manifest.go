// Package manifest persists the intermediate enriched-notes JSON between the
// fetch and sql stages. The field set must round-trip exactly; the sql stage
// re-reads whatever fetch wrote.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/util"
)

// Write serializes notes to path as indented JSON.
func Write(path string, notes []*note.Note) error {
	data, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	data = append(data, '\n')

	f, err := util.RetryableCreate(path, nil)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return f.Close()
}

// Read loads a previously written manifest.
func Read(path string) ([]*note.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest %s: %w", path, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var notes []*note.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return notes, nil
}
