package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-note.json", `{
		"title": "Riff (Em, G)",
		"textContent": "Tempo: 120\n\nSome lyrics",
		"labels": [{"name": "music"}],
		"isPinned": true,
		"createdTimestampUsec": 1600000000000000,
		"userEditedTimestampUsec": 1600000100000000
	}`)
	writeFile(t, dir, "b-note.json", `{"title": "Second", "textContent": ""}`)
	writeFile(t, dir, "broken.json", `{not valid json`)
	writeFile(t, dir, "ignored.txt", `not a json file`)

	collector := New(&Config{Concurrency: 2})
	result, err := collector.Collect(context.Background(), dir)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if result.FilesRead != 2 {
		t.Errorf("FilesRead = %d, expected 2", result.FilesRead)
	}
	if result.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, expected 1", result.FilesSkipped)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, expected one entry", result.Errors)
	}

	// Output order follows sorted file order
	if result.Notes[0].Title != "Riff" {
		t.Errorf("Notes[0].Title = %q, expected %q", result.Notes[0].Title, "Riff")
	}
	if result.Notes[1].Title != "Second" {
		t.Errorf("Notes[1].Title = %q, expected %q", result.Notes[1].Title, "Second")
	}
	if !result.Notes[0].IsPinned {
		t.Error("expected first note pinned")
	}
	if want := "Chords used : Em, G"; result.Notes[0].Metadata != "Tempo: 120\n"+want {
		t.Errorf("Metadata = %q", result.Notes[0].Metadata)
	}
}

func TestCollectEmptyDir(t *testing.T) {
	collector := New(&Config{})
	result, err := collector.Collect(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if result.FilesRead != 0 || result.FilesSkipped != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestCheckInputDir(t *testing.T) {
	dir := t.TempDir()
	if err := CheckInputDir(dir); err != nil {
		t.Errorf("CheckInputDir(%s) = %v, expected nil", dir, err)
	}
	if err := CheckInputDir(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "file.json")
	writeFile(t, dir, "file.json", "{}")
	if err := CheckInputDir(file); err == nil {
		t.Error("expected error for non-directory path")
	}
}
