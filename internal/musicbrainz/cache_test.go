package musicbrainz

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCacheHitSkipsAPI(t *testing.T) {
	apiCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		w.Write([]byte(`{
			"count": 1,
			"recordings": [{
				"title": "Riff",
				"artist-credit": [{"name": "Some Band"}],
				"releases": [{"title": "First Album", "date": "1997"}]
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	cache := NewCache(openTestDB(t), client)
	if err := cache.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	ctx := context.Background()

	// First lookup goes to the API
	match, err := cache.FindRecording(ctx, "Riff")
	if err != nil {
		t.Fatalf("FindRecording failed: %v", err)
	}
	if match == nil || match.Artist != "Some Band" {
		t.Fatalf("unexpected match: %+v", match)
	}
	if apiCalls != 1 {
		t.Fatalf("apiCalls = %d, expected 1", apiCalls)
	}

	// Second lookup is served from cache; titles differing only in case
	// and surrounding whitespace share an entry
	match, err = cache.FindRecording(ctx, "  riff ")
	if err != nil {
		t.Fatalf("cached FindRecording failed: %v", err)
	}
	if match == nil || match.Artist != "Some Band" || match.ReleaseYear != 1997 {
		t.Errorf("cached match = %+v", match)
	}
	if apiCalls != 1 {
		t.Errorf("apiCalls = %d, expected cache to absorb the second lookup", apiCalls)
	}

	entries, hits, err := cache.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if entries != 1 || hits != 1 {
		t.Errorf("stats = %d entries / %d hits, expected 1/1", entries, hits)
	}
}

func TestCacheNegativeResult(t *testing.T) {
	apiCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		w.Write([]byte(`{"count": 0, "recordings": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	cache := NewCache(openTestDB(t), client)
	if err := cache.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		match, err := cache.FindRecording(ctx, "nothing")
		if err != nil {
			t.Fatalf("FindRecording failed: %v", err)
		}
		if match != nil {
			t.Errorf("expected nil match, got %+v", match)
		}
	}

	// The no-match answer is cached too
	if apiCalls != 1 {
		t.Errorf("apiCalls = %d, expected negative result to be cached", apiCalls)
	}
}

func TestCacheLookupErrorNotCached(t *testing.T) {
	apiCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiCalls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	cache := NewCache(openTestDB(t), client)
	if err := cache.EnsureSchema(); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.FindRecording(ctx, "Riff"); err == nil {
			t.Fatal("expected error")
		}
	}

	// Failures must not poison the cache; the next run retries
	if apiCalls != 2 {
		t.Errorf("apiCalls = %d, expected errors to bypass the cache", apiCalls)
	}
}
