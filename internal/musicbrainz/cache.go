package musicbrainz

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franz/keep-migrator/internal/util"
)

// Cache provides database-backed caching for MusicBrainz recording lookups.
// Misses fall through to the API; negative results are cached too, so a
// re-run over the same library costs no API calls at all.
type Cache struct {
	db     *sql.DB
	client *Client
}

// CachedMatch represents a cached recording lookup
type CachedMatch struct {
	SearchTitle string
	Artist      string
	Album       string
	ReleaseYear int
	Found       bool
	CachedAt    time.Time
}

// NewCache creates a new cache instance
func NewCache(db *sql.DB, client *Client) *Cache {
	return &Cache{
		db:     db,
		client: client,
	}
}

// EnsureSchema creates the cache table if it doesn't exist
func (c *Cache) EnsureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recording_cache (
		search_title TEXT PRIMARY KEY,
		artist TEXT,
		album TEXT,
		release_year INTEGER,
		found INTEGER NOT NULL DEFAULT 0,
		cached_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		hit_count INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_rc_artist ON recording_cache(artist);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create recording_cache table: %w", err)
	}

	return nil
}

// FindRecording retrieves enrichment data with cache support.
// Checks the cache first, falls back to the API if not found.
func (c *Cache) FindRecording(ctx context.Context, title string) (*Match, error) {
	if title == "" {
		return nil, fmt.Errorf("search title cannot be empty")
	}

	searchKey := strings.ToLower(strings.TrimSpace(title))

	cached, err := c.getFromCache(searchKey)
	if err == nil && cached != nil {
		util.DebugLog("MusicBrainz cache hit: '%s'", title)
		c.incrementHitCount(searchKey)
		if !cached.Found {
			return nil, nil
		}
		return &Match{
			Artist:      cached.Artist,
			Album:       cached.Album,
			ReleaseYear: cached.ReleaseYear,
		}, nil
	}

	util.DebugLog("MusicBrainz cache miss: '%s', querying API", title)
	match, err := c.client.FindRecording(ctx, title)
	if err != nil {
		// Lookup failures are not cached; the next run may succeed.
		return nil, err
	}

	if err := c.storeInCache(searchKey, match); err != nil {
		util.WarnLog("Failed to cache MusicBrainz result: %v", err)
		// Don't fail the operation if caching fails
	}

	return match, nil
}

// getFromCache retrieves a cached lookup
func (c *Cache) getFromCache(searchTitle string) (*CachedMatch, error) {
	query := `
		SELECT artist, album, release_year, found, cached_at
		FROM recording_cache
		WHERE search_title = ?
	`

	var cached CachedMatch
	var artist, album sql.NullString
	var year sql.NullInt64

	err := c.db.QueryRow(query, searchTitle).Scan(
		&artist,
		&album,
		&year,
		&cached.Found,
		&cached.CachedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cache: %w", err)
	}

	cached.SearchTitle = searchTitle
	cached.Artist = artist.String
	cached.Album = album.String
	cached.ReleaseYear = int(year.Int64)

	return &cached, nil
}

// storeInCache stores a lookup result. A nil match records a negative hit.
func (c *Cache) storeInCache(searchTitle string, match *Match) error {
	query := `
		INSERT OR REPLACE INTO recording_cache
		(search_title, artist, album, release_year, found, cached_at, hit_count)
		VALUES (?, ?, ?, ?, ?, ?, COALESCE((SELECT hit_count FROM recording_cache WHERE search_title = ?), 0))
	`

	var artist, album string
	var year int
	found := match != nil
	if found {
		artist = match.Artist
		album = match.Album
		year = match.ReleaseYear
	}

	_, err := c.db.Exec(query, searchTitle, artist, album, year, found, time.Now(), searchTitle)
	if err != nil {
		return fmt.Errorf("failed to insert cache entry: %w", err)
	}

	return nil
}

// incrementHitCount increments the cache hit counter
func (c *Cache) incrementHitCount(searchTitle string) {
	query := `UPDATE recording_cache SET hit_count = hit_count + 1 WHERE search_title = ?`
	_, err := c.db.Exec(query, searchTitle)
	if err != nil {
		util.DebugLog("Failed to increment hit count: %v", err)
	}
}

// GetStats returns cache statistics
func (c *Cache) GetStats() (entries int, totalHits int64, err error) {
	query := `SELECT COUNT(*), COALESCE(SUM(hit_count), 0) FROM recording_cache`
	err = c.db.QueryRow(query).Scan(&entries, &totalHits)
	return
}

// ClearCache removes all cached entries
func (c *Cache) ClearCache() error {
	_, err := c.db.Exec("DELETE FROM recording_cache")
	return err
}
