package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/franz/keep-migrator/internal/util"
)

const (
	// BaseURL is the MusicBrainz API base URL
	BaseURL = "https://musicbrainz.org/ws/2"

	// UserAgent identifies this application to MusicBrainz
	// MusicBrainz requires a proper user agent
	UserAgent = "keep-migrator/1.0 (https://github.com/franz/keep-migrator)"

	// RateLimit is the maximum request rate (MusicBrainz requirement).
	// Applied uniformly to every call regardless of outcome.
	RateLimit = 1 * time.Second

	// requestTimeout bounds a single lookup; a slow lookup degrades to
	// "no enrichment" rather than stalling the run
	requestTimeout = 8 * time.Second
)

// Client handles MusicBrainz recording lookups with rate limiting
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	rateLimiter *time.Ticker
}

// NewClient creates a new MusicBrainz API client
func NewClient() *Client {
	return NewClientWithBaseURL(BaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Used by tests to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:     baseURL,
		userAgent:   UserAgent,
		rateLimiter: time.NewTicker(RateLimit),
	}
}

// Close releases resources used by the client
func (c *Client) Close() {
	if c.rateLimiter != nil {
		c.rateLimiter.Stop()
	}
}

// RecordingSearchResult represents a recording search response
type RecordingSearchResult struct {
	Recordings []Recording `json:"recordings"`
	Count      int         `json:"count"`
	Offset     int         `json:"offset"`
}

// Recording represents a recording from MusicBrainz
type Recording struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	ArtistCredit []ArtistCredit `json:"artist-credit"`
	Releases     []Release      `json:"releases"`
}

// ArtistCredit is one credited artist on a recording
type ArtistCredit struct {
	Name string `json:"name"`
}

// Release is an album release carrying a recording
type Release struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Match is the enrichment data extracted from the best recording hit.
// Empty fields mean the catalog had nothing for them.
type Match struct {
	Artist      string
	Album       string
	ReleaseYear int
}

// FindRecording searches for a recording by note title and returns the
// first hit's artist, album, and release year. Returns (nil, nil) when the
// catalog has no match.
func (c *Client) FindRecording(ctx context.Context, title string) (*Match, error) {
	if title == "" {
		return nil, fmt.Errorf("search title cannot be empty")
	}

	// Wait for rate limit
	c.waitForRateLimit()

	urlStr := fmt.Sprintf("%s/recording/?query=%s&fmt=json", c.baseURL, url.QueryEscape(title))

	util.DebugLog("MusicBrainz API: searching for recording '%s'", title)

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, fmt.Errorf("%w: MusicBrainz service unavailable (503) - rate limit exceeded or maintenance", util.ErrLookupFailed)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", util.ErrLookupFailed, resp.StatusCode, string(body))
	}

	var result RecordingSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Recordings) == 0 {
		util.DebugLog("MusicBrainz: no results for '%s'", title)
		return nil, nil
	}

	rec := &result.Recordings[0]
	match := &Match{}
	if len(rec.ArtistCredit) > 0 {
		match.Artist = rec.ArtistCredit[0].Name
	}
	if len(rec.Releases) > 0 {
		match.Album = rec.Releases[0].Title
		match.ReleaseYear = parseReleaseYear(rec.Releases[0].Date)
	}

	util.DebugLog("MusicBrainz: found '%s' by '%s' (score: %d)", rec.Title, match.Artist, rec.Score)

	return match, nil
}

// parseReleaseYear extracts the year from a MusicBrainz release date,
// which may be "2006", "2006-04", or "2006-04-10". Unparseable dates
// yield zero.
func parseReleaseYear(date string) int {
	year, _, _ := strings.Cut(date, "-")
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}

// waitForRateLimit ensures we don't exceed the MusicBrainz rate limit
func (c *Client) waitForRateLimit() {
	<-c.rateLimiter.C
}
