// Package enrich runs the music-catalog pass over parsed notes, filling in
// artist, album, and release year. Every failure degrades to "no enrichment
// data" for that note; the batch never aborts on a bad lookup.
package enrich

import (
	"context"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/keep-migrator/internal/musicbrainz"
	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/report"
	"github.com/franz/keep-migrator/internal/util"
)

// Lookup is the catalog query contract. Satisfied by both the raw
// MusicBrainz client and its caching wrapper; tests substitute a fake.
type Lookup interface {
	FindRecording(ctx context.Context, title string) (*musicbrainz.Match, error)
}

// Enricher fills in catalog metadata on parsed notes
type Enricher struct {
	lookup Lookup
	logger *report.EventLogger
}

// New creates a new Enricher
func New(lookup Lookup, logger *report.EventLogger) *Enricher {
	return &Enricher{
		lookup: lookup,
		logger: logger,
	}
}

// Result summarizes an enrichment pass
type Result struct {
	Enriched int // notes that got at least one field
	Missed   int // lookups with no catalog match
	Failed   int // lookups that errored
	Skipped  int // untitled notes, never queried
}

// Enrich looks up every titled note in place. Notes without a title are
// skipped; lookup errors are logged and leave the note unenriched.
func (e *Enricher) Enrich(ctx context.Context, notes []*note.Note) *Result {
	result := &Result{}

	var bar *progressbar.ProgressBar
	if util.StdoutIsTerminal() && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(notes),
			progressbar.OptionSetDescription("Enriching"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, n := range notes {
		if bar != nil {
			bar.Add(1)
		}

		if n.Title == "" {
			result.Skipped++
			continue
		}
		if ctx.Err() != nil {
			break
		}

		match, err := e.lookup.FindRecording(ctx, n.Title)
		if err != nil {
			result.Failed++
			util.WarnLog("Lookup failed for '%s': %v", n.Title, err)
			e.logger.LogEnrich(n.Title, "", "", err)
			continue
		}
		if match == nil {
			result.Missed++
			util.DebugLog("No catalog match for '%s'", n.Title)
			e.logger.LogEnrich(n.Title, "", "", nil)
			continue
		}

		n.Artist = match.Artist
		n.Album = match.Album
		n.ReleaseYear = match.ReleaseYear
		result.Enriched++

		util.InfoLog("Enriched '%s': artist=%s album=%s year=%d",
			n.Title, match.Artist, match.Album, match.ReleaseYear)
		e.logger.LogEnrich(n.Title, match.Artist, match.Album, nil)
	}

	if bar != nil {
		bar.Finish()
	}

	util.SuccessLog("Enrichment complete: %d enriched, %d no match, %d failed, %d skipped",
		result.Enriched, result.Missed, result.Failed, result.Skipped)

	return result
}
