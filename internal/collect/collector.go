// Package collect enumerates a directory of Keep export JSON files and runs
// each through the parsing pipeline. Notes are independent, so files are
// parsed by a small worker pool; the output order always matches the sorted
// input file order regardless of scheduling.
package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/franz/keep-migrator/internal/note"
	"github.com/franz/keep-migrator/internal/report"
	"github.com/franz/keep-migrator/internal/util"
)

// Collector reads and parses note export files
type Collector struct {
	concurrency int
	logger      *report.EventLogger
}

// Config holds collector configuration
type Config struct {
	Concurrency int
	Logger      *report.EventLogger
}

// New creates a new Collector
func New(cfg *Config) *Collector {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Collector{
		concurrency: cfg.Concurrency,
		logger:      cfg.Logger,
	}
}

// Result represents a collection result
type Result struct {
	Notes        []*note.Note
	FilesRead    int
	FilesSkipped int
	Errors       []error
}

// Collect parses every *.json file in inputDir. Malformed or unreadable
// files are logged and skipped; they never abort the batch.
func (c *Collector) Collect(ctx context.Context, inputDir string) (*Result, error) {
	util.InfoLog("Collecting note exports from: %s", inputDir)

	files, err := filepath.Glob(filepath.Join(inputDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list input directory: %w", err)
	}
	if len(files) == 0 {
		util.WarnLog("No .json files found in %s", inputDir)
	}

	// Absent creation timestamps all default to the same run time.
	runTime := time.Now().UTC()

	// Indexed by file position so output order is stable.
	parsed := make([]*note.Note, len(files))

	result := &Result{}
	var errMu sync.Mutex
	var skipped atomic.Int64

	var bar *progressbar.ProgressBar
	if util.StdoutIsTerminal() && !util.IsQuiet() {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("Parsing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < c.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				n, err := c.parseFile(j.path, runTime)
				if err != nil {
					skipped.Add(1)
					util.ErrorLog("Skipping %s: %v", filepath.Base(j.path), err)
					c.logger.LogSkip(filepath.Base(j.path), err.Error())
					errMu.Lock()
					result.Errors = append(result.Errors, fmt.Errorf("%s: %w", j.path, err))
					errMu.Unlock()
				} else {
					parsed[j.index] = n
					c.logger.LogParse(filepath.Base(j.path), n.Title, len(n.Labels))
				}
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}

	for i, path := range files {
		select {
		case jobs <- job{index: i, path: path}:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return result, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	// Compact, preserving file order
	for _, n := range parsed {
		if n != nil {
			result.Notes = append(result.Notes, n)
		}
	}
	result.FilesRead = len(result.Notes)
	result.FilesSkipped = int(skipped.Load())

	util.SuccessLog("Collected %d notes (%d skipped)", result.FilesRead, result.FilesSkipped)

	return result, nil
}

// parseFile reads one export file and runs it through the pipeline
func (c *Collector) parseFile(path string, runTime time.Time) (*note.Note, error) {
	data, err := util.RetryableReadFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	var raw note.RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformed, err)
	}

	return note.Parse(&raw, runTime), nil
}

// CheckInputDir verifies the input directory exists before a run starts
func CheckInputDir(inputDir string) error {
	info, err := os.Stat(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input directory does not exist: %s", inputDir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", inputDir)
	}
	return nil
}
