package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	EventParse  EventType = "parse"
	EventEnrich EventType = "enrich"
	EventSQL    EventType = "sql"
	EventSkip   EventType = "skip"
	EventError  EventType = "error"
)

// EventLevel represents the severity level
type EventLevel string

const (
	LevelDebug   EventLevel = "debug"
	LevelInfo    EventLevel = "info"
	LevelWarning EventLevel = "warning"
	LevelError   EventLevel = "error"
)

// levelPriority maps event levels to numeric priorities for comparison
var levelPriority = map[EventLevel]int{
	LevelDebug:   0,
	LevelInfo:    1,
	LevelWarning: 2,
	LevelError:   3,
}

// Event represents a single event in the conversion pipeline
type Event struct {
	Timestamp time.Time         `json:"ts"`
	Level     EventLevel        `json:"level"`
	Event     EventType         `json:"event"`
	File      string            `json:"file,omitempty"`
	Title     string            `json:"title,omitempty"`
	Artist    string            `json:"artist,omitempty"`
	Album     string            `json:"album,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Error     string            `json:"error,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// EventLogger writes events to a JSONL file
type EventLogger struct {
	file     *os.File
	encoder  *json.Encoder
	mu       sync.Mutex
	path     string
	minLevel EventLevel
}

// NewEventLogger creates a new event logger with a minimum log level
// minLevel determines which events are written (e.g., LevelInfo skips LevelDebug)
func NewEventLogger(outputDir string, minLevel EventLevel) (*EventLogger, error) {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("events-%s.jsonl", timestamp)
	path := filepath.Join(outputDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	return &EventLogger{
		file:     file,
		encoder:  json.NewEncoder(file),
		path:     path,
		minLevel: minLevel,
	}, nil
}

// Path returns the event log file location
func (l *EventLogger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Log writes an event to the JSONL file
func (l *EventLogger) Log(event *Event) error {
	if l == nil || l.file == nil {
		return nil // Silently ignore if logger not initialized
	}

	// Filter by minimum level
	if levelPriority[event.Level] < levelPriority[l.minLevel] {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := l.encoder.Encode(event); err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	return nil
}

// LogParse logs a successfully parsed note
func (l *EventLogger) LogParse(file, title string, labelCount int) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventParse,
		File:  file,
		Title: title,
		Extra: map[string]string{
			"labels": fmt.Sprintf("%d", labelCount),
		},
	})
}

// LogSkip logs a note file that was skipped and why
func (l *EventLogger) LogSkip(file, reason string) error {
	return l.Log(&Event{
		Level:  LevelWarning,
		Event:  EventSkip,
		File:   file,
		Reason: reason,
	})
}

// LogEnrich logs a catalog lookup outcome for a note title
func (l *EventLogger) LogEnrich(title, artist, album string, err error) error {
	level := LevelInfo
	errMsg := ""
	if err != nil {
		level = LevelWarning
		errMsg = err.Error()
	}

	return l.Log(&Event{
		Level:  level,
		Event:  EventEnrich,
		Title:  title,
		Artist: artist,
		Album:  album,
		Error:  errMsg,
	})
}

// LogSQL logs the SQL emission outcome
func (l *EventLogger) LogSQL(path string, notes, tags, links int) error {
	return l.Log(&Event{
		Level: LevelInfo,
		Event: EventSQL,
		File:  path,
		Extra: map[string]string{
			"notes": fmt.Sprintf("%d", notes),
			"tags":  fmt.Sprintf("%d", tags),
			"links": fmt.Sprintf("%d", links),
		},
	})
}

// LogError logs a pipeline error
func (l *EventLogger) LogError(file string, err error) error {
	return l.Log(&Event{
		Level: LevelError,
		Event: EventError,
		File:  file,
		Error: err.Error(),
	})
}

// Close closes the event log file
func (l *EventLogger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	err := l.file.Close()
	l.file = nil
	return err
}
