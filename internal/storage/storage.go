package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meetscribe/scribe/internal/logger"
	"github.com/meetscribe/scribe/internal/meeting"
)

// Store renders meeting records into text documents and persists them under
// the configured output directory.
type Store struct {
	dir        string
	exportDocx bool
	logger     logger.Logger
	now        func() time.Time
}

func New(dir string, exportDocx bool, log logger.Logger) *Store {
	return &Store{
		dir:        dir,
		exportDocx: exportDocx,
		logger:     log,
		now:        time.Now,
	}
}

// Now exposes the store's clock so callers render documents with the same
// timestamp source used for file names.
func (s *Store) Now() time.Time {
	return s.now()
}

// Render builds the full human-readable meeting document.
func Render(record *meeting.Record, generatedAt time.Time) string {
	segments := record.Relabeled()

	var b strings.Builder
	b.WriteString("Meeting Notes\n")
	b.WriteString("Generated: " + generatedAt.UTC().Format("2006-01-02 15:04:05 UTC") + "\n")
	b.WriteString("\nTranscript\n==========\n")
	if transcript := meeting.TranscriptText(segments); transcript != "" {
		b.WriteString(transcript + "\n")
	} else {
		b.WriteString("(No transcript available)\n")
	}

	b.WriteString("\nSummary\n=======\n")
	if summary := strings.TrimSpace(record.Summary.Summary); summary != "" {
		b.WriteString(summary + "\n")
	} else {
		b.WriteString("(No summary provided)\n")
	}

	b.WriteString("\nAction Items\n============\n")
	if len(record.Summary.ActionItems) == 0 {
		b.WriteString("- (no action items)\n")
	} else {
		for _, item := range record.Summary.ActionItems {
			b.WriteString("- " + item + "\n")
		}
	}
	return b.String()
}

// Save writes the rendered document to a timestamped file, never silently
// overwriting an existing one. It returns the path of the written file.
func (s *Store) Save(ctx context.Context, record *meeting.Record, overrideName string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", &meeting.PersistenceError{Path: s.dir, Err: err}
	}

	generatedAt := s.now()
	name := strings.TrimSpace(overrideName)
	if name == "" {
		name = strings.TrimSpace(record.FileOverride)
	}
	if name == "" {
		name = "meeting_notes_" + generatedAt.Format("20060102_150405")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".txt") {
		name += ".txt"
	}

	path := s.uniquePath(filepath.Join(s.dir, name))
	document := Render(record, generatedAt)
	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return "", &meeting.PersistenceError{Path: path, Err: err}
	}
	s.logger.Info(ctx, "meeting notes saved: %s", path)

	if s.exportDocx {
		docxPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".docx"
		if err := writeDocx(record, generatedAt, docxPath); err != nil {
			// The text artifact is canonical; DOCX export is best effort.
			s.logger.Warn(ctx, "docx export failed for %s: %v", docxPath, err)
		} else {
			s.logger.Info(ctx, "docx exported: %s", docxPath)
		}
	}

	return path, nil
}

// uniquePath appends _1, _2, ... before the extension until the path is free.
func (s *Store) uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
