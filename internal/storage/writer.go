package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/halverson/reddit-user-crawler/internal/domain"
)

// Writer persists crawl payloads as envelope-shaped JSON files, one file per
// data type, overwritten on every run.
type Writer struct {
	Dir string

	// now is swappable in tests.
	now func() time.Time
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, now: time.Now}
}

// Write wraps payload in the standard envelope and saves it to
// <dir>/<dataType>.json. The write goes through a temp file and a rename so
// a crash never leaves a half-written file behind. Returns the final path.
func (w *Writer) Write(dataType string, payload any) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", w.Dir, err)
	}

	envelope := domain.Envelope{
		Timestamp: w.now().Format(time.RFC3339),
		DataType:  dataType,
		Data:      payload,
	}

	b, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", dataType, err)
	}

	final := filepath.Join(w.Dir, dataType+".json")
	tmp, err := os.CreateTemp(w.Dir, dataType+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file for %s: %w", dataType, err)
	}

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", dataType, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", dataType, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("saving %s: %w", dataType, err)
	}
	return final, nil
}
