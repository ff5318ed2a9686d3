package session

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// SnapshotName derives the snapshot file name from t.
func SnapshotName(t time.Time) string {
	return fmt.Sprintf("thermal_%d.png", t.Unix())
}

// PNGWriter saves snapshots as PNG files under Dir.
type PNGWriter struct {
	Dir string
}

// Write encodes img to Dir/name and returns the path written.
func (w PNGWriter) Write(name string, img image.Image) (string, error) {
	path := filepath.Join(w.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close snapshot: %w", err)
	}
	return path, nil
}
