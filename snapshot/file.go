package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/St3r30X/any-bot/grid"
)

// File stores the snapshot as a single JSON document on disk. Writes go
// through a temp file in the same directory followed by a rename, so a
// crash mid-write never leaves a truncated snapshot behind.
type File struct {
	path string
}

// NewFile creates a file-backed store at path. The file may be absent; the
// first Load then reports "no snapshot yet".
func NewFile(path string) *File { return &File{path: path} }

func (f *File) Load(ctx context.Context) (grid.Grid, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("snapshot: read %s: %w", f.path, err)
	}

	var g grid.Grid
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", f.path, err)
	}
	return g, nil
}

func (f *File) Replace(ctx context.Context, g grid.Grid) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	return nil
}
