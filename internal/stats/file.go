// internal/stats/file.go
//
// Stats persistence on local disk for the terminal client.
//
// The file holds a single histogram line (see stats.go). Writes go to a
// temp file in the same directory and are renamed into place.

package stats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LoadFile reads the stats file at path. A missing file is not an error and
// yields zero Stats.
func LoadFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	s, err := Deserialize(f)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SaveFile writes s to path atomically (temp file + rename), creating the
// parent directory if needed.
func SaveFile(path string, s Stats) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".stats-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.Serialize(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
