// Package fsutil provides small filesystem helpers shared by the provider
// cache and export layers.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// WriteAtomic writes data to path by writing a temp file in the same
// directory and renaming it into place, so a reader never observes a
// partially-written file (spec.md §5: "writes are atomic: write temp file,
// then rename").
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "fsutil: create dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return eris.Wrap(err, "fsutil: create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrapf(err, "fsutil: write temp file for %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "fsutil: close temp file for %s", path)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return eris.Wrapf(err, "fsutil: chmod temp file for %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return eris.Wrapf(err, "fsutil: rename into place %s", path)
	}
	return nil
}
