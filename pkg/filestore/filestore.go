package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalDir is a flat content directory for attachment objects. Object names
// are generated, never user-supplied, so a locator always resolves to exactly
// one file directly under the base directory.
type LocalDir struct {
	base string
}

// New creates the base directory if needed and returns a handle to it.
func New(base string) (*LocalDir, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("create content dir %s: %w", base, err)
	}
	return &LocalDir{base: base}, nil
}

// Base returns the directory objects are stored in.
func (d *LocalDir) Base() string {
	return d.base
}

// StorageName derives a collision-free object name, keeping only the
// extension of the original filename.
func StorageName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}

// Write streams r into a new object and returns its locator and the byte
// count written. The data goes to a temp file first and is renamed into place
// only on success, so an interrupted write never leaves a live object behind.
func (d *LocalDir) Write(name string, r io.Reader) (string, int64, error) {
	tmp, err := os.CreateTemp(d.base, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp object: %w", err)
	}
	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.Path(name)); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("finalize object: %w", err)
	}
	return name, n, nil
}

// Remove deletes the object behind locator. A locator that no longer resolves
// to a file is not an error.
func (d *LocalDir) Remove(locator string) error {
	err := os.Remove(d.Path(locator))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object %s: %w", locator, err)
	}
	return nil
}

// Exists reports whether the locator still resolves to a stored object.
func (d *LocalDir) Exists(locator string) bool {
	_, err := os.Stat(d.Path(locator))
	return err == nil
}

// Path maps a locator to its absolute location. Base is applied to the last
// path element only, so a crafted locator cannot escape the directory.
func (d *LocalDir) Path(locator string) string {
	return filepath.Join(d.base, filepath.Base(locator))
}
