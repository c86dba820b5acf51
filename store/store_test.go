package store_test

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"brickbybrick/pkg/filestore"
	"brickbybrick/store"
)

// newTestStore opens a throwaway sqlite database and content directory under
// t.TempDir. Returns the content dir too so tests can poke at the objects.
func newTestStore(t *testing.T) (*store.Store, *filestore.LocalDir) {
	t.Helper()
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	files, err := filestore.New(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("filestore: %v", err)
	}
	return store.New(db, files), files
}
