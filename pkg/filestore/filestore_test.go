package filestore

import (
	"errors"
	"os"
	"strings"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read interrupted")
}

func TestStorageName(t *testing.T) {
	a := StorageName("receipt.PDF")
	b := StorageName("receipt.PDF")
	if a == b {
		t.Fatal("two storage names collided")
	}
	if !strings.HasSuffix(a, ".pdf") {
		t.Fatalf("extension not preserved (lowercased): %q", a)
	}
	if strings.Contains(a, "receipt") {
		t.Fatalf("storage name %q must not depend on the original filename", a)
	}
	if StorageName("noext") == StorageName("noext") {
		t.Fatal("names without extension collided")
	}
}

func TestWriteRemoveExists(t *testing.T) {
	d, err := New(t.TempDir() + "/content")
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	loc, size, err := d.Write("obj.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if size != 5 {
		t.Fatalf("size = %d, want 5", size)
	}
	if !d.Exists(loc) {
		t.Fatal("written object does not exist")
	}

	if err := d.Remove(loc); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if d.Exists(loc) {
		t.Fatal("object still exists after remove")
	}
	// idempotent on a missing target
	if err := d.Remove(loc); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestWriteFailureLeavesNothing(t *testing.T) {
	d, err := New(t.TempDir() + "/content")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, _, err := d.Write("obj.txt", failingReader{}); err == nil {
		t.Fatal("expected write error")
	}
	entries, err := os.ReadDir(d.Base())
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed write left %d file(s) behind", len(entries))
	}
}

func TestPathStaysInsideBase(t *testing.T) {
	d, err := New(t.TempDir() + "/content")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	p := d.Path("../../etc/passwd")
	if !strings.HasPrefix(p, d.Base()) {
		t.Fatalf("path escaped the base dir: %q", p)
	}
}

func TestThumbnailSkipsNonImages(t *testing.T) {
	d, err := New(t.TempDir() + "/content")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	loc, _, err := d.Write("doc.txt", strings.NewReader("not an image"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Thumbnail(loc); err != nil {
		t.Fatalf("non-image thumbnail should be a no-op, got %v", err)
	}
	entries, _ := os.ReadDir(d.Base())
	if len(entries) != 1 {
		t.Fatalf("no-op thumbnail created files: %d entries", len(entries))
	}
}

func TestIsThumbnail(t *testing.T) {
	if !IsThumbnail("abc_thumb.jpg") {
		t.Fatal("generated preview not recognized")
	}
	if IsThumbnail("abc.jpg") {
		t.Fatal("plain object misclassified as preview")
	}
}
