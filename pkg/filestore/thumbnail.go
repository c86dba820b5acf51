package filestore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbWidth = 320

// thumbExts covers the formats imaging can decode.
var thumbExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Thumbnail renders a fixed-width JPEG preview next to an image object.
// Non-image objects are skipped. Callers treat failures as non-fatal; the
// original object is the source of truth.
func (d *LocalDir) Thumbnail(locator string) error {
	if !thumbExts[strings.ToLower(filepath.Ext(locator))] {
		return nil
	}
	img, err := imaging.Open(d.Path(locator))
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	return imaging.Save(thumb, d.thumbPath(locator))
}

// RemoveThumbnail deletes the preview for locator, if one was ever rendered.
// Previews are derived data; a failed remove is a benign leak.
func (d *LocalDir) RemoveThumbnail(locator string) {
	_ = os.Remove(d.thumbPath(locator))
}

// IsThumbnail reports whether name is a generated preview rather than an
// attachment object.
func IsThumbnail(name string) bool {
	return strings.HasSuffix(filepath.Base(name), thumbSuffix)
}

const thumbSuffix = "_thumb.jpg"

func (d *LocalDir) thumbPath(locator string) string {
	name := filepath.Base(locator)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(d.base, name+thumbSuffix)
}
