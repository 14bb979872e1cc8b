package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Encode writes img to w in format f. quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if img == nil {
		return ErrEmpty
	}
	if f.Ext == "" {
		f = PNG
	}
	return imaging.Encode(w, img, f.codec, imaging.JPEGQuality(quality))
}

// Save encodes img into path, creating the parent directory. The file is
// written to a temporary sibling first so a failed export never leaves a
// truncated image behind.
func Save(path string, img image.Image, f Format, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := Encode(tmp, img, f, quality); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", f.Ext, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
