// Package imageio loads images from files, raw bytes and data URLs and
// writes exported results. Decoding honours EXIF orientation.
package imageio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var (
	// ErrNotImage is returned when the input does not sniff as an image type.
	ErrNotImage = errors.New("imageio: not an image file")
	// ErrEmpty is returned for empty input.
	ErrEmpty = errors.New("imageio: empty input")
)

// Decoded is a loaded image plus the metadata the tools need for export.
type Decoded struct {
	Image     image.Image
	MediaType string // e.g. "image/png"
	Name      string // display name (file base name or "data URL")
	Size      int64  // encoded size in bytes
}

// Source produces a decoded image. Open should return ctx.Err() promptly
// once ctx is cancelled.
type Source interface {
	Open(ctx context.Context) (*Decoded, error)
}

// FileSource reads an image file from disk.
type FileSource struct{ Path string }

func (s FileSource) Open(ctx context.Context) (*Decoded, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DecodeBytes(ctx, data, filepath.Base(s.Path))
}

// BytesSource decodes an in-memory encoded image.
type BytesSource struct {
	Data []byte
	Name string
}

func (s BytesSource) Open(ctx context.Context) (*Decoded, error) {
	return DecodeBytes(ctx, s.Data, s.Name)
}

// DataURLSource decodes a data URL, optionally URL-encoded as it arrives in
// a query parameter.
type DataURLSource struct{ Raw string }

func (s DataURLSource) Open(ctx context.Context) (*Decoded, error) {
	return DecodeDataURL(ctx, s.Raw)
}

// FuncSource adapts an already decoded image producer, for example a screen
// grab.
type FuncSource struct {
	Name string
	Fn   func() (image.Image, error)
}

func (s FuncSource) Open(ctx context.Context) (*Decoded, error) {
	if s.Fn == nil {
		return nil, ErrEmpty
	}
	img, err := s.Fn()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrEmpty
	}
	return &Decoded{Image: img, MediaType: PNG.MediaType, Name: s.Name}, nil
}

// IsDataURL reports whether s looks like a data URL, URL-encoded or not.
func IsDataURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "data:") || strings.HasPrefix(strings.ToLower(s), "data%3a")
}

// SourceFor picks a DataURLSource or FileSource for a command-line argument.
func SourceFor(arg string) Source {
	if IsDataURL(arg) {
		return DataURLSource{Raw: arg}
	}
	return FileSource{Path: arg}
}

// SniffMediaType returns the sniffed media type of data and ErrNotImage when
// it is not an image/* type.
func SniffMediaType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	mt := http.DetectContentType(data)
	if strings.HasPrefix(mt, "image/") {
		return mt, nil
	}
	// content sniffing has no signature for some decodable formats (tiff)
	if _, name, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		return "image/" + name, nil
	}
	return mt, fmt.Errorf("%w: detected %s", ErrNotImage, mt)
}

// DecodeBytes sniffs and decodes an encoded image.
func DecodeBytes(ctx context.Context, data []byte, name string) (*Decoded, error) {
	mt, err := SniffMediaType(data)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Decoded{Image: img, MediaType: mt, Name: name, Size: int64(len(data))}, nil
}

// DecodeDataURL decodes a data URL. The declared media type is kept for
// output format inference; the payload itself must still sniff as an image.
func DecodeDataURL(ctx context.Context, raw string) (*Decoded, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmpty
	}
	if !strings.HasPrefix(raw, "data:") {
		unescaped, err := url.QueryUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("unescape data url: %w", err)
		}
		raw = unescaped
	}
	du, err := dataurl.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("parse data url: %w", err)
	}
	if du.Type != "image" {
		return nil, fmt.Errorf("%w: declared %s", ErrNotImage, du.ContentType())
	}
	dec, err := DecodeBytes(ctx, du.Data, "data URL")
	if err != nil {
		return nil, err
	}
	dec.MediaType = du.ContentType()
	return dec, nil
}
