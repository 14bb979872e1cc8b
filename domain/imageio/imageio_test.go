package imageio

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestFormatFromMediaType(t *testing.T) {
	cases := map[string]Format{
		"image/png":                  PNG,
		"data:image/png;base64,AAAA": PNG,
		"data:image/jpeg;base64,":    JPEG,
		"image/jpg":                  JPEG,
		"data:image/gif;base64,":     GIF,
		"image/webp":                 PNG,
		"":                           PNG,
		"text/plain":                 PNG,
	}
	for in, want := range cases {
		if got := FormatFromMediaType(in); got != want {
			t.Errorf("FormatFromMediaType(%q)=%v want %v", in, got.Ext, want.Ext)
		}
	}
}

func TestFileNames(t *testing.T) {
	if got := RotatedFileName(45, JPEG); got != "rotated_image_45degrees.jpg" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := RotatedFileName(0, Format{}); got != "rotated_image_0degrees.png" {
		t.Fatalf("unexpected default name %q", got)
	}
	if CropFileName != "cropped_image.png" {
		t.Fatalf("crop file name changed: %q", CropFileName)
	}
}

func TestDecodeDataURL_PlainAndEscaped(t *testing.T) {
	raw := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 7, 3))
	for _, in := range []string{raw, url.QueryEscape(raw)} {
		dec, err := DecodeDataURL(context.Background(), in)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if dec.Image.Bounds().Dx() != 7 || dec.Image.Bounds().Dy() != 3 {
			t.Fatalf("unexpected bounds %v", dec.Image.Bounds())
		}
		if dec.MediaType != "image/png" {
			t.Fatalf("media type %q", dec.MediaType)
		}
	}
	if !IsDataURL(url.QueryEscape(raw)) || IsDataURL("/tmp/photo.png") {
		t.Fatalf("IsDataURL misclassified input")
	}
}

func TestDecodeBytes_RejectsNonImage(t *testing.T) {
	_, err := DecodeBytes(context.Background(), []byte("hello, plain text"), "notes.txt")
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
	if _, err := DecodeBytes(context.Background(), nil, "empty"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	raw := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hi"))
	if _, err := DecodeDataURL(context.Background(), raw); !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage for text data url, got %v", err)
	}
}

func TestDecodeBytes_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DecodeBytes(ctx, pngBytes(t, 2, 2), "x.png"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", CropFileName)
	img := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := Save(path, img, PNG, 100); err != nil {
		t.Fatalf("save: %v", err)
	}
	dec, err := FileSource{Path: path}.Open(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if dec.Image.Bounds().Dx() != 5 || dec.Image.Bounds().Dy() != 4 || dec.Name != CropFileName {
		t.Fatalf("unexpected reload %v %q", dec.Image.Bounds(), dec.Name)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}
