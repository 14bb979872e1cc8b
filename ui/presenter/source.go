package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"runtime/debug"

	"github.com/dustin/go-humanize"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/loader"
)

// ImageLoader is the asynchronous, generation-checked loader used by both
// tools.
type ImageLoader interface {
	Load(ctx context.Context, src imageio.Source) uint64
	Invalidate() uint64
	Poll() (loader.Result, bool)
}

// Dialogs are the modal interactions a presenter may start.
type Dialogs interface {
	// OpenImage asks for an image file; ok is false on cancel.
	OpenImage(initialDir string) (path string, ok bool)
	// SaveImage asks where to write an export named name; ok is false on cancel.
	SaveImage(name, initialDir string, f imageio.Format) (path string, ok bool)
	Alert(title, message string)
}

// ScreenGrabber captures the screen.
type ScreenGrabber func() (image.Image, error)

var _ ImageLoader = (*loader.Loader)(nil)

// imageSource holds the parts shared by both tools for getting an image in
// and a result out.
type imageSource struct {
	ctx     context.Context
	loader  ImageLoader
	dialogs Dialogs
	cfg     *config.Config
	grab    ScreenGrabber
	logger  *slog.Logger
}

// open shows the file dialog and starts loading the chosen file.
func (s *imageSource) open() bool {
	if s.dialogs == nil || s.loader == nil {
		return false
	}
	path, ok := s.dialogs.OpenImage(s.cfg.LastOpenDir)
	if !ok || path == "" {
		return false
	}
	s.cfg.LastOpenDir = filepath.Dir(path)
	s.load(imageio.FileSource{Path: path})
	return true
}

func (s *imageSource) load(src imageio.Source) uint64 {
	if s.loader == nil || src == nil {
		return 0
	}
	gen := s.loader.Load(s.ctx, src)
	s.logger.Debug("load started", "generation", gen, "source", fmt.Sprintf("%T", src))
	return gen
}

func (s *imageSource) capture() bool {
	if s.grab == nil {
		return false
	}
	s.load(imageio.FuncSource{Name: "screen capture", Fn: s.grab})
	return true
}

// poll returns a finished load, alerting on failure. ok is true only for a
// successfully decoded image of the current generation.
func (s *imageSource) poll() (*imageio.Decoded, bool) {
	if s.loader == nil {
		return nil, false
	}
	res, ok := s.loader.Poll()
	if !ok {
		return nil, false
	}
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return nil, false
		}
		s.logger.Warn("image load failed", "generation", res.Generation, "error", res.Err)
		if errors.Is(res.Err, imageio.ErrNotImage) || errors.Is(res.Err, imageio.ErrEmpty) {
			s.alert("Invalid file", "Please choose an image file.")
		} else {
			s.alert("Load failed", res.Err.Error())
		}
		return nil, false
	}
	if res.Decoded == nil || res.Decoded.Image == nil {
		return nil, false
	}
	return res.Decoded, true
}

func (s *imageSource) alert(title, msg string) {
	if s.dialogs != nil {
		s.dialogs.Alert(title, msg)
	}
}

// savePath resolves where an export goes: a save dialog pre-filled with
// name, or straight into the export directory.
func (s *imageSource) savePath(name string, f imageio.Format) (string, bool) {
	if !s.cfg.AskSavePath || s.dialogs == nil {
		return filepath.Join(s.cfg.ExportDir, name), true
	}
	path, ok := s.dialogs.SaveImage(name, s.cfg.ExportDir, f)
	if !ok || path == "" {
		return "", false
	}
	return path, true
}

// export renders with render, asks for a destination and writes the file.
// A panic while rendering or encoding is recovered and reported.
func (s *imageSource) export(name string, f imageio.Format, render func() image.Image) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("export panicked", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("export panicked: %v", r)
		}
		if err != nil {
			s.alert("Export failed", "Could not export the image: "+err.Error())
		}
	}()
	out := render()
	if out == nil {
		return "", imageio.ErrEmpty
	}
	path, ok := s.savePath(name, f)
	if !ok {
		return "", nil
	}
	if err := imageio.Save(path, out, f, s.cfg.JPEGQuality); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	b := out.Bounds()
	s.logger.Info("image exported", "path", path, "format", f.Ext, "width", b.Dx(), "height", b.Dy())
	return path, nil
}

func describe(d *imageio.Decoded) string {
	if d == nil || d.Image == nil {
		return ""
	}
	b := d.Image.Bounds()
	if d.Size > 0 {
		return fmt.Sprintf("%s  %d×%d  %s", d.Name, b.Dx(), b.Dy(), humanize.Bytes(uint64(d.Size)))
	}
	return fmt.Sprintf("%s  %d×%d", d.Name, b.Dx(), b.Dy())
}
