package presenter

import (
	"context"
	"image"
	"image/color"

	"github.com/soocke/pixel-crop-go/domain/geom"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/loader"
)

// syncLoader decodes inline so tests can drive Tick deterministically.
type syncLoader struct {
	gen     uint64
	pending *loader.Result
	loads   int
}

func (l *syncLoader) Load(ctx context.Context, src imageio.Source) uint64 {
	l.gen++
	l.loads++
	dec, err := src.Open(ctx)
	l.pending = &loader.Result{Generation: l.gen, Decoded: dec, Err: err}
	return l.gen
}

func (l *syncLoader) Invalidate() uint64 {
	l.gen++
	l.pending = nil
	return l.gen
}

func (l *syncLoader) Poll() (loader.Result, bool) {
	if l.pending == nil || l.pending.Generation != l.gen {
		return loader.Result{}, false
	}
	r := *l.pending
	l.pending = nil
	return r, true
}

type mockDialogs struct {
	openPath string
	savePath string
	saveName string
	alerts   []string
}

func (d *mockDialogs) OpenImage(string) (string, bool) { return d.openPath, d.openPath != "" }
func (d *mockDialogs) SaveImage(name, _ string, _ imageio.Format) (string, bool) {
	d.saveName = name
	return d.savePath, d.savePath != ""
}
func (d *mockDialogs) Alert(title, msg string) { d.alerts = append(d.alerts, title+": "+msg) }

type mockCropView struct {
	sources, paths, masks, previews, hides int
	lastCursor                             *image.Point
	lastCloseable                          bool
	instructions                           string
	angle                                  int
	status                                 string
	lastOverlay                            image.Image
}

func (v *mockCropView) ShowSource(image.Image) { v.sources++ }
func (v *mockCropView) DrawPath(_ geom.Polygon, cursor *image.Point, closeable bool) {
	v.paths++
	v.lastCursor = cursor
	v.lastCloseable = closeable
	v.instructions = ""
}
func (v *mockCropView) DrawMask(_ geom.Polygon, overlay image.Image) {
	v.masks++
	v.lastOverlay = overlay
}
func (v *mockCropView) ShowInstructions(text string) { v.instructions = text }
func (v *mockCropView) ShowPreview([]byte)           { v.previews++ }
func (v *mockCropView) HidePreview()                 { v.hides++ }
func (v *mockCropView) SetAngle(deg int)             { v.angle = deg }
func (v *mockCropView) SetStatus(text string)        { v.status = text }

type mockRotateView struct {
	previews, clears int
	angle            int
	downloadEnabled  bool
	status           string
}

func (v *mockRotateView) ShowPreview([]byte)        { v.previews++ }
func (v *mockRotateView) ClearPreview()             { v.clears++ }
func (v *mockRotateView) SetAngle(deg int)          { v.angle = deg }
func (v *mockRotateView) SetDownloadEnabled(b bool) { v.downloadEnabled = b }
func (v *mockRotateView) SetStatus(text string)     { v.status = text }

// decodedSource hands out a fixed image with a chosen media type.
type decodedSource struct {
	img       image.Image
	mediaType string
	name      string
}

func (s decodedSource) Open(ctx context.Context) (*imageio.Decoded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &imageio.Decoded{Image: s.img, MediaType: s.mediaType, Name: s.name}, nil
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
