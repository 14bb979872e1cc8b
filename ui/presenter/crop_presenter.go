package presenter

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/crop"
	"github.com/soocke/pixel-crop-go/domain/geom"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/rotate"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

// CropInstructions is drawn on the selection layer while the path is empty.
const CropInstructions = "Click points on the image to outline an area; click the first point again to finish."

// CropView is the UI surface of the crop tool.
type CropView interface {
	ShowSource(canvas image.Image)
	// DrawPath redraws the open selection path. A non-nil cursor adds the
	// preview segment from the last point; closeable highlights the first point.
	DrawPath(points geom.Polygon, cursor *image.Point, closeable bool)
	// DrawMask shows the completed selection: the dimming overlay plus the
	// closed outline.
	DrawMask(points geom.Polygon, overlay image.Image)
	ShowInstructions(text string)
	ShowPreview(pngData []byte)
	HidePreview()
	SetAngle(deg int)
	SetStatus(text string)
}

// CropPresenter owns the polygon crop tool: selection, crop, rotation
// preview and export.
type CropPresenter struct {
	imageSource
	model *model.CropSession
	view  CropView
	cache *images.PreviewCache
	size  int // crop canvas side

	// preview source: the cropped bitmap scaled to the preview size
	thumb image.Image
}

// NewCropPresenter wires a crop presenter. grab may be nil to disable screen
// capture.
func NewCropPresenter(ctx context.Context, m *model.CropSession, view CropView, dialogs Dialogs, ld ImageLoader, grab ScreenGrabber, cfg *config.Config, logger *slog.Logger) *CropPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if m == nil {
		m = model.NewCropSession()
	}
	return &CropPresenter{
		imageSource: imageSource{ctx: ctx, loader: ld, dialogs: dialogs, cfg: cfg, grab: grab, logger: logger.With("tool", "crop")},
		model:       m,
		view:        view,
		cache:       images.NewPreviewCache(cfg.PreviewCacheSize),
		size:        cfg.CanvasSize,
	}
}

// SetCanvasSize overrides the configured canvas side, for example when the
// screen is too small for it. It applies to the next loaded image.
func (p *CropPresenter) SetCanvasSize(size int) {
	if p == nil || size <= 0 {
		return
	}
	p.size = size
}

func (p *CropPresenter) Open() {
	if p == nil {
		return
	}
	p.open()
}

// Load starts loading src (command line argument, pasted data URL).
func (p *CropPresenter) Load(src imageio.Source) uint64 {
	if p == nil {
		return 0
	}
	return p.load(src)
}

func (p *CropPresenter) CaptureScreen() {
	if p == nil {
		return
	}
	p.capture()
}

// Tick applies a finished load. Call from the UI thread.
func (p *CropPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	dec, ok := p.poll()
	if !ok {
		return
	}
	p.apply(dec)
}

func (p *CropPresenter) apply(dec *imageio.Decoded) {
	canvas, placement := crop.Fit(dec.Image, p.size, crop.CanvasBackground)
	p.model.SetImage(dec, canvas, placement)
	p.clearDerived()
	p.view.ShowSource(canvas)
	p.redraw()
	p.view.SetStatus(describe(dec))
	p.logger.Info("crop canvas ready", "name", dec.Name, "scale", placement.Scale, "placement", placement.Rect.String())
}

func (p *CropPresenter) clearDerived() {
	p.thumb = nil
	p.cache.Purge()
	p.view.HidePreview()
	p.view.SetAngle(0)
}

// redraw paints the selection layer for the current state without a cursor.
func (p *CropPresenter) redraw() {
	pts := p.model.Points()
	switch {
	case p.model.Closed():
		b := p.model.Canvas().Bounds()
		p.view.DrawMask(pts, crop.Overlay(pts, b.Dx(), b.Dy()))
	case len(pts) == 0:
		p.view.DrawPath(nil, nil, false)
		p.view.ShowInstructions(CropInstructions)
	default:
		p.view.DrawPath(pts, nil, false)
	}
}

// Click adds a selection point, or completes the polygon when the click
// lands near the first point of a path with at least three points.
func (p *CropPresenter) Click(x, y int) {
	if p == nil || p.view == nil || !p.model.HasImage() || p.model.Closed() {
		return
	}
	pt := image.Pt(x, y)
	if p.model.Points().Closes(pt, float64(p.cfg.CloseRadius)) {
		p.complete()
		return
	}
	p.model.AddPoint(pt)
	p.redraw()
}

// Move draws the rubber-band segment to the cursor.
func (p *CropPresenter) Move(x, y int) {
	if p == nil || p.view == nil || !p.model.HasImage() || p.model.Closed() {
		return
	}
	pts := p.model.Points()
	if len(pts) == 0 {
		return
	}
	cursor := image.Pt(x, y)
	p.view.DrawPath(pts, &cursor, pts.Closes(cursor, float64(p.cfg.CloseRadius)))
}

// DoubleClick completes the selection when it has enough points.
func (p *CropPresenter) DoubleClick() {
	if p == nil || p.view == nil || p.model.Closed() {
		return
	}
	if p.model.PointCount() >= geom.MinPolygonPoints {
		p.complete()
	}
}

// Confirm is the explicit "confirm selection" action.
func (p *CropPresenter) Confirm() {
	if p == nil || p.view == nil {
		return
	}
	switch n := p.model.PointCount(); {
	case p.model.Closed():
		return
	case n >= geom.MinPolygonPoints:
		p.complete()
	case n > 0:
		p.alert("Selection", "Please select at least three points to form an area.")
	default:
		p.alert("Selection", "Please select an area on the image first.")
	}
}

func (p *CropPresenter) complete() {
	pts := p.model.Points()
	if len(pts) < geom.MinPolygonPoints {
		p.alert("Selection", "Please select at least three points to form an area.")
		return
	}
	cropped, err := crop.Polygon(p.model.Canvas(), pts)
	if err != nil {
		p.logger.Warn("crop failed", "points", len(pts), "error", err)
		p.alert("Selection", fmt.Sprintf("Could not crop the selection: %v", err))
		return
	}
	p.model.Close(cropped)
	p.thumb = images.ScaleToFit(cropped, p.cfg.PreviewMaxSize, p.cfg.PreviewMaxSize)
	p.cache.Purge()
	p.redraw()
	p.view.SetAngle(0)
	p.renderPreview()
	b := cropped.Bounds()
	p.logger.Info("selection cropped", "points", len(pts), "width", b.Dx(), "height", b.Dy(), "scale", p.model.Placement().Scale)
}

func (p *CropPresenter) renderPreview() {
	if p.thumb == nil {
		p.view.HidePreview()
		return
	}
	angle := p.model.Angle()
	data, ok := p.cache.Get(angle)
	if !ok {
		data = images.EncodePNG(rotate.Square(p.thumb, angle))
		p.cache.Put(angle, data)
	}
	p.view.ShowPreview(data)
}

func (p *CropPresenter) RotateLeft()  { p.rotateBy(-p.step()) }
func (p *CropPresenter) RotateRight() { p.rotateBy(p.step()) }

func (p *CropPresenter) step() int {
	if p == nil {
		return 0
	}
	return p.cfg.RotateStep
}

func (p *CropPresenter) rotateBy(delta int) {
	if p == nil || p.view == nil || p.model.Cropped() == nil {
		return
	}
	p.view.SetAngle(p.model.Rotate(delta))
	p.renderPreview()
}

// SetAngle handles slider input.
func (p *CropPresenter) SetAngle(deg int) {
	if p == nil || p.view == nil || p.model.Cropped() == nil {
		return
	}
	if rotate.Normalize(deg) == p.model.Angle() {
		return
	}
	p.model.SetAngle(deg)
	p.renderPreview()
}

// Reset clears the selection and redraws the original image. A load still
// in flight is abandoned.
func (p *CropPresenter) Reset() {
	if p == nil || p.view == nil {
		return
	}
	if p.loader != nil {
		p.loader.Invalidate()
	}
	p.model.ResetSelection()
	p.clearDerived()
	if p.model.HasImage() {
		p.view.ShowSource(p.model.Canvas())
	}
	p.redraw()
}

// Download exports the cropped selection at the current angle, trimmed to
// its opaque pixels, as PNG.
func (p *CropPresenter) Download() (string, error) {
	if p == nil || p.view == nil {
		return "", nil
	}
	cropped := p.model.Cropped()
	if cropped == nil {
		p.alert("Download", "Please select an area on the image first.")
		return "", nil
	}
	angle := p.model.Angle()
	path, err := p.export(imageio.CropFileName, imageio.PNG, func() image.Image {
		return rotate.ExportSquare(cropped, angle)
	})
	if err == nil && path != "" {
		p.view.SetStatus("Saved " + path)
	}
	return path, err
}
