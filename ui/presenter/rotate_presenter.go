package presenter

import (
	"context"
	"image"
	"log/slog"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/rotate"
	"github.com/soocke/pixel-crop-go/ui/images"
	"github.com/soocke/pixel-crop-go/ui/model"
)

// RotateView is the UI surface of the free rotation tool.
type RotateView interface {
	ShowPreview(pngData []byte)
	ClearPreview()
	SetAngle(deg int)
	SetDownloadEnabled(bool)
	SetStatus(text string)
}

// RotatePresenter owns the free rotation tool. The preview rotates a
// thumbnail; the full-resolution image is only touched on export.
type RotatePresenter struct {
	imageSource
	model *model.RotateSession
	view  RotateView
	cache *images.PreviewCache
}

func NewRotatePresenter(ctx context.Context, m *model.RotateSession, view RotateView, dialogs Dialogs, ld ImageLoader, grab ScreenGrabber, cfg *config.Config, logger *slog.Logger) *RotatePresenter {
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
		m = model.NewRotateSession()
	}
	return &RotatePresenter{
		imageSource: imageSource{ctx: ctx, loader: ld, dialogs: dialogs, cfg: cfg, grab: grab, logger: logger.With("tool", "rotate")},
		model:       m,
		view:        view,
		cache:       images.NewPreviewCache(cfg.PreviewCacheSize),
	}
}

func (p *RotatePresenter) Open() {
	if p == nil {
		return
	}
	p.open()
}

func (p *RotatePresenter) Load(src imageio.Source) uint64 {
	if p == nil {
		return 0
	}
	return p.load(src)
}

func (p *RotatePresenter) CaptureScreen() {
	if p == nil {
		return
	}
	p.capture()
}

// Tick applies a finished load. Call from the UI thread.
func (p *RotatePresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	dec, ok := p.poll()
	if !ok {
		return
	}
	thumb := images.ScaleToFit(dec.Image, p.cfg.PreviewMaxSize, p.cfg.PreviewMaxSize)
	p.model.SetImage(dec, thumb)
	p.cache.Purge()
	p.view.SetAngle(0)
	p.view.SetDownloadEnabled(true)
	p.view.SetStatus(describe(dec))
	p.renderPreview()
	p.logger.Info("rotate image ready", "name", dec.Name, "media_type", dec.MediaType)
}

func (p *RotatePresenter) renderPreview() {
	thumb := p.model.Thumbnail()
	if thumb == nil {
		p.view.ClearPreview()
		return
	}
	angle := p.model.Angle()
	data, ok := p.cache.Get(angle)
	if !ok {
		data = images.EncodePNG(rotate.Square(thumb, angle))
		p.cache.Put(angle, data)
	}
	p.view.ShowPreview(data)
}

// SetAngle handles slider input (0..359).
func (p *RotatePresenter) SetAngle(deg int) {
	if p == nil || p.view == nil {
		return
	}
	if deg == p.model.Angle() && p.model.HasImage() {
		return
	}
	p.model.SetAngle(deg)
	if p.model.HasImage() {
		p.renderPreview()
	}
}

// Reset returns the rotation to 0; the image stays loaded.
func (p *RotatePresenter) Reset() {
	if p == nil || p.view == nil {
		return
	}
	p.model.SetAngle(0)
	p.view.SetAngle(0)
	if p.model.HasImage() {
		p.renderPreview()
	}
}

// Download exports the full-resolution image rotated into its exact
// bounding box, in the format inferred from the loaded media type.
func (p *RotatePresenter) Download() (string, error) {
	if p == nil || p.view == nil {
		return "", nil
	}
	if !p.model.HasImage() {
		p.alert("Download", "Please upload an image first.")
		return "", nil
	}
	src := p.model.Source().Image
	angle := p.model.Angle()
	f := p.model.Format()
	path, err := p.export(imageio.RotatedFileName(angle, f), f, func() image.Image {
		return rotate.Fit(src, angle)
	})
	if err == nil && path != "" {
		p.view.SetStatus("Saved " + path)
	}
	return path, err
}
