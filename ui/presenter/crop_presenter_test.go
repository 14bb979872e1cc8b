package presenter

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/crop"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/loader"
	"github.com/soocke/pixel-crop-go/ui/model"
)

type cropFixture struct {
	p       *CropPresenter
	model   *model.CropSession
	view    *mockCropView
	dialogs *mockDialogs
	loader  *syncLoader
	cfg     *config.Config
}

func newCropFixture(t *testing.T) *cropFixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ExportDir = t.TempDir()
	f := &cropFixture{
		model:   model.NewCropSession(),
		view:    &mockCropView{},
		dialogs: &mockDialogs{},
		loader:  &syncLoader{},
		cfg:     cfg,
	}
	f.p = NewCropPresenter(context.Background(), f.model, f.view, f.dialogs, f.loader, nil, cfg, nil)
	return f
}

func (f *cropFixture) load(img image.Image) {
	f.p.Load(decodedSource{img: img, mediaType: "image/png", name: "photo.png"})
	f.p.Tick()
}

// quad lies inside the area a 400x300 image covers on the 1024 canvas.
var quad = []image.Point{{100, 200}, {700, 200}, {700, 600}, {100, 600}}

func (f *cropFixture) selectQuad() {
	for _, pt := range quad {
		f.p.Click(pt.X, pt.Y)
	}
}

func TestCropPresenter_LoadShowsCanvasAndInstructions(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{R: 200, A: 255}))
	if !f.model.HasImage() || f.view.sources != 1 {
		t.Fatalf("image not applied: has=%v sources=%d", f.model.HasImage(), f.view.sources)
	}
	if f.view.instructions != CropInstructions {
		t.Fatalf("instructions not shown: %q", f.view.instructions)
	}
	if c := f.model.Canvas(); c.Bounds().Dx() != 1024 || c.Bounds().Dy() != 1024 {
		t.Fatalf("unexpected canvas %v", c.Bounds())
	}
	if !strings.Contains(f.view.status, "photo.png") {
		t.Fatalf("status missing name: %q", f.view.status)
	}
}

func TestCropPresenter_ClickIgnoredWithoutImage(t *testing.T) {
	f := newCropFixture(t)
	f.p.Click(10, 10)
	if f.model.PointCount() != 0 || f.view.paths != 0 {
		t.Fatal("click without image should be ignored")
	}
}

func TestCropPresenter_MoveShowsCloseableMarker(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.p.Move(50, 50)
	if f.view.paths != 1 {
		t.Fatalf("move without points should not draw, got %d draws", f.view.paths)
	}
	f.selectQuad()
	f.p.Move(300, 300)
	if f.view.lastCursor == nil || *f.view.lastCursor != image.Pt(300, 300) || f.view.lastCloseable {
		t.Fatalf("unexpected preview segment state: %+v closeable=%v", f.view.lastCursor, f.view.lastCloseable)
	}
	f.p.Move(110, 205)
	if !f.view.lastCloseable {
		t.Fatal("cursor near first point should be closeable")
	}
}

func TestCropPresenter_ClickNearFirstPointCloses(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{G: 255, A: 255}))
	f.selectQuad()
	f.p.Click(105, 205)
	if !f.model.Closed() || f.view.masks != 1 || f.view.previews != 1 {
		t.Fatalf("polygon not closed: closed=%v masks=%d previews=%d", f.model.Closed(), f.view.masks, f.view.previews)
	}
	if f.model.PointCount() != len(quad) {
		t.Fatalf("closing click must not be added: %d points", f.model.PointCount())
	}
	b := f.model.Cropped().Bounds()
	if b.Dx() != 600 || b.Dy() != 400 {
		t.Fatalf("cropped size %v, want 600x400", b)
	}
}

func TestCropPresenter_TwoPointsNearFirstDoNotClose(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.p.Click(100, 200)
	f.p.Click(300, 200)
	f.p.Click(105, 203)
	if f.model.Closed() || f.model.PointCount() != 3 {
		t.Fatalf("closed=%v points=%d", f.model.Closed(), f.model.PointCount())
	}
}

func TestCropPresenter_ConfirmAlerts(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.p.Confirm()
	f.p.Click(100, 200)
	f.p.Click(300, 200)
	f.p.Confirm()
	f.p.DoubleClick()
	if len(f.dialogs.alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %v", f.dialogs.alerts)
	}
	if !strings.Contains(f.dialogs.alerts[0], "area on the image first") || !strings.Contains(f.dialogs.alerts[1], "at least three") {
		t.Fatalf("unexpected alerts %v", f.dialogs.alerts)
	}
	if f.model.Closed() {
		t.Fatal("selection with two points must not close")
	}
	f.p.Click(200, 400)
	f.p.Confirm()
	if !f.model.Closed() {
		t.Fatal("confirm with three points should crop")
	}
}

func TestCropPresenter_RotateWrapsAndResets(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.p.RotateRight()
	if f.model.Angle() != 0 {
		t.Fatal("rotation without a crop should be ignored")
	}
	f.selectQuad()
	f.p.DoubleClick()
	f.p.RotateLeft()
	if f.model.Angle() != 270 || f.view.angle != 270 {
		t.Fatalf("rotate left from 0: model=%d view=%d", f.model.Angle(), f.view.angle)
	}
	f.p.RotateRight()
	f.p.RotateRight()
	if f.model.Angle() != 90 {
		t.Fatalf("angle=%d want 90", f.model.Angle())
	}
	previews := f.view.previews
	f.p.SetAngle(90)
	if f.view.previews != previews {
		t.Fatal("unchanged slider value should not re-render")
	}
	f.p.SetAngle(45)
	if f.model.Angle() != 45 || f.view.previews != previews+1 {
		t.Fatalf("slider not applied: angle=%d", f.model.Angle())
	}
	f.p.Reset()
	if f.model.Closed() || f.model.PointCount() != 0 || f.model.Angle() != 0 || !f.model.HasImage() {
		t.Fatal("reset should clear the selection and keep the image")
	}
	if f.view.instructions != CropInstructions || f.view.angle != 0 {
		t.Fatal("reset should redraw instructions and zero the slider")
	}
}

func TestCropPresenter_DownloadWithoutSelectionAlerts(t *testing.T) {
	f := newCropFixture(t)
	if path, err := f.p.Download(); path != "" || err != nil {
		t.Fatalf("unexpected export %q %v", path, err)
	}
	if len(f.dialogs.alerts) != 1 {
		t.Fatalf("expected an alert, got %v", f.dialogs.alerts)
	}
}

func TestCropPresenter_EndToEndExport(t *testing.T) {
	f := newCropFixture(t)
	f.dialogs.savePath = filepath.Join(f.cfg.ExportDir, imageio.CropFileName)
	f.load(solid(400, 300, color.NRGBA{R: 10, G: 120, B: 200, A: 255}))
	f.selectQuad()
	f.p.DoubleClick()

	path, err := f.p.Download()
	if err != nil || path != f.dialogs.savePath {
		t.Fatalf("download: path=%q err=%v", path, err)
	}
	if f.dialogs.saveName != imageio.CropFileName {
		t.Fatalf("save dialog name %q", f.dialogs.saveName)
	}
	out, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 600 || b.Dy() != 400 {
		t.Fatalf("exported %v, want the 600x400 bounding box", b)
	}
}

func TestCropPresenter_DoubleClickDimsOutsideSelection(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{R: 10, G: 120, B: 200, A: 255}))
	f.selectQuad()
	f.p.DoubleClick()

	if f.view.masks == 0 || f.view.lastOverlay == nil {
		t.Fatalf("expected the completed selection to be drawn")
	}
	if b := f.view.lastOverlay.Bounds(); b.Dx() != f.cfg.CanvasSize || b.Dy() != f.cfg.CanvasSize {
		t.Fatalf("overlay bounds %v", b)
	}
	_, _, _, a := f.view.lastOverlay.At(0, 0).RGBA()
	if uint8(a>>8) != crop.OverlayColor.A {
		t.Fatalf("corner alpha=%d want %d", a>>8, crop.OverlayColor.A)
	}
	if _, _, _, a := f.view.lastOverlay.At(400, 400).RGBA(); a != 0 {
		t.Fatalf("selection interior alpha=%d want 0", a>>8)
	}
}

func TestCropPresenter_CanvasSizeOverride(t *testing.T) {
	f := newCropFixture(t)
	f.p.SetCanvasSize(512)
	f.load(solid(400, 300, color.NRGBA{R: 200, A: 255}))
	if b := f.model.Canvas().Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("canvas %v want 512x512", b)
	}
	for _, pt := range []image.Point{{50, 100}, {350, 100}, {350, 300}} {
		f.p.Click(pt.X, pt.Y)
	}
	f.p.DoubleClick()
	if b := f.view.lastOverlay.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("overlay %v want 512x512", b)
	}
}

func TestCropPresenter_ExportRotated90(t *testing.T) {
	f := newCropFixture(t)
	f.cfg.AskSavePath = false
	f.load(solid(400, 300, color.NRGBA{R: 255, A: 255}))
	f.selectQuad()
	f.p.DoubleClick()
	f.p.RotateRight()
	path, err := f.p.Download()
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Dir(path) != f.cfg.ExportDir {
		t.Fatalf("export should go to the export dir, got %q", path)
	}
	out, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 400 || b.Dy() != 600 {
		t.Fatalf("exported %v, want 400x600", b)
	}
}

func TestCropPresenter_SaveCancelledWritesNothing(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.selectQuad()
	f.p.DoubleClick()
	path, err := f.p.Download()
	if path != "" || err != nil {
		t.Fatalf("cancelled save returned %q %v", path, err)
	}
	entries, _ := os.ReadDir(f.cfg.ExportDir)
	if len(entries) != 0 || len(f.dialogs.alerts) != 0 {
		t.Fatalf("cancel should be silent: entries=%d alerts=%v", len(entries), f.dialogs.alerts)
	}
}

func TestCropPresenter_InvalidFileAlertsAndKeepsState(t *testing.T) {
	f := newCropFixture(t)
	f.load(solid(400, 300, color.NRGBA{A: 255}))
	f.selectQuad()
	f.p.Load(imageio.BytesSource{Data: []byte("not an image at all"), Name: "notes.txt"})
	f.p.Tick()
	if len(f.dialogs.alerts) != 1 || !strings.Contains(f.dialogs.alerts[0], "image file") {
		t.Fatalf("expected invalid file alert, got %v", f.dialogs.alerts)
	}
	if f.model.PointCount() != len(quad) {
		t.Fatal("failed load must not touch the current session")
	}
}

type gatedSource struct {
	gate chan struct{}
	name string
	img  image.Image
}

func (s gatedSource) Open(ctx context.Context) (*imageio.Decoded, error) {
	<-s.gate
	return &imageio.Decoded{Image: s.img, MediaType: "image/png", Name: s.name}, nil
}

func TestCropPresenter_LastLoadWins(t *testing.T) {
	cfg := config.DefaultConfig()
	ld := loader.New("crop", nil)
	m := model.NewCropSession()
	view := &mockCropView{}
	p := NewCropPresenter(context.Background(), m, view, &mockDialogs{}, ld, nil, cfg, nil)

	first := gatedSource{gate: make(chan struct{}), name: "first.png", img: solid(10, 10, color.NRGBA{A: 255})}
	second := gatedSource{gate: make(chan struct{}), name: "second.png", img: solid(20, 10, color.NRGBA{A: 255})}
	p.Load(first)
	p.Load(second)
	close(second.gate)

	deadline := time.Now().Add(2 * time.Second)
	for !m.HasImage() && time.Now().Before(deadline) {
		p.Tick()
		time.Sleep(5 * time.Millisecond)
	}
	if got := m.Source(); got == nil || got.Name != "second.png" {
		t.Fatalf("expected second load applied, got %+v", got)
	}
	close(first.gate)
	ld.Close()
	p.Tick()
	if m.Source().Name != "second.png" {
		t.Fatalf("stale load replaced the image: %s", m.Source().Name)
	}
}

func TestCropPresenter_ResetInvalidatesPendingLoad(t *testing.T) {
	ld := loader.New("crop", nil)
	m := model.NewCropSession()
	p := NewCropPresenter(context.Background(), m, &mockCropView{}, &mockDialogs{}, ld, nil, nil, nil)
	src := gatedSource{gate: make(chan struct{}), name: "late.png", img: solid(4, 4, color.NRGBA{A: 255})}
	p.Load(src)
	p.Reset()
	close(src.gate)
	ld.Close()
	p.Tick()
	if m.HasImage() {
		t.Fatal("load finishing after reset must not be applied")
	}
}
