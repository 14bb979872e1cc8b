package app

import (
	"context"
	"log/slog"

	"github.com/soocke/pixel-crop-go/capture"
	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/domain/loader"
	"github.com/soocke/pixel-crop-go/ui/model"
	"github.com/soocke/pixel-crop-go/ui/presenter"
	"github.com/soocke/pixel-crop-go/ui/theme"
	"github.com/soocke/pixel-crop-go/ui/view"
)

// AppContainer assembles models, loaders, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	CfgPath    string
	Logger     *slog.Logger
	CanvasSize int

	CropSession   *model.CropSession
	RotateSession *model.RotateSession
	CropLoader    *loader.Loader
	RotateLoader  *loader.Loader
	RootView      *view.RootView
	Dialogs       presenter.Dialogs

	// Presenters
	CropPresenter   *presenter.CropPresenter
	RotatePresenter *presenter.RotatePresenter
	Loop            *presenter.Loop
}

// BuildContainer constructs all non-Tk components. Widgets are created
// later by BuildUI. canvasSize is the crop canvas side fitted to the screen.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string, canvasSize int) *AppContainer {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger, CanvasSize: canvasSize}
	c.CropSession = model.NewCropSession()
	c.RotateSession = model.NewRotateSession()
	c.CropLoader = loader.New("crop", logger)
	c.RotateLoader = loader.New("rotate", logger)
	c.RootView = view.NewRootView(cfg, cfgPath, logger, canvasSize)
	c.Dialogs = view.Dialogs{}
	return c
}

// BuildUI creates the widgets and binds presenters to them. Must run on the
// Tk thread.
func (c *AppContainer) BuildUI(ctx context.Context, schedule func()) {
	c.RootView.Build(view.CropHandlers{
		Open:        func() { c.CropPresenter.Open() },
		Capture:     func() { c.CropPresenter.CaptureScreen() },
		Click:       func(x, y int) { c.CropPresenter.Click(x, y) },
		Move:        func(x, y int) { c.CropPresenter.Move(x, y) },
		DoubleClick: func() { c.CropPresenter.DoubleClick() },
		Confirm:     func() { c.CropPresenter.Confirm() },
		RotateLeft:  func() { c.CropPresenter.RotateLeft() },
		RotateRight: func() { c.CropPresenter.RotateRight() },
		SetAngle:    func(deg int) { c.CropPresenter.SetAngle(deg) },
		Reset:       func() { c.CropPresenter.Reset() },
		Download:    func() { _, _ = c.CropPresenter.Download() },
	}, view.RotateHandlers{
		Open:     func() { c.RotatePresenter.Open() },
		Capture:  func() { c.RotatePresenter.CaptureScreen() },
		SetAngle: func(deg int) { c.RotatePresenter.SetAngle(deg) },
		Reset:    func() { c.RotatePresenter.Reset() },
		Download: func() { _, _ = c.RotatePresenter.Download() },
	}, func(cfg *config.Config) {
		theme.SetDark(cfg.DarkMode)
	})

	c.CropPresenter = presenter.NewCropPresenter(ctx, c.CropSession, c.RootView.Crop, c.Dialogs, c.CropLoader, capture.Grab, c.Config, c.Logger)
	c.CropPresenter.SetCanvasSize(c.CanvasSize)
	c.RotatePresenter = presenter.NewRotatePresenter(ctx, c.RotateSession, c.RootView.Rotate, c.Dialogs, c.RotateLoader, capture.Grab, c.Config, c.Logger)
	c.Loop = presenter.NewLoop(c.CropPresenter, c.RotatePresenter, schedule)
}

// Close stops background loads, waits for them and drops the loaded images.
func (c *AppContainer) Close() {
	c.CropLoader.Close()
	c.RotateLoader.Close()
	c.CropSession.Clear()
	c.RotateSession.Clear()
}
