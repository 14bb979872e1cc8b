package app

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-crop-go/assets"
	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/debug"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/ui/layout"
	"github.com/soocke/pixel-crop-go/ui/theme"
	"github.com/soocke/pixel-crop-go/ui/view"
)

const (
	goroutineLogInterval = 5 * time.Second
	memLogInterval       = 10 * time.Second
)

// Options are start-up choices taken from the command line.
type Options struct {
	Tool  string // initially selected tab: "crop" or "rotate"
	Image string // path or data URL to preload
}

type app struct {
	config  *config.Config
	cfgPath string
	logger  *slog.Logger
	window  layout.Window
	tick    time.Duration
	afterID string

	container *AppContainer
	ctx       context.Context
	cancel    context.CancelFunc
	stopDebug chan struct{}
}

func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{config: cfg, cfgPath: cfgPath, logger: logger}
	a.tick = time.Duration(cfg.TickMS) * time.Millisecond
	a.ctx, a.cancel = context.WithCancel(context.Background())

	App.WmTitle(title)
	if _, err := assets.Icon(); err != nil {
		logger.Warn("window icon unavailable", "error", err)
	} else {
		App.IconPhoto(NewPhoto(Data(assets.IconPNG)))
	}
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	screenW, _ := strconv.Atoi(WinfoScreenWidth(App))
	screenH, _ := strconv.Atoi(WinfoScreenHeight(App))
	a.window = layout.Compute(cfg.CanvasSize, cfg.PreviewMaxSize, screenW, screenH)
	if a.window.Canvas < cfg.CanvasSize {
		logger.Info("crop canvas shrunk to fit the screen", "configured", cfg.CanvasSize, "canvas", a.window.Canvas, "screen_w", screenW, "screen_h", screenH)
	}
	WmGeometry(App, a.window.Geometry(20, 20))
	return a
}

func (a *app) Start(opts Options) {
	theme.SetDark(a.config.DarkMode)

	a.container = BuildContainer(a.config, a.logger, a.cfgPath, a.window.Canvas)
	a.container.BuildUI(a.ctx, a.scheduleUpdate)

	if a.config.Debug {
		a.stopDebug = make(chan struct{})
		debug.StartGoroutineLogger(goroutineLogInterval, a.logger, a.stopDebug)
		debug.StartMemLogger(memLogInterval, a.logger, a.stopDebug)
	}

	tool := opts.Tool
	if tool == "" {
		tool = view.ToolCrop
		if opts.Image != "" {
			tool = view.ToolRotate
		}
	}
	a.container.RootView.SelectTool(tool)
	if opts.Image != "" {
		src := imageio.SourceFor(opts.Image)
		if tool == view.ToolCrop {
			a.container.CropPresenter.Load(src)
		} else {
			a.container.RotatePresenter.Load(src)
		}
	}

	a.logger.Info("ui started", "tool", tool, "canvas_size", a.window.Canvas, "config", a.cfgPath)

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) update() {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("update tick panicked", "panic", r)
			a.scheduleUpdate()
		}
	}()
	// Loop.Tick re-schedules through the Schedule callback.
	a.container.Loop.Tick()
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.cancel()
	if a.container != nil {
		a.container.Close()
	}
	if a.stopDebug != nil {
		close(a.stopDebug)
		a.stopDebug = nil
	}
	if a.cfgPath != "" {
		if err := a.config.Save(a.cfgPath); err != nil {
			a.logger.Error("config save failed", "path", a.cfgPath, "error", err)
		}
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.tick, func() { a.update() })
}
