package view

import (
	"log/slog"

	"github.com/soocke/pixel-crop-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Tool names accepted by SelectTool.
const (
	ToolCrop   = "crop"
	ToolRotate = "rotate"
)

// RootView composes the top-level notebook layout and wires UI callbacks.
// It owns the tool pages and exposes them for presenters.
type RootView struct {
	cfg        *config.Config
	cfgPath    string
	logger     *slog.Logger
	canvasSize int

	Notebook *TNotebookWidget
	Crop     *CropTab
	Rotate   *RotateTab
	Settings *ConfigPanel
}

// NewRootView prepares the root view. canvasSize is the crop canvas side
// actually shown, which may be smaller than the configured one.
func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger, canvasSize int) *RootView {
	if canvasSize <= 0 {
		canvasSize = cfg.CanvasSize
	}
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger, canvasSize: canvasSize}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(crop CropHandlers, rotate RotateHandlers, onApply func(*config.Config)) {
	if rv == nil {
		return
	}
	rv.Notebook = TNotebook()
	Grid(rv.Notebook, Row(0), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	GridRowConfigure(App, 0, Weight(1))
	GridColumnConfigure(App, 0, Weight(1))

	rv.Crop = NewCropTab(rv.Notebook, rv.canvasSize, rv.cfg.CloseMarkerRadius, crop)
	rv.Rotate = NewRotateTab(rv.Notebook, rv.cfg.PreviewMaxSize, rotate)
	rv.Settings = NewConfigPanel(rv.Notebook, rv.cfg, rv.cfgPath, rv.logger, onApply)
}

// SelectTool raises the page of the named tool. Unknown names are ignored.
func (rv *RootView) SelectTool(name string) {
	if rv == nil || rv.Notebook == nil {
		return
	}
	switch name {
	case ToolCrop:
		rv.Notebook.Select(rv.Crop.Frame())
	case ToolRotate:
		rv.Notebook.Select(rv.Rotate.Frame())
	default:
		if rv.logger != nil {
			rv.logger.Warn("unknown tool", "tool", name)
		}
	}
}
