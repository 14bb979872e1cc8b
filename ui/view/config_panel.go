package view

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pixel-crop-go/config"
	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the settings notebook page. It owns its widgets and writes
// back into *config.Config on ApplyChanges.
type ConfigPanel struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	frame   *TFrameWidget
	widgets map[string]*TextWidget // keyed by internal field id
	askSave *VariableOpt
	dark    *VariableOpt
	onApply func(*config.Config)
}

// NewConfigPanel builds the page inside nb. onApply runs after a successful
// apply; it may be nil.
func NewConfigPanel(nb *TNotebookWidget, cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config)) *ConfigPanel {
	v := &ConfigPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget), onApply: onApply}
	v.frame = nb.TFrame(Padding("6p"))
	nb.Add(v.frame, Txt("Settings"))
	v.build()
	return v
}

func (v *ConfigPanel) build() {
	c := v.cfg
	row := 0
	makeRow := func(id, label, value string) {
		Grid(v.frame.TLabel(Txt(label), Anchor("w")), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := v.frame.Text(Height(1), Width(40))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("exportDir", "Export Directory", c.ExportDir)
	makeRow("jpegQuality", "JPEG Quality (1-100)", strconv.Itoa(c.JPEGQuality))
	makeRow("previewMaxSize", "Preview Size Px", strconv.Itoa(c.PreviewMaxSize))
	makeRow("closeRadius", "Close Radius Px", strconv.Itoa(c.CloseRadius))
	makeRow("rotateStep", "Rotate Button Step (deg)", strconv.Itoa(c.RotateStep))

	v.askSave = Variable(boolInt(c.AskSavePath))
	Grid(v.frame.TCheckbutton(Txt("Ask where to save each export"), v.askSave), Row(row), Column(0), Columnspan(2), Sticky("w"), Pady("0.2m"))
	row++
	v.dark = Variable(boolInt(c.DarkMode))
	Grid(v.frame.TCheckbutton(Txt("Dark mode"), v.dark), Row(row), Column(0), Columnspan(2), Sticky("w"), Pady("0.2m"))
	row++

	apply := v.frame.TButton(Txt("Apply Changes"), Style(theme.StylePrimaryButton), Command(v.ApplyChanges))
	Grid(apply, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	GridColumnConfigure(v.frame, 1, Weight(1))
}

func (v *ConfigPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

// ApplyChanges parses widget text into the config and persists it.
// Unparseable fields keep their previous value.
func (v *ConfigPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	if s, ok := v.text("exportDir"); ok && s != "" {
		cfg.ExportDir = s
	}
	assignInt("jpegQuality", &cfg.JPEGQuality)
	assignInt("previewMaxSize", &cfg.PreviewMaxSize)
	assignInt("closeRadius", &cfg.CloseRadius)
	assignInt("rotateStep", &cfg.RotateStep)
	if b, ok := parseBoolLoose(v.askSave.Get()); ok {
		cfg.AskSavePath = b
	}
	if b, ok := parseBoolLoose(v.dark.Get()); ok {
		cfg.DarkMode = b
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parsing helpers (unexported)
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
