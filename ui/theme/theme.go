package theme

// Centralized theming and styling initialization for the crop and rotate tools.
// Provides palette constants and InitStyles to activate a base theme and
// configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, preview areas
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorWarning   = "#f39c12" // confirm selection
	ColorDanger    = "#dc2626"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
	ColorCanvasBg  = "#f0f0f0" // behind the image on the crop canvas

	// Selection drawing on the crop canvas.
	ColorSelection = "#3498db"
	SelectionWidth = 2
	VertexRadius   = 5
	// Tk canvas items have no alpha; closeable marker fill uses a stipple.
	CloseableStipple = "gray25"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Warning   string
	Danger    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Primary:   "#3b82f6",
			Warning:   "#f59e0b",
			Danger:    "#ef4444",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Warning:   ColorWarning,
		Danger:    ColorDanger,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleWarningButton = "warning.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleAngleLabel    = "angle.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func button(style, bg string) {
	StyleConfigure(style,
		Background(bg),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
}

// applyStyles encapsulates palette & style configuration for light/dark.
func applyStyles(dark bool) {
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))

	button(StylePrimaryButton, p.Primary)
	button(StyleWarningButton, p.Warning)
	button(StyleDangerButton, p.Danger)

	StyleConfigure(StyleAngleLabel,
		Foreground(p.Primary),
		Background(p.Surface),
		Padding("2p 1p"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.TextMuted),
		Padding("4p 2p"),
	)
}
