// Package layout computes the main window size from the configured canvas
// and preview sizes, shrinking the crop canvas when the screen is too small
// to show it next to the preview column.
package layout

import (
	"fmt"
	"math"
)

const (
	// MinCanvas is the smallest crop canvas the window will shrink to.
	MinCanvas = 64

	sliderWidth  = 220 // rotate slider length in the preview column
	columnPad    = 40  // preview box padding and the gap to the canvas
	chromeWidth  = 40  // notebook borders and tab padding
	chromeHeight = 150 // tabs, toolbar and status line
	controlsH    = 180 // rotate buttons, angle row, slider and Download
	screenMargin = 80  // taskbar and window decorations
)

// Window is the computed geometry for the main window.
type Window struct {
	Canvas int // side of the crop canvas in pixels
	Width  int
	Height int
}

// Geometry formats w for WmGeometry, placing the window at (x, y).
func (w Window) Geometry(x, y int) string {
	return fmt.Sprintf("%dx%d+%d+%d", w.Width, w.Height, x, y)
}

// PreviewColumn returns the width taken by the crop preview column. A preview
// rotates inside a square of side ceil(previewMax*sqrt2).
func PreviewColumn(previewMax int) int {
	side := int(math.Ceil(float64(previewMax) * math.Sqrt2))
	return max(side, sliderWidth) + columnPad
}

// Compute sizes the window for a canvas of the given side. When screenW or
// screenH is positive the canvas is shrunk so the whole window fits the
// screen, never below MinCanvas. Unknown screen sizes are passed as 0.
func Compute(canvas, previewMax, screenW, screenH int) Window {
	col := PreviewColumn(previewMax)
	previewH := int(math.Ceil(float64(previewMax)*math.Sqrt2)) + controlsH
	if screenW > 0 {
		canvas = min(canvas, screenW-screenMargin-col-chromeWidth)
	}
	if screenH > 0 {
		canvas = min(canvas, screenH-screenMargin-chromeHeight)
	}
	canvas = max(canvas, MinCanvas)
	return Window{
		Canvas: canvas,
		Width:  canvas + col + chromeWidth,
		Height: max(canvas, previewH) + chromeHeight,
	}
}
