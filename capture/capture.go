// Package capture grabs the screen as an image source for the editing tools.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Grab returns a screen capture of the current active monitor.
func Grab() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}
