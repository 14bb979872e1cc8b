package model

import (
	"image"

	"github.com/soocke/pixel-crop-go/domain/crop"
	"github.com/soocke/pixel-crop-go/domain/geom"
	"github.com/soocke/pixel-crop-go/domain/imageio"
	"github.com/soocke/pixel-crop-go/domain/rotate"
)

// CropSession holds the state of one crop tool instance: the loaded image,
// the canvas it is shown on, the selection path, the cropped result and the
// preview angle. The zero value is usable and empty. Not synchronized: all
// access happens on the UI thread.
type CropSession struct {
	source    *imageio.Decoded
	canvas    *image.NRGBA
	placement crop.Placement

	points  geom.Polygon
	closed  bool
	cropped *image.NRGBA
	angle   int
}

func NewCropSession() *CropSession { return &CropSession{} }

// SetImage replaces the loaded image and clears everything derived from the
// previous one.
func (s *CropSession) SetImage(src *imageio.Decoded, canvas *image.NRGBA, p crop.Placement) {
	if s == nil {
		return
	}
	s.source = src
	s.canvas = canvas
	s.placement = p
	s.ResetSelection()
}

// ResetSelection drops the path, the cropped bitmap and the angle but keeps
// the image.
func (s *CropSession) ResetSelection() {
	if s == nil {
		return
	}
	s.points = nil
	s.closed = false
	s.cropped = nil
	s.angle = 0
}

// Clear forgets the image as well.
func (s *CropSession) Clear() {
	if s == nil {
		return
	}
	s.source = nil
	s.canvas = nil
	s.placement = crop.Placement{}
	s.ResetSelection()
}

func (s *CropSession) HasImage() bool { return s != nil && s.canvas != nil }

// Source returns the decoded image (may be nil).
func (s *CropSession) Source() *imageio.Decoded {
	if s == nil {
		return nil
	}
	return s.source
}

// Canvas returns the fitted source canvas (may be nil).
func (s *CropSession) Canvas() *image.NRGBA {
	if s == nil {
		return nil
	}
	return s.canvas
}

func (s *CropSession) Placement() crop.Placement {
	if s == nil {
		return crop.Placement{}
	}
	return s.placement
}

// Points returns a copy of the selection path.
func (s *CropSession) Points() geom.Polygon {
	if s == nil || len(s.points) == 0 {
		return nil
	}
	out := make(geom.Polygon, len(s.points))
	copy(out, s.points)
	return out
}

func (s *CropSession) PointCount() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// AddPoint appends to the path. Ignored once the polygon is closed.
func (s *CropSession) AddPoint(pt image.Point) bool {
	if s == nil || s.closed {
		return false
	}
	s.points = append(s.points, pt)
	return true
}

// Close marks the polygon complete and stores its cropped bitmap. The angle
// restarts at 0 for every new crop.
func (s *CropSession) Close(cropped *image.NRGBA) {
	if s == nil {
		return
	}
	s.closed = true
	s.cropped = cropped
	s.angle = 0
}

func (s *CropSession) Closed() bool { return s != nil && s.closed }

// Cropped returns the cropped bitmap (nil before a crop).
func (s *CropSession) Cropped() *image.NRGBA {
	if s == nil {
		return nil
	}
	return s.cropped
}

func (s *CropSession) Angle() int {
	if s == nil {
		return 0
	}
	return s.angle
}

// Rotate adds delta degrees and returns the normalized angle.
func (s *CropSession) Rotate(delta int) int {
	if s == nil {
		return 0
	}
	s.angle = rotate.Normalize(s.angle + delta)
	return s.angle
}

// SetAngle stores deg normalized to [0,360).
func (s *CropSession) SetAngle(deg int) int {
	if s == nil {
		return 0
	}
	s.angle = rotate.Normalize(deg)
	return s.angle
}
