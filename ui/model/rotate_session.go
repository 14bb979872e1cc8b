package model

import (
	"image"

	"github.com/soocke/pixel-crop-go/domain/imageio"
)

// MaxSliderAngle is the upper end of the rotation slider.
const MaxSliderAngle = 359

// RotateSession holds the state of the free rotation tool. The zero value
// is usable and empty.
type RotateSession struct {
	source    *imageio.Decoded
	thumbnail image.Image
	angle     int
}

func NewRotateSession() *RotateSession { return &RotateSession{} }

// SetImage replaces the image and its preview thumbnail; the angle goes back
// to 0.
func (s *RotateSession) SetImage(src *imageio.Decoded, thumb image.Image) {
	if s == nil {
		return
	}
	s.source = src
	s.thumbnail = thumb
	s.angle = 0
}

func (s *RotateSession) Clear() {
	if s == nil {
		return
	}
	s.source = nil
	s.thumbnail = nil
	s.angle = 0
}

func (s *RotateSession) HasImage() bool {
	return s != nil && s.source != nil && s.source.Image != nil
}

func (s *RotateSession) Source() *imageio.Decoded {
	if s == nil {
		return nil
	}
	return s.source
}

// Thumbnail returns the downscaled preview image (may be nil).
func (s *RotateSession) Thumbnail() image.Image {
	if s == nil {
		return nil
	}
	return s.thumbnail
}

func (s *RotateSession) Angle() int {
	if s == nil {
		return 0
	}
	return s.angle
}

// SetAngle clamps deg to the slider range 0..359.
func (s *RotateSession) SetAngle(deg int) int {
	if s == nil {
		return 0
	}
	s.angle = max(0, min(MaxSliderAngle, deg))
	return s.angle
}

// Format is the export format inferred from the loaded media type.
func (s *RotateSession) Format() imageio.Format {
	if s == nil || s.source == nil {
		return imageio.PNG
	}
	return imageio.FormatFromMediaType(s.source.MediaType)
}
