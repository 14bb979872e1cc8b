// Package rotate implements the two rotation strategies: rotation into a
// square canvas big enough for any angle (crop tool) and rotation into the
// exact rotated bounding box (free rotation tool), plus alpha trimming.
package rotate

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Normalize maps any angle in degrees into [0, 360).
func Normalize(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SquareSide returns the side of a square canvas that holds a w x h image at
// any rotation: the image diagonal rounded up.
func SquareSide(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return int(math.Ceil(math.Hypot(float64(w), float64(h))))
}

// FitSize returns the canvas size needed to hold a w x h image rotated by
// deg. Multiples of 90 are exact (dimensions swap at 90 and 270); other
// angles use the rotated bounding box rounded up.
func FitSize(w, h, deg int) (int, int) {
	deg = Normalize(deg)
	if deg%90 == 0 {
		if deg == 90 || deg == 270 {
			return h, w
		}
		return w, h
	}
	rad := float64(deg) * math.Pi / 180
	sin, cos := math.Abs(math.Sin(rad)), math.Abs(math.Cos(rad))
	fw := float64(w)*cos + float64(h)*sin
	fh := float64(w)*sin + float64(h)*cos
	return int(math.Ceil(fw - 1e-9)), int(math.Ceil(fh - 1e-9))
}

// rotated turns img clockwise by deg degrees (screen coordinates, y down)
// around its center. imaging rotates counter-clockwise, hence the negation.
func rotated(img image.Image, deg int) *image.NRGBA {
	return imaging.Rotate(img, float64(-Normalize(deg)), color.Transparent)
}

// Square draws img rotated clockwise by deg into the center of a transparent
// square canvas of side SquareSide, so no angle clips the image.
func Square(img image.Image, deg int) *image.NRGBA {
	if img == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	b := img.Bounds()
	side := SquareSide(b.Dx(), b.Dy())
	canvas := imaging.New(side, side, color.Transparent)
	if side == 0 {
		return canvas
	}
	return imaging.PasteCenter(canvas, rotated(img, deg))
}

// Fit draws img rotated clockwise by deg into a transparent canvas sized by
// FitSize.
func Fit(img image.Image, deg int) *image.NRGBA {
	if img == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	b := img.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), deg)
	canvas := imaging.New(w, h, color.Transparent)
	if w == 0 || h == 0 {
		return canvas
	}
	return imaging.PasteCenter(canvas, rotated(img, deg))
}

// ExportSquare renders img at full resolution and trims the transparent
// border left by the square canvas.
func ExportSquare(img image.Image, deg int) image.Image {
	return Trim(Square(img, deg))
}
