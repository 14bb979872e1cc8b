package rotate

import (
	"image"

	"github.com/disintegration/imaging"
)

// OpaqueBounds returns the tightest rectangle containing every pixel whose
// alpha is above zero. ok is false when the image is fully transparent.
func OpaqueBounds(img image.Image) (r image.Rectangle, ok bool) {
	if img == nil {
		return image.Rectangle{}, false
	}
	b := img.Bounds()
	left, top := b.Max.X, b.Max.Y
	right, bottom := b.Min.X-1, b.Min.Y-1
	scan := func(x, y int, opaque bool) {
		if !opaque {
			return
		}
		if x < left {
			left = x
		}
		if x > right {
			right = x
		}
		if y < top {
			top = y
		}
		if y > bottom {
			bottom = y
		}
	}
	switch src := img.(type) {
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := b.Min.X; x < b.Max.X; x++ {
				scan(x, y, row[(x-b.Min.X)*4+3] != 0)
			}
		}
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, y):]
			for x := b.Min.X; x < b.Max.X; x++ {
				scan(x, y, row[(x-b.Min.X)*4+3] != 0)
			}
		}
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				_, _, _, a := img.At(x, y).RGBA()
				scan(x, y, a != 0)
			}
		}
	}
	if right < left || bottom < top {
		return image.Rectangle{}, false
	}
	return image.Rect(left, top, right+1, bottom+1), true
}

// Trim removes fully transparent rows and columns from the borders of img.
// A fully transparent image is returned unchanged rather than collapsed to
// zero size.
func Trim(img image.Image) image.Image {
	r, ok := OpaqueBounds(img)
	if !ok {
		return img
	}
	if r == img.Bounds() {
		return img
	}
	return imaging.Crop(img, r)
}
