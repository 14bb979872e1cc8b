// Package crop renders the free-form selection: it places the loaded image on
// the fixed-size source canvas, rasterizes polygon masks and cuts the
// polygon interior out of the canvas.
package crop

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"github.com/soocke/pixel-crop-go/domain/geom"
)

var (
	// ErrTooFewPoints is returned when a selection has fewer than three vertices.
	ErrTooFewPoints = errors.New("crop: at least three points are required")
	// ErrDegenerate is returned when the selection bounding box has no area.
	ErrDegenerate = errors.New("crop: selection has an empty bounding box")
)

// CanvasBackground is the fill behind the image on the source canvas.
var CanvasBackground = color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// Placement describes where Fit drew the image on the canvas.
type Placement struct {
	Rect  image.Rectangle // image area in canvas coordinates
	Scale float64         // canvas pixels per source pixel
}

// Fit draws img scaled to fit a size x size canvas, centered on bg. The image
// is scaled up as well as down so the longer side always spans the canvas.
func Fit(img image.Image, size int, bg color.Color) (*image.NRGBA, Placement) {
	canvas := imaging.New(size, size, bg)
	if img == nil || size <= 0 {
		return canvas, Placement{}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return canvas, Placement{}
	}
	scale := math.Min(float64(size)/float64(b.Dx()), float64(size)/float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*scale)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*scale)))
	var resized image.Image = img
	if w != b.Dx() || h != b.Dy() {
		resized = imaging.Resize(img, w, h, imaging.Lanczos)
	}
	off := image.Pt((size-w)/2, (size-h)/2)
	canvas = imaging.Paste(canvas, resized, off)
	return canvas, Placement{Rect: image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, Scale: scale}
}

// Mask rasterizes the interior of poly into a w x h alpha mask. Vertices are
// taken in mask coordinates; edge pixels carry partial coverage.
func Mask(poly geom.Polygon, w, h int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if len(poly) < geom.MinPolygonPoints || w <= 0 || h <= 0 {
		return mask
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, pt := range poly[1:] {
		z.LineTo(float32(pt.X), float32(pt.Y))
	}
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// Polygon copies the part of src enclosed by poly into a new image the size
// of the polygon bounding box. Pixels outside the polygon stay transparent.
// poly is given in src coordinates.
func Polygon(src image.Image, poly geom.Polygon) (*image.NRGBA, error) {
	if len(poly) < geom.MinPolygonPoints {
		return nil, ErrTooFewPoints
	}
	box := poly.Bounds()
	if box.Empty() {
		return nil, ErrDegenerate
	}
	mask := Mask(poly.Translate(box.Min), box.Dx(), box.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	if src != nil {
		draw.DrawMask(dst, dst.Bounds(), src, box.Min, mask, image.Point{}, draw.Over)
	}
	return dst, nil
}

// OverlayColor dims everything outside a completed selection.
var OverlayColor = color.RGBA{A: 0x80}

// Overlay returns a w x h layer filled with OverlayColor except inside poly,
// which is cut out so the selected area shows through undimmed. Partial mask
// coverage on the edges leaves a proportionally lighter dim.
func Overlay(poly geom.Polygon, w, h int) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(layer, layer.Bounds(), image.NewUniform(OverlayColor), image.Point{}, draw.Src)
	if len(poly) < geom.MinPolygonPoints {
		return layer
	}
	mask := Mask(poly, w, h)
	// Keep dst * (1 - mask). OverlayColor is premultiplied black, so only
	// the alpha channel carries a value.
	for i, m := range mask.Pix {
		if m == 0 {
			continue
		}
		layer.Pix[i*4+3] = uint8(uint32(OverlayColor.A) * uint32(255-m) / 255)
	}
	return layer
}
