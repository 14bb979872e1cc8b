package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

var previewEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// EncodePNG encodes an image to PNG bytes for a Tk photo. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = previewEncoder.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src down so that it fits within maxW x maxH preserving
// aspect ratio. If the source already fits, the original is returned; images
// are never scaled up.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	return imaging.Fit(src, max(1, maxW), max(1, maxH), imaging.Lanczos)
}
