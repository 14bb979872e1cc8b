package imageio

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output encoding chosen for an exported image.
type Format struct {
	MediaType string
	Ext       string
	codec     imaging.Format
}

var (
	PNG  = Format{MediaType: "image/png", Ext: "png", codec: imaging.PNG}
	JPEG = Format{MediaType: "image/jpeg", Ext: "jpg", codec: imaging.JPEG}
	GIF  = Format{MediaType: "image/gif", Ext: "gif", codec: imaging.GIF}
)

// FormatFromMediaType infers the output format from a media type or a data
// URL prefix such as "data:image/jpeg;base64,...". Anything unrecognised
// falls back to PNG, which keeps transparency.
func FormatFromMediaType(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "data:")
	switch {
	case strings.HasPrefix(s, "image/png"):
		return PNG
	case strings.HasPrefix(s, "image/jpeg"), strings.HasPrefix(s, "image/jpg"):
		return JPEG
	case strings.HasPrefix(s, "image/gif"):
		return GIF
	default:
		return PNG
	}
}

// CropFileName is the export name used by the crop tool.
const CropFileName = "cropped_image.png"

// RotatedFileName is the export name used by the free rotation tool.
func RotatedFileName(angle int, f Format) string {
	ext := f.Ext
	if ext == "" {
		ext = PNG.Ext
	}
	return fmt.Sprintf("rotated_image_%ddegrees.%s", angle, ext)
}
