package view

import (
	"image"

	"github.com/soocke/pixel-crop-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// photoSlot owns one Tk photo at a time. Replacing it deletes the previous
// photo so obsolete pixel buffers are not retained by Tk.
type photoSlot struct{ img *Img }

func (s *photoSlot) replacePNG(data []byte) *Img {
	if len(data) == 0 {
		return s.img
	}
	if s.img != nil {
		s.img.Delete()
	}
	s.img = NewPhoto(Data(data))
	return s.img
}

func (s *photoSlot) replace(img image.Image) *Img {
	return s.replacePNG(images.EncodePNG(img))
}

func (s *photoSlot) clear() {
	if s.img != nil {
		s.img.Delete()
		s.img = nil
	}
}

// blank returns a transparent placeholder photo of the given size.
func blank(w, h int) []byte {
	return images.EncodePNG(image.NewNRGBA(image.Rect(0, 0, w, h)))
}
