package view

import (
	"fmt"

	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RotateHandlers are the user actions of the free rotation tab.
type RotateHandlers struct {
	Open     func()
	Capture  func()
	SetAngle func(deg int)
	Reset    func()
	Download func()
}

// RotateTab is the free rotation notebook page. It implements presenter.RotateView.
type RotateTab struct {
	frame       *TFrameWidget
	preview     *TLabelWidget
	photo       photoSlot
	slider      *TScaleWidget
	angleLabel  *TLabelWidget
	downloadBtn *TButtonWidget
	status      *TLabelWidget
	previewSide int
}

// NewRotateTab builds the page inside nb. previewSize is the thumbnail
// bound; the preview area is sized for its diagonal.
func NewRotateTab(nb *TNotebookWidget, previewSize int, h RotateHandlers) *RotateTab {
	v := &RotateTab{previewSide: previewSize * 3 / 2}
	v.frame = nb.TFrame(Padding("4p"))
	nb.Add(v.frame, Txt("Free Rotate"))

	toolbar := v.frame.TFrame()
	Grid(toolbar, Row(0), Column(0), Sticky("we"), Pady("0.3m"))
	Grid(toolbar.TButton(Txt("Open Image…"), Style(theme.StylePrimaryButton), Command(h.Open)), Row(0), Column(0), Padx("0.2m"))
	Grid(toolbar.TButton(Txt("Capture Screen"), Command(h.Capture)), Row(0), Column(1), Padx("0.2m"))

	v.preview = v.frame.TLabel(Image(v.photo.replacePNG(blank(v.previewSide, v.previewSide))), Anchor("center"), Relief("sunken"))
	Grid(v.preview, Row(1), Column(0), Pady("0.5m"))

	controls := v.frame.TFrame()
	Grid(controls, Row(2), Column(0), Sticky("we"))
	Grid(controls.TLabel(Txt("Rotation:")), Row(0), Column(0), Sticky("w"))
	v.slider = controls.TScale(From(0), To(359), Orient("horizontal"), Length(360))
	v.slider.Configure(Command(func() {
		deg := sliderValue(v.slider)
		v.angleLabel.Configure(Txt(fmt.Sprintf("%d°", deg)))
		h.SetAngle(deg)
	}))
	Grid(v.slider, Row(0), Column(1), Sticky("we"), Padx("0.3m"))
	v.angleLabel = controls.TLabel(Txt("0°"), Style(theme.StyleAngleLabel), Width(5))
	Grid(v.angleLabel, Row(0), Column(2), Sticky("e"))
	GridColumnConfigure(controls, 1, Weight(1))

	buttons := v.frame.TFrame()
	Grid(buttons, Row(3), Column(0), Sticky("we"), Pady("0.3m"))
	Grid(buttons.TButton(Txt("Reset"), Style(theme.StyleDangerButton), Command(h.Reset)), Row(0), Column(0), Padx("0.2m"))
	v.downloadBtn = buttons.TButton(Txt("Download"), Style(theme.StylePrimaryButton), Command(h.Download), State("disabled"))
	Grid(v.downloadBtn, Row(0), Column(1), Padx("0.2m"))

	v.status = v.frame.TLabel(Txt("Open an image to start."), Style(theme.StyleStatusLabel))
	Grid(v.status, Row(4), Column(0), Sticky("we"))
	return v
}

func (v *RotateTab) Frame() *Window { return v.frame.Window }

func (v *RotateTab) ShowPreview(pngData []byte) {
	v.preview.Configure(Image(v.photo.replacePNG(pngData)))
}

func (v *RotateTab) ClearPreview() {
	v.preview.Configure(Image(v.photo.replacePNG(blank(v.previewSide, v.previewSide))))
}

func (v *RotateTab) SetAngle(deg int) {
	v.slider.Configure(Value(deg))
	v.angleLabel.Configure(Txt(fmt.Sprintf("%d°", deg)))
}

func (v *RotateTab) SetDownloadEnabled(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	v.downloadBtn.Configure(State(state))
}

func (v *RotateTab) SetStatus(text string) { v.status.Configure(Txt(text)) }
