package view

import (
	"fmt"
	"image"
	"strconv"

	"github.com/soocke/pixel-crop-go/domain/geom"
	"github.com/soocke/pixel-crop-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Canvas item tags.
const (
	tagSource = "source"
	tagSel    = "sel"
)

// CropHandlers are the user actions of the crop tab.
type CropHandlers struct {
	Open        func()
	Capture     func()
	Click       func(x, y int)
	Move        func(x, y int)
	DoubleClick func()
	Confirm     func()
	RotateLeft  func()
	RotateRight func()
	SetAngle    func(deg int)
	Reset       func()
	Download    func()
}

// CropTab is the crop & rotate notebook page. It implements presenter.CropView.
type CropTab struct {
	size         int
	markerRadius int
	frame        *TFrameWidget
	canvas       *CanvasWidget

	sourcePhoto  photoSlot
	maskPhoto    photoSlot
	previewPhoto photoSlot

	previewBox   *TFrameWidget
	previewLabel *TLabelWidget
	slider       *TScaleWidget
	angleLabel   *TLabelWidget
	status       *TLabelWidget
}

// NewCropTab builds the page inside nb. size is the square canvas side;
// markerRadius sizes the highlight drawn when the path can be closed.
func NewCropTab(nb *TNotebookWidget, size, markerRadius int, h CropHandlers) *CropTab {
	v := &CropTab{size: size, markerRadius: markerRadius}
	v.frame = nb.TFrame(Padding("4p"))
	nb.Add(v.frame, Txt("Crop & Rotate"))

	toolbar := v.frame.TFrame()
	Grid(toolbar, Row(0), Column(0), Columnspan(2), Sticky("we"), Pady("0.3m"))
	Grid(toolbar.TButton(Txt("Open Image…"), Style(theme.StylePrimaryButton), Command(h.Open)), Row(0), Column(0), Padx("0.2m"))
	Grid(toolbar.TButton(Txt("Capture Screen"), Command(h.Capture)), Row(0), Column(1), Padx("0.2m"))
	Grid(toolbar.TButton(Txt("Confirm Selection"), Style(theme.StyleWarningButton), Command(h.Confirm)), Row(0), Column(2), Padx("0.2m"))
	Grid(toolbar.TButton(Txt("Reset"), Style(theme.StyleDangerButton), Command(h.Reset)), Row(0), Column(3), Padx("0.2m"))

	v.canvas = v.frame.Canvas(Width(size), Height(size), Background(theme.ColorCanvasBg), Highlightthickness(0), Cursor("crosshair"))
	Grid(v.canvas, Row(1), Column(0), Sticky("nw"))
	Bind(v.canvas, "<Button-1>", Command(func(e *Event) { h.Click(e.X, e.Y) }))
	Bind(v.canvas, "<Motion>", Command(func(e *Event) { h.Move(e.X, e.Y) }))
	Bind(v.canvas, "<Double-Button-1>", Command(h.DoubleClick))

	v.previewBox = v.frame.TFrame(Padding("4p"))
	Grid(v.previewBox, Row(1), Column(1), Sticky("n"), Padx("1m"))
	v.previewLabel = v.previewBox.TLabel(Image(v.previewPhoto.replacePNG(blank(1, 1))), Relief("sunken"))
	Grid(v.previewLabel, Row(0), Column(0), Columnspan(2), Pady("0.5m"))
	Grid(v.previewBox.TButton(Txt("⟲ Rotate Left"), Command(h.RotateLeft)), Row(1), Column(0), Sticky("we"), Padx("0.2m"))
	Grid(v.previewBox.TButton(Txt("Rotate Right ⟳"), Command(h.RotateRight)), Row(1), Column(1), Sticky("we"), Padx("0.2m"))
	Grid(v.previewBox.TLabel(Txt("Rotation:")), Row(2), Column(0), Sticky("w"), Pady("0.3m"))
	v.angleLabel = v.previewBox.TLabel(Txt("0°"), Style(theme.StyleAngleLabel), Width(5))
	Grid(v.angleLabel, Row(2), Column(1), Sticky("e"))
	v.slider = v.previewBox.TScale(From(0), To(359), Orient("horizontal"), Length(220))
	v.slider.Configure(Command(func() {
		deg := sliderValue(v.slider)
		v.angleLabel.Configure(Txt(fmt.Sprintf("%d°", deg)))
		h.SetAngle(deg)
	}))
	Grid(v.slider, Row(3), Column(0), Columnspan(2), Sticky("we"))
	Grid(v.previewBox.TButton(Txt("Download"), Style(theme.StylePrimaryButton), Command(h.Download)), Row(4), Column(0), Columnspan(2), Sticky("we"), Pady("0.5m"))
	GridRemove(v.previewBox.Window)

	v.status = v.frame.TLabel(Txt("Open an image to start."), Style(theme.StyleStatusLabel))
	Grid(v.status, Row(2), Column(0), Columnspan(2), Sticky("we"))
	return v
}

// Frame is the notebook page, used to select the tab.
func (v *CropTab) Frame() *Window { return v.frame.Window }

func (v *CropTab) ShowSource(canvas image.Image) {
	v.canvas.Delete(tagSource)
	v.canvas.CreateImage(0, 0, Image(v.sourcePhoto.replace(canvas)), Anchor("nw"), Tags(tagSource))
}

func (v *CropTab) DrawPath(points geom.Polygon, cursor *image.Point, closeable bool) {
	v.canvas.Delete(tagSel)
	v.maskPhoto.clear()
	if len(points) == 0 {
		return
	}
	if len(points) > 1 {
		v.line(points, false)
	}
	if cursor != nil {
		last, _ := points.Last()
		v.canvas.CreateLine(last.X, last.Y, cursor.X, cursor.Y, Fill(theme.ColorSelection), Width(theme.SelectionWidth), Tags(tagSel))
	}
	v.vertices(points)
	if closeable {
		first, _ := points.First()
		r := v.markerRadius
		v.canvas.CreateOval(first.X-r, first.Y-r, first.X+r, first.Y+r,
			Fill(theme.ColorSelection), Stipple(theme.CloseableStipple),
			Outline(theme.ColorSelection), Width(theme.SelectionWidth), Tags(tagSel))
	}
}

func (v *CropTab) DrawMask(points geom.Polygon, overlay image.Image) {
	v.canvas.Delete(tagSel)
	if overlay != nil {
		v.canvas.CreateImage(0, 0, Image(v.maskPhoto.replace(overlay)), Anchor("nw"), Tags(tagSel))
	}
	v.line(points, true)
	v.vertices(points)
}

func (v *CropTab) ShowInstructions(text string) {
	v.canvas.CreateText(20, 30, Txt(text), Anchor("w"), Font("Helvetica", 12), Fill("black"), Tags(tagSel))
}

func (v *CropTab) ShowPreview(pngData []byte) {
	v.previewLabel.Configure(Image(v.previewPhoto.replacePNG(pngData)))
	Grid(v.previewBox, Row(1), Column(1), Sticky("n"), Padx("1m"))
}

func (v *CropTab) HidePreview() {
	GridRemove(v.previewBox.Window)
}

func (v *CropTab) SetAngle(deg int) {
	v.slider.Configure(Value(deg))
	v.angleLabel.Configure(Txt(fmt.Sprintf("%d°", deg)))
}

func (v *CropTab) SetStatus(text string) { v.status.Configure(Txt(text)) }

func (v *CropTab) line(points geom.Polygon, closed bool) {
	if len(points) < 2 {
		return
	}
	coords := make([]any, 0, 2*len(points)+8)
	for _, pt := range points[1:] {
		coords = append(coords, pt.X, pt.Y)
	}
	if closed {
		coords = append(coords, points[0].X, points[0].Y)
	}
	coords = append(coords, Fill(theme.ColorSelection), Width(theme.SelectionWidth), Tags(tagSel))
	v.canvas.CreateLine(points[0].X, points[0].Y, coords...)
}

func (v *CropTab) vertices(points geom.Polygon) {
	r := theme.VertexRadius
	for _, pt := range points {
		v.canvas.CreateOval(pt.X-r, pt.Y-r, pt.X+r, pt.Y+r, Fill(theme.ColorSelection), Outline(""), Tags(tagSel))
	}
}

// sliderValue reads a ttk::scale as a whole number of degrees.
func sliderValue(s *TScaleWidget) int {
	f, err := strconv.ParseFloat(s.Get(), 64)
	if err != nil {
		return 0
	}
	return int(f + 0.5)
}
