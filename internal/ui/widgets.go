package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"crackleaf/internal/app"
)

// Mascot sizing relative to the window width.
const (
	mascotScale   float32 = 0.5
	mascotMinSide float32 = 60
	mascotMaxSide float32 = 240
)

// MascotSide is the edge length of the square mascot for a window width.
func MascotSide(windowWidth float32) float32 {
	side := windowWidth * mascotScale
	if side < mascotMinSide {
		return mascotMinSide
	}
	if side > mascotMaxSide {
		return mascotMaxSide
	}
	return side
}

// Mascot is the clickable bird image. It tracks whether the pointer is over
// it so the frame loop can switch animations.
type Mascot struct {
	widget.BaseWidget
	image   *canvas.Image
	side    float32
	hovered bool
	OnTap   func()
}

var (
	_ fyne.Tappable     = (*Mascot)(nil)
	_ desktop.Hoverable = (*Mascot)(nil)
)

// NewMascot creates the mascot showing res.
func NewMascot(res fyne.Resource, side float32, onTap func()) *Mascot {
	img := canvas.NewImageFromResource(res)
	img.FillMode = canvas.ImageFillContain
	m := &Mascot{image: img, side: side, OnTap: onTap}
	m.ExtendBaseWidget(m)
	return m
}

// SetResource swaps the displayed frame.
func (m *Mascot) SetResource(res fyne.Resource) {
	if m.image.Resource == res {
		return
	}
	m.image.Resource = res
	m.image.Refresh()
}

// Resource returns the displayed frame.
func (m *Mascot) Resource() fyne.Resource {
	return m.image.Resource
}

// Hovered reports whether the pointer is over the mascot.
func (m *Mascot) Hovered() bool {
	return m.hovered
}

// Tapped is called when the mascot is clicked.
func (m *Mascot) Tapped(_ *fyne.PointEvent) {
	if m.OnTap != nil {
		m.OnTap()
	}
}

// MouseIn is called when the pointer enters the mascot.
func (m *Mascot) MouseIn(_ *desktop.MouseEvent) { m.hovered = true }

// MouseMoved is called when the pointer moves within the mascot.
func (m *Mascot) MouseMoved(_ *desktop.MouseEvent) { m.hovered = true }

// MouseOut is called when the pointer leaves the mascot.
func (m *Mascot) MouseOut() { m.hovered = false }

// Cursor shows a pointer over the mascot.
func (m *Mascot) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// MinSize returns the mascot's square size.
func (m *Mascot) MinSize() fyne.Size {
	return fyne.NewSize(m.side, m.side)
}

// CreateRenderer creates the renderer for the widget.
func (m *Mascot) CreateRenderer() fyne.WidgetRenderer {
	return &mascotRenderer{mascot: m}
}

type mascotRenderer struct {
	mascot *Mascot
}

func (r *mascotRenderer) Layout(size fyne.Size) {
	r.mascot.image.Move(fyne.NewPos(0, 0))
	r.mascot.image.Resize(size)
}

func (r *mascotRenderer) MinSize() fyne.Size {
	return r.mascot.MinSize()
}

func (r *mascotRenderer) Refresh() {
	canvas.Refresh(r.mascot.image)
}

func (r *mascotRenderer) Destroy() {}

func (r *mascotRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.mascot.image}
}

// NameLabel is a label that reacts to double clicks.
type NameLabel struct {
	widget.Label
	OnDoubleTap func()
}

var _ fyne.DoubleTappable = (*NameLabel)(nil)

// NewNameLabel creates a truncating file name label.
func NewNameLabel(text string, onDoubleTap func()) *NameLabel {
	l := &NameLabel{OnDoubleTap: onDoubleTap}
	l.Text = text
	l.Truncation = fyne.TextTruncateEllipsis
	l.ExtendBaseWidget(l)
	return l
}

// DoubleTapped opens the file behind the row.
func (l *NameLabel) DoubleTapped(_ *fyne.PointEvent) {
	if l.OnDoubleTap != nil {
		l.OnDoubleTap()
	}
}

// OpenButtonText is the label of the per-row open button.
const OpenButtonText = "开"

// FileList shows one row per imported file: lock icon, name, status and an
// open button once an unlocked copy exists.
type FileList struct {
	Box       *fyne.Container
	onOpen    func(i int)
	signature []app.Entry
}

// NewFileList creates an empty list. onOpen receives the row index.
func NewFileList(onOpen func(i int)) *FileList {
	return &FileList{Box: container.NewVBox(), onOpen: onOpen}
}

// Update rebuilds the rows when the entries differ from the last call.
// It reports whether a rebuild happened.
func (l *FileList) Update(entries []app.Entry) bool {
	if sameEntries(l.signature, entries) {
		return false
	}
	l.signature = append(l.signature[:0], entries...)

	rows := make([]fyne.CanvasObject, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, l.row(i, e))
	}
	l.Box.Objects = rows
	l.Box.Refresh()
	return true
}

// Rows returns the number of rows shown.
func (l *FileList) Rows() int {
	return len(l.Box.Objects)
}

func (l *FileList) row(i int, e app.Entry) fyne.CanvasObject {
	open := func() {
		if l.onOpen != nil {
			l.onOpen(i)
		}
	}
	icon := widget.NewLabel(e.Icon)
	name := NewNameLabel(e.Name(), open)
	status := widget.NewLabel(e.Status)

	right := []fyne.CanvasObject{status}
	if e.CanOpen() {
		btn := widget.NewButton(OpenButtonText, open)
		btn.Importance = widget.LowImportance
		right = append(right, btn)
	}
	return container.NewBorder(nil, nil, icon,
		container.New(layout.NewHBoxLayout(), right...), name)
}

func sameEntries(a, b []app.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
