package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// orbitView shows the traced image and turns drags and scrolls into orbit moves.
type orbitView struct {
	widget.BaseWidget

	img      *canvas.Image
	onDrag   func(dx, dy float32)
	onScroll func(wheel float32)
}

var (
	_ fyne.Draggable  = (*orbitView)(nil)
	_ fyne.Scrollable = (*orbitView)(nil)
)

func newOrbitView(img *canvas.Image, onDrag func(dx, dy float32), onScroll func(wheel float32)) *orbitView {
	v := &orbitView{img: img, onDrag: onDrag, onScroll: onScroll}
	v.ExtendBaseWidget(v)
	return v
}

func (v *orbitView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *orbitView) Dragged(ev *fyne.DragEvent) {
	v.onDrag(ev.Dragged.DX, ev.Dragged.DY)
}

func (v *orbitView) DragEnd() {}

// Scrolled reports one wheel notch per event; fyne's scroll deltas vary by platform.
func (v *orbitView) Scrolled(ev *fyne.ScrollEvent) {
	switch {
	case ev.Scrolled.DY > 0:
		v.onScroll(1)
	case ev.Scrolled.DY < 0:
		v.onScroll(-1)
	}
}
