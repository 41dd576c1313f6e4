package editor

import (
	"image"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/tool"
)

const (
	stripHeight = 72
	buttonW     = 64
	buttonH     = 28
	swatch      = 18
	pad         = 6
)

// layout places the canvas and the tool strip in a window.
type layout struct {
	width, height int
	canvas        image.Rectangle
	buttons       []image.Rectangle // indexed by tool.SubTool
	swatches      []image.Rectangle // indexed by palette position

	// view is window pixels per canvas unit.
	view float64
}

// newLayout fits a photo of size native into a width×height window at zoom.
// The canvas is centred horizontally above the strip.
func newLayout(width, height int, native drawing.Size, zoom float64, paletteLen int) layout {
	l := layout{width: width, height: height}
	c := photo.CanvasSize(native, zoom)
	cw, ch := int(c.W+0.5), int(c.H+0.5)
	x0 := (width - cw) / 2
	if x0 < 0 {
		x0 = 0
	}
	l.canvas = image.Rect(x0, 0, x0+cw, ch)

	top := height - stripHeight + pad
	for i := range tool.SubTools() {
		x := pad + i*(buttonW+pad)
		l.buttons = append(l.buttons, image.Rect(x, top, x+buttonW, top+buttonH))
	}
	sy := top + buttonH + pad
	for i := 0; i < paletteLen; i++ {
		x := pad + i*(swatch+pad/2)
		l.swatches = append(l.swatches, image.Rect(x, sy, x+swatch, sy+swatch))
	}
	return l
}

// inStrip reports whether p is over the tool strip.
func (l layout) inStrip(p image.Point) bool {
	return p.Y >= l.height-stripHeight
}

// buttonAt returns the sub-tool whose button contains p.
func (l layout) buttonAt(p image.Point) (tool.SubTool, bool) {
	for i, r := range l.buttons {
		if p.In(r) {
			return tool.SubTool(i), true
		}
	}
	return tool.SubToolNone, false
}

// swatchAt returns the palette index whose swatch contains p.
func (l layout) swatchAt(p image.Point) (int, bool) {
	for i, r := range l.swatches {
		if p.In(r) {
			return i, true
		}
	}
	return -1, false
}

// toCanvas maps a window position into canvas space, undoing the zoom.
func (l layout) toCanvas(x, y float32) drawing.Point {
	v := l.view
	if v <= 0 {
		v = 1
	}
	return drawing.Point{
		X: (float64(x) - float64(l.canvas.Min.X)) / v,
		Y: (float64(y) - float64(l.canvas.Min.Y)) / v,
	}
}

// fitZoom returns the zoom that fits native into the window with reserved
// pixels of height kept for the strip.
func fitZoom(native drawing.Size, width, height int, reserved float64) float64 {
	return photo.FitScale(native, drawing.Size{W: float64(width), H: float64(height)}, reserved)
}
