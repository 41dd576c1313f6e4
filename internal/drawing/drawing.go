// Package drawing holds the freehand stroke model for an editing session.
//
// Coordinates are in canvas space: the coordinate system of the on-screen
// drawing surface, not the pixel space of the photo underneath it.
package drawing

import (
	"image/color"
	"log/slog"

	"github.com/jinzhu/copier"
)

// Point is a position in canvas space.
type Point struct {
	X, Y float64
}

// Scale returns p with both axes multiplied by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Size is the extent of a surface. The zero Size means the size has not been
// observed yet.
type Size struct {
	W, H float64
}

// Known reports whether the size has been observed.
func (s Size) Known() bool { return s.W > 0 && s.H > 0 }

// Brush is the color and width captured into a stroke when it starts.
type Brush struct {
	Color color.RGBA
	Width float64
	// Tool is the sub-tool index the brush was resolved from.
	Tool int
}

// Stroke is one continuous freehand line.
type Stroke struct {
	Points []Point
	Color  color.RGBA
	Width  float64
	Tool   int
}

// Empty reports whether the stroke has no points and must not be drawn.
func (s Stroke) Empty() bool { return len(s.Points) == 0 }

// Drawing is the ordered list of strokes for one session. Strokes render in
// list order.
type Drawing struct {
	strokes []Stroke
}

// New returns an empty Drawing.
func New() *Drawing { return &Drawing{} }

// Len returns the number of strokes.
func (d *Drawing) Len() int { return len(d.strokes) }

// BeginOrContinue applies one drag event. A new gesture starts a stroke at
// pos using brush; any other event extends the last stroke. Extending an
// empty drawing is ignored.
func (d *Drawing) BeginOrContinue(pos Point, brush Brush, isNewGesture bool) {
	if isNewGesture {
		d.strokes = append(d.strokes, Stroke{
			Points: []Point{pos},
			Color:  brush.Color,
			Width:  brush.Width,
			Tool:   brush.Tool,
		})
		return
	}
	last := len(d.strokes) - 1
	if last < 0 {
		slog.Debug("drawing: extend with no stroke", "x", pos.X, "y", pos.Y)
		return
	}
	d.strokes[last].Points = append(d.strokes[last].Points, pos)
}

// UndoLast removes the most recent stroke. It does nothing on an empty
// drawing.
func (d *Drawing) UndoLast() {
	if len(d.strokes) == 0 {
		return
	}
	d.strokes[len(d.strokes)-1] = Stroke{}
	d.strokes = d.strokes[:len(d.strokes)-1]
}

// ClearAll removes every stroke.
func (d *Drawing) ClearAll() {
	d.strokes = nil
}

// Snapshot returns a deep copy of the strokes. The result shares no memory
// with the drawing, so later gestures, undo or clear leave it untouched.
func (d *Drawing) Snapshot() []Stroke {
	if len(d.strokes) == 0 {
		return nil
	}
	out := make([]Stroke, 0, len(d.strokes))
	if err := copier.CopyWithOption(&out, &d.strokes, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("drawing: snapshot copy", "strokes", len(d.strokes), "err", err)
		return []Stroke{}
	}
	return out
}

// Last returns the most recent stroke.
func (d *Drawing) Last() (Stroke, bool) {
	if len(d.strokes) == 0 {
		return Stroke{}, false
	}
	return d.strokes[len(d.strokes)-1], true
}
