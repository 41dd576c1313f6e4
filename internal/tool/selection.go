package tool

import (
	"image/color"

	"github.com/example/inkshot/internal/drawing"
)

// ColorSet holds the color of each colored sub-tool and of the text tool.
type ColorSet struct {
	Pen    color.RGBA
	Brush  color.RGBA
	Neon   color.RGBA
	Pencil color.RGBA
	Text   color.RGBA
}

// DefaultColorSet returns the starting colors: every drawing tool uses col,
// text is black.
func DefaultColorSet(col color.RGBA) ColorSet {
	return ColorSet{
		Pen:    col,
		Brush:  col,
		Neon:   col,
		Pencil: col,
		Text:   color.RGBA{0, 0, 0, 255},
	}
}

// colorSlots maps each colored sub-tool to its ColorSet field.
var colorSlots = [Pencil + 1]func(*ColorSet) *color.RGBA{
	Pen:    func(c *ColorSet) *color.RGBA { return &c.Pen },
	Brush:  func(c *ColorSet) *color.RGBA { return &c.Brush },
	Neon:   func(c *ColorSet) *color.RGBA { return &c.Neon },
	Pencil: func(c *ColorSet) *color.RGBA { return &c.Pencil },
}

// Slot returns the ColorSet field backing sub, or nil for sub-tools without a
// color.
func (c *ColorSet) Slot(sub SubTool) *color.RGBA {
	if !sub.Colored() {
		return nil
	}
	return colorSlots[sub](c)
}

// Selection is the UI-owned record of what is currently picked. New strokes
// copy a Brush out of it, so changing it never touches existing strokes.
type Selection struct {
	Kind    Kind
	SubTool SubTool
	Colors  ColorSet
	// Sliders holds the width slider value of each colored sub-tool.
	Sliders [Pencil + 1]float64
}

// NewSelection returns the starting selection: draw mode, no sub-tool,
// cyan tools at the default width.
func NewSelection() Selection {
	s := Selection{
		Kind:    KindDraw,
		SubTool: SubToolNone,
		Colors:  DefaultColorSet(Cyan),
	}
	for i := range s.Sliders {
		s.Sliders[i] = DefaultSlider
	}
	return s
}

// GestureActive reports whether drag input should reach the drawing.
func (s Selection) GestureActive() bool { return IsGestureActive(s.Kind, s.SubTool) }

// Brush resolves the brush a stroke started now would capture. Sub-tools
// without their own color, and no sub-tool at all, resolve to a transparent
// brush at the default width.
func (s Selection) Brush() drawing.Brush {
	b := drawing.Brush{Color: Transparent, Width: DefaultWidth(), Tool: int(s.SubTool)}
	if !s.SubTool.Colored() {
		return b
	}
	cs := s.Colors
	b.Color = *cs.Slot(s.SubTool)
	b.Width = StrokeWidth(s.Sliders[s.SubTool])
	return b
}

// CurrentColor returns the color the color picker edits: the text color in
// text mode, otherwise the selected sub-tool's color.
func (s Selection) CurrentColor() (color.RGBA, bool) {
	if s.Kind == KindText {
		return s.Colors.Text, true
	}
	cs := s.Colors
	if p := cs.Slot(s.SubTool); p != nil {
		return *p, true
	}
	return Transparent, false
}

// SetColor updates the color of the current target. It reports false when the
// current sub-tool has no color.
func (s *Selection) SetColor(col color.RGBA) bool {
	if s.Kind == KindText {
		s.Colors.Text = col
		return true
	}
	p := s.Colors.Slot(s.SubTool)
	if p == nil {
		return false
	}
	*p = col
	return true
}

// SetSlider updates the width slider of the selected sub-tool.
func (s *Selection) SetSlider(v float64) bool {
	if s.Kind != KindDraw || !s.SubTool.Colored() {
		return false
	}
	s.Sliders[s.SubTool] = ClampSlider(v)
	return true
}

// Select picks sub in draw mode.
func (s *Selection) Select(sub SubTool) {
	s.Kind = KindDraw
	s.SubTool = sub
}
