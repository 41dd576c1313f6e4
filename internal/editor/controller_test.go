package editor

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/tool"
)

// A 200x100 photo in a 400x380 window with 80px reserved fits at zoom 2:
// the canvas is 400x200 at the window origin and the strip starts at y=308.
func newController(t *testing.T) (*Controller, *session.Session) {
	t.Helper()
	s, err := session.New(&photo.Photo{Image: image.NewRGBA(image.Rect(0, 0, 200, 100))})
	require.NoError(t, err)
	return NewController(s, 400, 380, 80), s
}

func press(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress}
}

func move(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Direction: mouse.DirNone}
}

func release(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func typed(r rune) key.Event {
	return key.Event{Rune: r, Direction: key.DirPress}
}

func TestFitsCanvasAndReportsSize(t *testing.T) {
	c, s := newController(t)
	assert.Equal(t, 2.0, c.Zoom())
	assert.Equal(t, image.Rect(0, 0, 400, 200), c.layout.canvas)
	assert.Equal(t, drawing.Size{W: 400, H: 200}, s.CanvasSize())
}

func TestDragWithoutToolPassesThrough(t *testing.T) {
	c, s := newController(t)
	assert.False(t, c.Mouse(press(10, 10)).Repaint)
	assert.False(t, c.Mouse(move(20, 20)).Repaint)
	assert.Equal(t, 0, s.Len())
}

func TestDragBuildsStroke(t *testing.T) {
	c, s := newController(t)
	c.Key(typed('1'))
	require.Equal(t, tool.Pen, s.Selection().SubTool)

	assert.True(t, c.Mouse(press(10, 20)).Repaint)
	c.Mouse(move(30, 20))
	c.Mouse(move(10, 20))
	c.Mouse(release(50, 60))
	c.Mouse(move(90, 90))

	strokes := s.Strokes()
	require.Len(t, strokes, 1, "returning to the start does not split the stroke")
	assert.Equal(t, []drawing.Point{{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 10, Y: 20}, {X: 50, Y: 60}}, strokes[0].Points)
}

func TestStripButtonsToggleSubTool(t *testing.T) {
	c, s := newController(t)
	neon := c.layout.buttons[tool.Neon]
	at := func(r image.Rectangle) mouse.Event {
		return press(float32(r.Min.X+2), float32(r.Min.Y+2))
	}
	assert.True(t, c.Mouse(at(neon)).Repaint)
	assert.Equal(t, tool.Neon, s.Selection().SubTool)
	c.Mouse(at(neon))
	assert.Equal(t, tool.SubToolNone, s.Selection().SubTool)

	c.Mouse(at(c.layout.buttons[tool.Pencil]))
	c.Mouse(at(c.layout.swatches[0]))
	assert.Equal(t, tool.PaletteColorAt(0), s.Selection().Colors.Pencil)
	assert.Equal(t, 0, s.Len(), "strip clicks never draw")
}

func TestEscapeDeselectsThenQuits(t *testing.T) {
	c, s := newController(t)
	esc := key.Event{Code: key.CodeEscape, Rune: -1, Direction: key.DirPress}
	c.Key(typed('6'))
	require.Equal(t, tool.Eraser, s.Selection().SubTool)

	assert.Equal(t, Result{Repaint: true}, c.Key(esc))
	assert.Equal(t, tool.SubToolNone, s.Selection().SubTool)
	assert.Equal(t, CommandQuit, c.Key(esc).Command)
}

func TestUndoAndClearKeys(t *testing.T) {
	c, s := newController(t)
	c.Key(typed('2'))
	for i := 0; i < 3; i++ {
		c.Mouse(press(float32(10*i), 5))
		c.Mouse(release(float32(10*i+5), 5))
	}
	require.Equal(t, 3, s.Len())

	c.Key(key.Event{Code: key.CodeZ, Rune: 0x1a, Modifiers: key.ModControl, Direction: key.DirPress})
	assert.Equal(t, 2, s.Len())
	c.Key(typed('u'))
	assert.Equal(t, 1, s.Len())
	c.Key(key.Event{Code: key.CodeDeleteForward, Rune: -1, Direction: key.DirPress})
	assert.Equal(t, 0, s.Len())
}

func TestCommands(t *testing.T) {
	c, _ := newController(t)
	ctrl := func(code key.Code, r rune) key.Event {
		return key.Event{Code: code, Rune: r, Modifiers: key.ModControl | key.ModShift, Direction: key.DirPress}
	}
	assert.Equal(t, CommandSave, c.Key(ctrl(key.CodeS, 's')).Command)
	assert.Equal(t, CommandCopy, c.Key(ctrl(key.CodeC, 'C')).Command)
	assert.Equal(t, CommandQuit, c.Key(typed('q')).Command)
	assert.Equal(t, Result{}, c.Key(key.Event{Rune: 'q', Direction: key.DirRelease}))
	assert.Equal(t, Result{}, c.Key(typed('k')))
}

func TestWheelAdjustsWidth(t *testing.T) {
	c, s := newController(t)
	assert.False(t, c.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep}).Repaint)

	c.Key(typed('1'))
	c.Mouse(mouse.Event{Button: mouse.ButtonWheelUp, Direction: mouse.DirStep})
	assert.Equal(t, 60.0, s.Selection().Sliders[tool.Pen])
	for i := 0; i < 10; i++ {
		c.Key(typed('['))
	}
	assert.Equal(t, float64(tool.MinSlider), s.Selection().Sliders[tool.Pen])
}

func TestZoomIsClamped(t *testing.T) {
	c, s := newController(t)
	for i := 0; i < 20; i++ {
		c.Key(typed('+'))
	}
	assert.Equal(t, 6.0, c.Zoom())
	assert.Equal(t, drawing.Size{W: 400, H: 200}, s.CanvasSize(), "zoom only scales the view")
	assert.Equal(t, drawing.Size{W: 1200, H: 600}, c.ViewSize())
	for i := 0; i < 20; i++ {
		c.Key(typed('-'))
	}
	assert.Equal(t, 2.0, c.Zoom())
	c.Key(typed('='))
	c.Key(typed('0'))
	assert.Equal(t, 2.0, c.Zoom())
}

func TestTextModeDisablesDrawing(t *testing.T) {
	c, s := newController(t)
	c.Key(typed('1'))
	c.Key(typed('t'))
	assert.Equal(t, tool.KindText, s.Selection().Kind)
	c.Mouse(press(5, 5))
	assert.Equal(t, 0, s.Len())
	c.Key(typed('T'))
	assert.Equal(t, tool.KindDraw, s.Selection().Kind)
}

func TestShortcutFor(t *testing.T) {
	assert.Equal(t, KeyShortcut{Rune: 'z', Modifiers: key.ModControl},
		shortcutFor(key.Event{Code: key.CodeZ, Rune: 0x1a, Modifiers: key.ModControl}))
	assert.Equal(t, KeyShortcut{Rune: 'a'}, shortcutFor(key.Event{Code: key.CodeA, Rune: 'A', Modifiers: key.ModShift}))
	assert.Equal(t, KeyShortcut{Code: key.CodeEscape}, shortcutFor(key.Event{Code: key.CodeEscape, Rune: -1}))
}

func TestZoomKeepsStrokesInPlace(t *testing.T) {
	c, s := newController(t)
	c.Key(typed('1'))
	c.Mouse(press(100, 50))
	c.Mouse(move(120, 50))
	c.Mouse(release(120, 50))

	c.Key(typed('+'))
	assert.Equal(t, 2.5, c.Zoom())
	assert.Equal(t, drawing.Size{W: 400, H: 200}, s.CanvasSize())

	// at zoom 2.5 the window shows canvas units at 1.25 px
	c.Mouse(press(250, 125))
	c.Mouse(move(270, 125))
	c.Mouse(release(270, 125))
	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, []drawing.Point{{X: 100, Y: 50}, {X: 120, Y: 50}, {X: 120, Y: 50}}, strokes[0].Points)
	assert.Equal(t, drawing.Point{X: 200, Y: 100}, strokes[1].Points[0])
	assert.Equal(t, drawing.Point{X: 216, Y: 100}, strokes[1].Points[1])

	out, err := s.Export()
	require.NoError(t, err)
	assert.Greater(t, out.RGBAAt(55, 25).A, uint8(200), "first stroke stays where it was drawn")
	assert.Equal(t, uint8(0), out.RGBAAt(44, 20).A)
	assert.Greater(t, out.RGBAAt(104, 50).A, uint8(200))
}

func TestResizeKeepsCanvasOnceDrawn(t *testing.T) {
	c, s := newController(t)
	c.Resize(200, 180)
	assert.Equal(t, drawing.Size{W: 200, H: 100}, s.CanvasSize(), "empty drawing follows the new fit")

	c.Key(typed('1'))
	c.Mouse(press(50, 50))
	c.Mouse(release(60, 50))
	c.Resize(400, 380)
	assert.Equal(t, drawing.Size{W: 200, H: 100}, s.CanvasSize())
	assert.Equal(t, drawing.Size{W: 400, H: 200}, c.ViewSize())

	c.Mouse(press(100, 100))
	assert.Equal(t, drawing.Point{X: 50, Y: 50}, s.Strokes()[1].Points[0])
}
