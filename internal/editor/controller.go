// Package editor is the interactive window: it shows the photo with its
// strokes and turns mouse and keyboard input into session calls.
package editor

import (
	"image"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/tool"
)

// Command is work the window loop performs after an input event.
type Command int

const (
	CommandNone Command = iota
	CommandSave
	CommandCopy
	CommandQuit
)

// Result tells the window loop what an event changed.
type Result struct {
	Repaint bool
	Command Command
}

// KeyShortcut identifies a key combination.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

const (
	zoomStep   = 1.25
	sliderStep = 10
)

// Controller owns the view state of one editor window. It is driven from the
// window's event goroutine only.
type Controller struct {
	sess     *session.Session
	reserved float64

	width, height int
	fit           float64
	zoom          float64
	layout        layout

	// canvas is the coordinate space strokes are recorded in. It is the
	// photo at the fit scale and only changes while the drawing is empty;
	// zoom scales the view of it.
	canvas drawing.Size

	pressed bool

	actions   map[string]func() Result
	shortcuts map[KeyShortcut]string
}

// NewController binds a controller to sess for a window of the given size.
func NewController(sess *session.Session, width, height int, reserved float64) *Controller {
	c := &Controller{sess: sess, reserved: reserved, canvas: sess.CanvasSize()}
	c.registerActions()
	c.Resize(width, height)
	return c
}

func (c *Controller) registerActions() {
	c.actions = map[string]func() Result{}
	c.shortcuts = map[KeyShortcut]string{}
	register := func(name string, fn func() Result, keys ...KeyShortcut) {
		c.actions[name] = fn
		for _, k := range keys {
			c.shortcuts[k] = name
		}
	}
	repaint := Result{Repaint: true}

	register("undo", func() Result { c.sess.UndoLast(); return repaint },
		KeyShortcut{Rune: 'z', Modifiers: key.ModControl}, KeyShortcut{Rune: 'u'})
	register("clear", func() Result { c.sess.ClearAll(); return repaint },
		KeyShortcut{Code: key.CodeDeleteForward}, KeyShortcut{Code: key.CodeDeleteBackspace, Modifiers: key.ModControl})
	register("save", func() Result { return Result{Command: CommandSave} },
		KeyShortcut{Rune: 's', Modifiers: key.ModControl})
	register("copy", func() Result { return Result{Command: CommandCopy} },
		KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	register("cancel", c.cancel, KeyShortcut{Code: key.CodeEscape})
	register("quit", func() Result { return Result{Command: CommandQuit} },
		KeyShortcut{Rune: 'q'}, KeyShortcut{Rune: 'w', Modifiers: key.ModControl})
	register("text", func() Result { c.toggleText(); return repaint }, KeyShortcut{Rune: 't'})
	register("zoomin", func() Result { c.setZoom(c.zoom * zoomStep); return repaint },
		KeyShortcut{Rune: '+'}, KeyShortcut{Rune: '='})
	register("zoomout", func() Result { c.setZoom(c.zoom / zoomStep); return repaint },
		KeyShortcut{Rune: '-'})
	register("fit", func() Result { c.setZoom(c.fit); return repaint }, KeyShortcut{Rune: '0'})
	register("wider", func() Result { return c.nudgeWidth(sliderStep) }, KeyShortcut{Rune: ']'})
	register("thinner", func() Result { return c.nudgeWidth(-sliderStep) }, KeyShortcut{Rune: '['})
	for i, sub := range tool.SubTools() {
		sub := sub
		register("select-"+sub.String(), func() Result { c.sess.Select(sub); return repaint },
			KeyShortcut{Rune: rune('1' + i)})
	}
}

// Shortcuts returns the key bindings by action name.
func (c *Controller) Shortcuts() map[KeyShortcut]string { return c.shortcuts }

// Trigger runs a named action.
func (c *Controller) Trigger(name string) Result {
	if fn, ok := c.actions[name]; ok {
		return fn()
	}
	return Result{}
}

// Resize refits the photo to a new window size and resets the zoom. The
// canvas space follows the new fit only while nothing is drawn; existing
// strokes keep their coordinates and the view scales instead.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
	c.fit = fitZoom(c.sess.NativeSize(), width, height, c.reserved)
	if !c.canvas.Known() || c.sess.Len() == 0 {
		c.canvas = photo.CanvasSize(c.sess.NativeSize(), c.fit)
		c.sess.ObserveCanvasSize(c.canvas)
	}
	c.setZoom(c.fit)
}

// Zoom returns the current zoom.
func (c *Controller) Zoom() float64 { return c.zoom }

func (c *Controller) setZoom(z float64) {
	c.zoom = photo.NewZoomRange(c.fit).Clamp(z)
	c.layout = newLayout(c.width, c.height, c.sess.NativeSize(), c.zoom, len(tool.Palette()))
	c.layout.view = c.sess.NativeSize().W * c.zoom / c.canvas.W
}

// ViewSize is the on-screen size of the canvas at the current zoom.
func (c *Controller) ViewSize() drawing.Size {
	return drawing.Size{W: c.canvas.W * c.layout.view, H: c.canvas.H * c.layout.view}
}

func (c *Controller) cancel() Result {
	c.pressed = false
	if c.sess.Cancel() == session.CancelLeave {
		return Result{Command: CommandQuit}
	}
	return Result{Repaint: true}
}

func (c *Controller) toggleText() {
	if c.sess.Selection().Kind == tool.KindText {
		c.sess.SetKind(tool.KindDraw)
		return
	}
	c.pressed = false
	c.sess.SetKind(tool.KindText)
}

func (c *Controller) nudgeWidth(delta float64) Result {
	sel := c.sess.Selection()
	if !sel.SubTool.Colored() {
		return Result{}
	}
	return Result{Repaint: c.sess.SetSlider(sel.Sliders[sel.SubTool] + delta)}
}

// Key handles a key event.
func (c *Controller) Key(e key.Event) Result {
	if e.Direction != key.DirPress {
		return Result{}
	}
	if name, ok := c.shortcuts[shortcutFor(e)]; ok {
		return c.Trigger(name)
	}
	return Result{}
}

// shortcutFor normalizes e: printable keys match by lower-case rune, others
// by code. Only the control modifier is significant.
func shortcutFor(e key.Event) KeyShortcut {
	r := e.Rune
	if e.Code >= key.CodeA && e.Code <= key.CodeZ && (r <= 0 || unicode.IsControl(r)) {
		r = 'a' + rune(e.Code-key.CodeA)
	}
	mods := e.Modifiers & key.ModControl
	if r > 0 && !unicode.IsControl(r) {
		return KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}
	}
	return KeyShortcut{Code: e.Code, Modifiers: mods}
}

// Mouse handles a mouse event. Left-button drags over the canvas become
// gestures; clicks on the strip pick tools and colors; the wheel adjusts the
// width.
func (c *Controller) Mouse(e mouse.Event) Result {
	p := image.Point{X: int(e.X), Y: int(e.Y)}

	switch e.Button {
	case mouse.ButtonWheelUp:
		return c.nudgeWidth(sliderStep)
	case mouse.ButtonWheelDown:
		return c.nudgeWidth(-sliderStep)
	}

	if c.pressed {
		return c.drag(e)
	}
	if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
		return Result{}
	}
	if c.layout.inStrip(p) {
		return c.clickStrip(p)
	}
	if !c.sess.Selection().GestureActive() {
		return Result{}
	}
	c.pressed = true
	return Result{Repaint: c.sess.HandleGesture(drawing.Gesture{Pos: c.layout.toCanvas(e.X, e.Y), Start: true})}
}

// drag extends the gesture started by the last press. Pointer-down is the
// gesture boundary, so a drag that returns to its start keeps one stroke.
func (c *Controller) drag(e mouse.Event) Result {
	switch {
	case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
		c.pressed = false
	case e.Direction != mouse.DirNone:
		return Result{}
	}
	return Result{Repaint: c.sess.HandleGesture(drawing.Gesture{Pos: c.layout.toCanvas(e.X, e.Y)})}
}

func (c *Controller) clickStrip(p image.Point) Result {
	if sub, ok := c.layout.buttonAt(p); ok {
		if c.sess.Selection().SubTool == sub {
			c.sess.Select(tool.SubToolNone)
		} else {
			c.sess.Select(sub)
		}
		return Result{Repaint: true}
	}
	if idx, ok := c.layout.swatchAt(p); ok {
		return Result{Repaint: c.sess.SetColor(tool.PaletteColorAt(idx))}
	}
	return Result{}
}
