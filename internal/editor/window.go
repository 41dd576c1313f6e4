package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/sink"
	"github.com/example/inkshot/internal/tool"
)

// frameDropThreshold is how many frames in a row may be abandoned for a
// newer one before a frame is allowed to finish.
const frameDropThreshold = 10

const (
	maxInitialW = 1280
	maxInitialH = 800
	messageTime = 2 * time.Second
)

var (
	backdrop    = color.RGBA{48, 48, 48, 255}
	stripColor  = color.RGBA{220, 220, 220, 255}
	buttonColor = color.RGBA{200, 200, 200, 255}
	activeColor = color.RGBA{150, 170, 220, 255}
	textColor   = color.RGBA{0, 0, 0, 255}
)

var labelFace = loadLabelFace(12)

// loadLabelFace returns Go Regular at size, or the fixed bitmap face when it
// cannot be built.
func loadLabelFace(size float64) font.Face {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		slog.Warn("editor: parse font", "err", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		slog.Warn("editor: font face", "err", err)
		return basicfont.Face7x13
	}
	return face
}

// Editor runs one window over a session.
type Editor struct {
	sess     *session.Session
	save     sink.Sink
	copy     sink.Sink
	reserved float64
	onClose  func()
}

// Option modifies an Editor during creation.
type Option func(*Editor)

// WithSaveSink sets where Ctrl+S exports go.
func WithSaveSink(s sink.Sink) Option { return func(e *Editor) { e.save = s } }

// WithCopySink sets where Ctrl+C exports go.
func WithCopySink(s sink.Sink) Option { return func(e *Editor) { e.copy = s } }

// WithReserved sets the window height kept free below the canvas.
func WithReserved(px float64) Option { return func(e *Editor) { e.reserved = px } }

// WithOnClose registers a callback run when the window closes.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// New creates an Editor for sess.
func New(sess *session.Session, opts ...Option) *Editor {
	e := &Editor{sess: sess, reserved: photo.ReservedHeight, copy: sink.Clipboard{}}
	for _, o := range opts {
		o(e)
	}
	if e.reserved < stripHeight {
		e.reserved = stripHeight
	}
	return e
}

// Run starts the window on shiny's driver and returns when it closes.
func (e *Editor) Run() { driver.Main(e.Main) }

// statusEvent carries the outcome of a background export to the event loop.
type statusEvent struct{ text string }

// frame is everything one paint needs, captured on the event goroutine.
type frame struct {
	width, height int
	layout        layout
	view          drawing.Size
	sel           tool.Selection
	zoom          float64
	message       string
}

// initialSize picks a window that shows the photo at most at 1:1.
func (e *Editor) initialSize() (int, int) {
	n := e.sess.NativeSize()
	z := math.Min(1, math.Min(maxInitialW/n.W, maxInitialH/n.H))
	minW := len(tool.SubTools())*(buttonW+pad) + pad
	w := int(math.Max(n.W*z, float64(minW)))
	return w, int(n.H*z + e.reserved)
}

// Main is the shiny entry point.
func (e *Editor) Main(s screen.Screen) {
	width, height := e.initialSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "inkshot"})
	if err != nil {
		slog.Error("editor: new window", "err", err)
		return
	}
	defer w.Release()
	defer func() {
		e.sess.Close()
		if e.onClose != nil {
			e.onClose()
		}
	}()

	ctrl := NewController(e.sess, width, height, e.reserved)
	var message string
	var messageUntil time.Time

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan frame, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			e.drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	handle := func(r Result) bool {
		switch r.Command {
		case CommandSave:
			e.export(w, e.save)
		case CommandCopy:
			e.export(w, e.copy)
		case CommandQuit:
			stopPaint()
			return false
		}
		if r.Repaint {
			w.Send(paint.Event{})
		}
		return true
	}

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			width, height = ev.WidthPx, ev.HeightPx
			ctrl.Resize(width, height)
			w.Send(paint.Event{})
		case statusEvent:
			message = ev.text
			messageUntil = time.Now().Add(messageTime)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := frame{
				width:  width,
				height: height,
				layout: ctrl.layout,
				view:   ctrl.ViewSize(),
				sel:    e.sess.Selection(),
				zoom:   ctrl.Zoom(),
			}
			if time.Now().Before(messageUntil) {
				st.message = message
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			if !handle(ctrl.Mouse(ev)) {
				return
			}
		case key.Event:
			if !handle(ctrl.Key(ev)) {
				return
			}
		}
	}
}

// export snapshots the drawing now and saves it on another goroutine; the
// outcome comes back to the loop as a statusEvent.
func (e *Editor) export(w screen.Window, dst sink.Sink) {
	if dst == nil {
		w.Send(statusEvent{text: "no output configured"})
		return
	}
	results := e.sess.ExportAsync()
	go func() {
		res := <-results
		if res.Err != nil {
			w.Send(statusEvent{text: fmt.Sprintf("export failed: %v", res.Err)})
			return
		}
		if err := dst.Save(context.Background(), res.Image); err != nil {
			slog.Error("editor: save", "to", dst.String(), "err", err)
			w.Send(statusEvent{text: fmt.Sprintf("save failed: %v", err)})
			return
		}
		w.Send(statusEvent{text: "saved to " + dst.String()})
	}()
}

func (e *Editor) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st frame) {
	b, err := s.NewBuffer(image.Point{X: st.width, Y: st.height})
	if err != nil {
		slog.Error("editor: new buffer", "err", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	draw.Draw(dst, dst.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)

	view, err := e.sess.PreviewAt(st.view)
	if err != nil {
		slog.Warn("editor: preview", "err", err)
	} else {
		draw.Draw(dst, st.layout.canvas, view, image.Point{}, draw.Src)
	}
	if ctx.Err() != nil {
		return
	}

	drawStrip(dst, st)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawStrip(dst *image.RGBA, st frame) {
	strip := image.Rect(0, st.height-stripHeight, st.width, st.height)
	draw.Draw(dst, strip, image.NewUniform(stripColor), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(textColor), Face: labelFace}
	for i, r := range st.layout.buttons {
		bg := buttonColor
		if st.sel.Kind == tool.KindDraw && st.sel.SubTool == tool.SubTool(i) {
			bg = activeColor
		}
		draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Src)
		label := fmt.Sprintf("%d:%s", i+1, tool.SubTool(i))
		d.Dot = fixed.P(r.Min.X+4, r.Min.Y+buttonH/2+4)
		d.DrawString(label)
	}

	current, hasColor := st.sel.CurrentColor()
	for i, r := range st.layout.swatches {
		col := tool.PaletteColorAt(i)
		if hasColor && col == current {
			draw.Draw(dst, r.Inset(-2), image.NewUniform(textColor), image.Point{}, draw.Src)
		}
		draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
	}

	status := fmt.Sprintf("zoom %.0f%%", st.zoom*100)
	if st.sel.SubTool.Colored() {
		status += fmt.Sprintf("  width %.1f", tool.StrokeWidth(st.sel.Sliders[st.sel.SubTool]))
	}
	if st.sel.Kind == tool.KindText {
		status += "  text"
	}
	if st.message != "" {
		status += "  " + st.message
	}
	d.Dot = fixed.P(pad, st.height-stripHeight-pad)
	d.Src = image.NewUniform(color.White)
	d.DrawString(status)
}
