// Package session binds one source photo to its drawing, the observed canvas
// geometry and the current tool selection.
package session

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/render"
	"github.com/example/inkshot/internal/tool"
)

// Session is one editing session. Mutations are expected from a single
// goroutine; the lock exists for the paint and export goroutines that read.
type Session struct {
	ID string

	mu      sync.Mutex
	photo   *photo.Photo
	drawing *drawing.Drawing
	canvas  drawing.Size
	sel     tool.Selection
	closed  bool
	log     *slog.Logger
}

// Option modifies a Session during creation.
type Option func(*Session)

// WithSelection sets the starting tool selection.
func WithSelection(sel tool.Selection) Option { return func(s *Session) { s.sel = sel } }

// WithCanvasSize records an already known canvas size.
func WithCanvasSize(sz drawing.Size) Option { return func(s *Session) { s.canvas = sz } }

// WithID overrides the generated session id.
func WithID(id string) Option { return func(s *Session) { s.ID = id } }

// New opens a session on p with an empty drawing.
func New(p *photo.Photo, opts ...Option) (*Session, error) {
	if p == nil || p.Image == nil || p.Image.Bounds().Empty() {
		return nil, fmt.Errorf("new session: %w", photo.ErrInvalidSource)
	}
	s := &Session{
		ID:      uuid.NewString(),
		photo:   p,
		drawing: drawing.New(),
		sel:     tool.NewSelection(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = slog.Default().With("session", s.ID)
	s.log.Debug("session opened", "w", p.Image.Bounds().Dx(), "h", p.Image.Bounds().Dy(), "format", p.Format)
	return s, nil
}

// Photo returns the source photo.
func (s *Session) Photo() *photo.Photo { return s.photo }

// NativeSize is the pixel size of the source photo.
func (s *Session) NativeSize() drawing.Size { return render.SizeOf(s.photo.Image) }

// ObserveCanvasSize records the size the photo is displayed at.
func (s *Session) ObserveCanvasSize(sz drawing.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canvas = sz
}

// CanvasSize returns the last observed canvas size; the zero Size when none
// was observed yet.
func (s *Session) CanvasSize() drawing.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// Selection returns a copy of the current tool selection.
func (s *Session) Selection() tool.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Select picks a sub-tool in draw mode. tool.SubToolNone deselects.
func (s *Session) Select(sub tool.SubTool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Select(sub)
}

// SetKind switches between the draw and text tools.
func (s *Session) SetKind(k tool.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Kind = k
}

// SetColor updates the color of the current tool. Existing strokes keep the
// color they captured.
func (s *Session) SetColor(col color.RGBA) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.SetColor(col)
}

// SetSlider updates the width slider of the current sub-tool.
func (s *Session) SetSlider(v float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.SetSlider(v)
}

// HandleGesture feeds one drag event into the drawing. It reports whether
// the event was accepted; with no active sub-tool the event passes through.
func (s *Session) HandleGesture(g drawing.Gesture) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.sel.GestureActive() {
		return false
	}
	s.drawing.Apply(g, s.sel.Brush())
	return true
}

// Drag handles a drag event given as a position plus the net translation
// since pointer-down.
func (s *Session) Drag(pos, translation drawing.Point) bool {
	return s.HandleGesture(drawing.Gesture{Pos: pos, Start: drawing.IsGestureStart(translation)})
}

// UndoLast drops the most recent stroke.
func (s *Session) UndoLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing.UndoLast()
}

// ClearAll drops every stroke.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawing.ClearAll()
}

// Strokes returns a copy of the current strokes.
func (s *Session) Strokes() []drawing.Stroke {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Snapshot()
}

// Len returns the number of strokes.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawing.Len()
}

// CancelResult tells the caller what a cancel request did.
type CancelResult int

const (
	// CancelDeselected means a sub-tool was selected and is now cleared.
	CancelDeselected CancelResult = iota
	// CancelLeave means nothing was selected and the caller should leave
	// the session.
	CancelLeave
)

func (r CancelResult) String() string {
	if r == CancelLeave {
		return "leave"
	}
	return "deselected"
}

// Cancel clears the selected sub-tool, or asks to leave when none is set.
func (s *Session) Cancel() CancelResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sel.SubTool.Valid() {
		s.sel.SubTool = tool.SubToolNone
		return CancelDeselected
	}
	return CancelLeave
}

// Close discards the drawing. Later gestures are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.drawing.ClearAll()
	s.log.Debug("session closed")
}

// Preview composes the on-screen view at the observed canvas size, or at
// the native size when none was observed.
func (s *Session) Preview() (*image.RGBA, error) {
	return s.PreviewAt(drawing.Size{})
}

// PreviewAt composes the view shown at size view, scaling the canvas
// uniformly by view.W / canvas.W. An unknown view means the canvas itself.
func (s *Session) PreviewAt(view drawing.Size) (*image.RGBA, error) {
	s.mu.Lock()
	strokes := s.drawing.Snapshot()
	canvas := s.canvas
	s.mu.Unlock()
	if !canvas.Known() {
		canvas = s.NativeSize()
	}
	if !view.Known() {
		view = canvas
	}
	return render.Preview(s.photo.Image, render.ScaleStrokes(strokes, view.W/canvas.W), view)
}
