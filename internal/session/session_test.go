package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/render"
	"github.com/example/inkshot/internal/tool"
)

var blue = color.RGBA{B: 255, A: 255}

func newPhoto(w, h int) *photo.Photo {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(blue), image.Point{}, draw.Src)
	return &photo.Photo{Image: img, Format: "png"}
}

func newSession(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	s, err := New(newPhoto(w, h), opts...)
	require.NoError(t, err)
	return s
}

func drag(s *Session, pts ...drawing.Point) {
	for _, p := range pts {
		s.Drag(p, drawing.Point{X: p.X - pts[0].X, Y: p.Y - pts[0].Y})
	}
}

func TestNewRejectsMissingPhoto(t *testing.T) {
	for name, p := range map[string]*photo.Photo{
		"nil":   nil,
		"image": {},
		"empty": {Image: image.NewRGBA(image.Rect(0, 0, 0, 0))},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New(p)
			assert.True(t, errors.Is(err, photo.ErrInvalidSource))
		})
	}
}

func TestNewAssignsID(t *testing.T) {
	a := newSession(t, 4, 4)
	b := newSession(t, 4, 4)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "fixed", newSession(t, 4, 4, WithID("fixed")).ID)
}

func TestGesturesIgnoredWithoutSubTool(t *testing.T) {
	s := newSession(t, 10, 10)
	assert.False(t, s.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 1, Y: 1}, Start: true}))
	assert.Equal(t, 0, s.Len())

	s.Select(tool.Pen)
	s.SetKind(tool.KindText)
	assert.False(t, s.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 1, Y: 1}, Start: true}))
	assert.Equal(t, 0, s.Len())
}

func TestDragBuildsOneStroke(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Select(tool.Pen)
	pts := []drawing.Point{{X: 1, Y: 1}, {X: 2, Y: 3}, {X: 4, Y: 4}}
	drag(s, pts...)

	strokes := s.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, pts, strokes[0].Points)
	assert.Equal(t, tool.Cyan, strokes[0].Color)
	assert.Equal(t, tool.DefaultWidth(), strokes[0].Width)
	assert.Equal(t, int(tool.Pen), strokes[0].Tool)
}

func TestColorChangeKeepsExistingStrokes(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Select(tool.Brush)
	drag(s, drawing.Point{X: 1, Y: 1}, drawing.Point{X: 2, Y: 2})
	require.True(t, s.SetColor(color.RGBA{R: 255, A: 255}))
	require.True(t, s.SetSlider(120))
	drag(s, drawing.Point{X: 5, Y: 5}, drawing.Point{X: 6, Y: 6})

	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, tool.Cyan, strokes[0].Color)
	assert.Equal(t, 5.0, strokes[0].Width)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, strokes[1].Color)
	assert.Equal(t, 12.0, strokes[1].Width)
}

func TestUndoAndClear(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Select(tool.Pen)
	drag(s, drawing.Point{X: 1, Y: 1})
	drag(s, drawing.Point{X: 2, Y: 2})
	s.UndoLast()
	require.Equal(t, 1, s.Len())
	s.ClearAll()
	assert.Equal(t, 0, s.Len())
	s.UndoLast()
	assert.Equal(t, 0, s.Len())
}

func TestCancel(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Select(tool.Eraser)
	assert.Equal(t, CancelDeselected, s.Cancel())
	assert.Equal(t, tool.SubToolNone, s.Selection().SubTool)
	assert.Equal(t, CancelLeave, s.Cancel())
	assert.Equal(t, "leave", CancelLeave.String())
}

func TestCloseDiscardsDrawing(t *testing.T) {
	s := newSession(t, 10, 10)
	s.Select(tool.Pen)
	drag(s, drawing.Point{X: 1, Y: 1})
	s.Close()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 3, Y: 3}, Start: true}))
	s.Close()
}

func TestExportScalesToNative(t *testing.T) {
	s := newSession(t, 200, 100)
	s.ObserveCanvasSize(drawing.Size{W: 100, H: 50})
	s.Select(tool.Pen)
	require.True(t, s.SetColor(color.RGBA{R: 255, A: 255}))
	drag(s, drawing.Point{X: 10, Y: 25}, drawing.Point{X: 40, Y: 25})

	img, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	assert.Greater(t, img.RGBAAt(50, 50).R, uint8(200))
	assert.Equal(t, blue, img.RGBAAt(150, 90))
	assert.Equal(t, 1, s.Len(), "export leaves the drawing alone")
}

func TestExportAsyncUsesSnapshot(t *testing.T) {
	s := newSession(t, 40, 40)
	s.Select(tool.Pen)
	require.True(t, s.SetColor(color.RGBA{R: 255, A: 255}))
	drag(s, drawing.Point{X: 5, Y: 20}, drawing.Point{X: 35, Y: 20})

	ch := s.ExportAsync()
	// mutations after the call must not reach the export
	s.ClearAll()
	drag(s, drawing.Point{X: 20, Y: 5}, drawing.Point{X: 20, Y: 35})
	s.ObserveCanvasSize(drawing.Size{W: 10, H: 10})

	res := <-ch
	require.NoError(t, res.Err)
	assert.Greater(t, res.Image.RGBAAt(10, 20).R, uint8(200))
	assert.Equal(t, blue, res.Image.RGBAAt(20, 5))
}

func TestExportFailureLeavesDrawing(t *testing.T) {
	orig := render.MaxPixels
	render.MaxPixels = 10
	t.Cleanup(func() { render.MaxPixels = orig })

	s := newSession(t, 20, 20)
	s.Select(tool.Pen)
	drag(s, drawing.Point{X: 1, Y: 1})

	_, err := s.Export()
	require.Error(t, err)
	assert.True(t, errors.Is(err, render.ErrRenderFailure))
	res := <-s.ExportAsync()
	assert.True(t, errors.Is(res.Err, render.ErrRenderFailure))
	assert.Equal(t, 1, s.Len())
}

type recordingSaver struct {
	got image.Image
	err error
}

func (r *recordingSaver) Save(_ context.Context, img image.Image) error {
	r.got = img
	return r.err
}

func TestExportTo(t *testing.T) {
	s := newSession(t, 8, 8)
	rec := &recordingSaver{}
	require.NoError(t, s.ExportTo(context.Background(), rec))
	require.NotNil(t, rec.got)
	assert.Equal(t, 8, rec.got.Bounds().Dx())

	sentinel := errors.New("disk full")
	rec.err = sentinel
	assert.True(t, errors.Is(s.ExportTo(context.Background(), rec), sentinel))
}

func TestPreviewFallsBackToNativeSize(t *testing.T) {
	s := newSession(t, 12, 6)
	img, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 6), img.Bounds())

	s.ObserveCanvasSize(drawing.Size{W: 6, H: 3})
	img, err = s.Preview()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())
}

func TestPreviewAtScalesStrokesWithView(t *testing.T) {
	s := newSession(t, 200, 100)
	s.ObserveCanvasSize(drawing.Size{W: 100, H: 50})
	s.Select(tool.Pen)
	require.True(t, s.SetColor(color.RGBA{R: 255, A: 255}))
	drag(s, drawing.Point{X: 10, Y: 25}, drawing.Point{X: 40, Y: 25})

	img, err := s.PreviewAt(drawing.Size{W: 300, H: 150})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 300, 150), img.Bounds())
	assert.Greater(t, img.RGBAAt(75, 75).R, uint8(200), "canvas (25,25) shows at 3x")
	assert.Equal(t, blue, img.RGBAAt(75, 25))
	assert.Equal(t, drawing.Size{W: 100, H: 50}, s.CanvasSize(), "the view never changes canvas space")
}
