package script

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/inkshot/internal/drawing"
	"github.com/example/inkshot/internal/photo"
	"github.com/example/inkshot/internal/session"
	"github.com/example/inkshot/internal/tool"
)

const sample = `
canvas: {width: 100, height: 50}
steps:
  - select: pen
  - color: "#ff0000"
  - width: 80
  - stroke: [[10, 25], [40, 25], [40, 40]]
  - select: eraser
  - stroke: [[1, 1], [2, 2]]
  - undo: true
  - select: neon
  - stroke: [[5, 5]]
`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(&photo.Photo{Image: image.NewRGBA(image.Rect(0, 0, 200, 100))})
	require.NoError(t, err)
	return s
}

func TestReadAndReplay(t *testing.T) {
	sc, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 9)

	s := newSession(t)
	require.NoError(t, sc.Replay(s))
	assert.Equal(t, drawing.Size{W: 100, H: 50}, s.CanvasSize())

	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, []drawing.Point{{X: 10, Y: 25}, {X: 40, Y: 25}, {X: 40, Y: 40}}, strokes[0].Points)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, strokes[0].Color)
	assert.Equal(t, 8.0, strokes[0].Width)
	assert.Equal(t, int(tool.Neon), strokes[1].Tool)
	assert.Equal(t, tool.Cyan, strokes[1].Color)
}

func TestReplayMatchesDirectCalls(t *testing.T) {
	sc, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	replayed := newSession(t)
	require.NoError(t, sc.Replay(replayed))

	direct := newSession(t)
	direct.ObserveCanvasSize(drawing.Size{W: 100, H: 50})
	direct.Select(tool.Pen)
	direct.SetColor(color.RGBA{R: 255, A: 255})
	direct.SetSlider(80)
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 10, Y: 25}, Start: true})
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 40, Y: 25}})
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 40, Y: 40}})
	direct.Select(tool.Eraser)
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 1, Y: 1}, Start: true})
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 2, Y: 2}})
	direct.UndoLast()
	direct.Select(tool.Neon)
	direct.HandleGesture(drawing.Gesture{Pos: drawing.Point{X: 5, Y: 5}, Start: true})

	assert.Equal(t, direct.Strokes(), replayed.Strokes())

	a, err := direct.Export()
	require.NoError(t, err)
	b, err := replayed.Export()
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestStrokesWithoutToolAreDropped(t *testing.T) {
	sc, err := Read(strings.NewReader("steps:\n  - stroke: [[1, 1], [3, 3]]\n  - select: pencil\n  - cancel: true\n  - stroke: [[4, 4]]\n"))
	require.NoError(t, err)
	s := newSession(t)
	require.NoError(t, sc.Replay(s))
	assert.Equal(t, 0, s.Len())
}

func TestReadRejectsBadSteps(t *testing.T) {
	tests := map[string]string{
		"two actions": "steps:\n  - select: pen\n    undo: true\n",
		"no action":   "steps:\n  - {}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(src))
			assert.True(t, errors.Is(err, ErrInvalidStep), "got %v", err)
		})
	}
	_, err := Read(strings.NewReader("steps:\n  - paint: pen\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

func TestReplayErrors(t *testing.T) {
	tests := map[string]string{
		"bad tool":      "steps:\n  - select: hammer\n",
		"bad color":     "steps:\n  - select: pen\n  - color: notacolor\n",
		"lasso color":   "steps:\n  - select: lasso\n  - color: red\n",
		"no tool width": "steps:\n  - width: 30\n",
		"bad kind":      "steps:\n  - kind: shape\n",
		"empty stroke":  "steps:\n  - stroke: []\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			sc, err := Read(strings.NewReader(src))
			require.NoError(t, err)
			err = sc.Replay(newSession(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "step ")
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	s := newSession(t)
	s.Select(tool.Pencil)
	s.SetColor(color.RGBA{G: 128, A: 255})
	s.SetSlider(150)
	s.Drag(drawing.Point{X: 3, Y: 4}, drawing.Point{})
	s.Drag(drawing.Point{X: 9, Y: 4}, drawing.Point{X: 6})
	s.Select(tool.Lasso)
	s.Drag(drawing.Point{X: 7, Y: 7}, drawing.Point{})
	// a closed loop returns to its first point inside one gesture
	for i, p := range []drawing.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0}} {
		s.HandleGesture(drawing.Gesture{Pos: p, Start: i == 0})
	}
	s.ObserveCanvasSize(drawing.Size{W: 20, H: 10})
	require.Equal(t, 3, s.Len())

	sc := Record(s.Strokes(), s.CanvasSize())
	data, err := sc.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "strokes.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loaded, err := Load(path)
	require.NoError(t, err)

	again := newSession(t)
	require.NoError(t, loaded.Replay(again))
	assert.Equal(t, s.Strokes(), again.Strokes())
	assert.Equal(t, s.CanvasSize(), again.CanvasSize())
	require.Equal(t, 3, again.Len())
	assert.Len(t, again.Strokes()[2].Points, 4, "the closed loop replays as one stroke")
}
