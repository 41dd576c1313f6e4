// Package render rasterizes stroke drawings, both for live display and for
// the flattened export at the photo's native resolution.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gg"

	"github.com/example/inkshot/internal/drawing"
)

// ErrRenderFailure is returned when a raster could not be produced.
var ErrRenderFailure = errors.New("render failed")

// MaxPixels bounds the size of any raster this package allocates.
var MaxPixels = 1 << 28

// Render draws strokes in order onto a transparent raster of the target size.
// Every stroke is a polyline through its points using its own color and
// width with round caps and joins. A single-point stroke is a round dot.
func Render(strokes []drawing.Stroke, target drawing.Size) (*image.RGBA, error) {
	w, h, err := rasterSize(target)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if err := strokeAll(dc, strokes); err != nil {
		return nil, err
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("%w: flush: %v", ErrRenderFailure, err)
	}
	return toRGBA(dc.Image()), nil
}

func strokeAll(dc *gg.Context, strokes []drawing.Stroke) error {
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for i, s := range strokes {
		if s.Empty() || s.Width <= 0 {
			continue
		}
		dc.SetColor(s.Color)
		if len(s.Points) == 1 {
			p := s.Points[0]
			dc.DrawCircle(p.X, p.Y, s.Width/2)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("%w: stroke %d: %v", ErrRenderFailure, i, err)
			}
			continue
		}
		dc.SetLineWidth(s.Width)
		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("%w: stroke %d: %v", ErrRenderFailure, i, err)
		}
	}
	return nil
}

// rasterSize converts a float size to whole pixels, rounding up so sub-pixel
// canvas sizes still cover every point.
func rasterSize(s drawing.Size) (int, int, error) {
	if !s.Known() {
		return 0, 0, fmt.Errorf("%w: empty target %vx%v", ErrRenderFailure, s.W, s.H)
	}
	w := int(s.W)
	if float64(w) < s.W {
		w++
	}
	h := int(s.H)
	if float64(h) < s.H {
		h++
	}
	if w > MaxPixels/h {
		return 0, 0, fmt.Errorf("%w: target %dx%d exceeds %d pixels", ErrRenderFailure, w, h, MaxPixels)
	}
	return w, h, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
