package render

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/example/inkshot/internal/drawing"
)

// ExportScale returns the factor mapping canvas space onto the photo's
// native pixels. Only widths are compared: the canvas shows the photo with a
// fill presentation, so both share one aspect ratio. A canvas with no width
// maps one to one.
func ExportScale(native, canvas drawing.Size) float64 {
	if canvas.W <= 0 {
		slog.Debug("render: canvas width unknown, export scale 1")
		return 1
	}
	return native.W / canvas.W
}

// ScaleStrokes returns copies of strokes with every point and width
// multiplied by scale. No rounding is applied.
func ScaleStrokes(strokes []drawing.Stroke, scale float64) []drawing.Stroke {
	out := make([]drawing.Stroke, 0, len(strokes))
	for _, s := range strokes {
		if s.Empty() {
			continue
		}
		pts := make([]drawing.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = p.Scale(scale)
		}
		out = append(out, drawing.Stroke{Points: pts, Color: s.Color, Width: s.Width * scale, Tool: s.Tool})
	}
	return out
}

// SizeOf returns the pixel size of img.
func SizeOf(img image.Image) drawing.Size {
	b := img.Bounds()
	return drawing.Size{W: float64(b.Dx()), H: float64(b.Dy())}
}

// ExportComposite flattens strokes over src at src's native resolution.
// strokes and canvas must be a snapshot taken before calling; they are not
// read again by anything else. The scaled strokes are drawn straight onto a
// copy of the photo; src itself is not modified.
func ExportComposite(src image.Image, strokes []drawing.Stroke, canvas drawing.Size) (*image.RGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source image", ErrRenderFailure)
	}
	native := SizeOf(src)
	scale := ExportScale(native, canvas)
	if _, _, err := rasterSize(native); err != nil {
		return nil, fmt.Errorf("export %vx%v at scale %g: %w", native.W, native.H, scale, err)
	}
	dc := gg.NewContextForImage(src)
	defer dc.Close()
	if err := strokeAll(dc, ScaleStrokes(strokes, scale)); err != nil {
		return nil, fmt.Errorf("export at scale %g: %w", scale, err)
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("%w: flush: %v", ErrRenderFailure, err)
	}
	return toRGBA(dc.Image()), nil
}

// Preview composes the on-screen view: the photo scaled to fill the canvas
// with the strokes on top, both in canvas space.
func Preview(src image.Image, strokes []drawing.Stroke, canvas drawing.Size) (*image.RGBA, error) {
	layer, err := Render(strokes, canvas)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(layer.Bounds())
	if src != nil {
		xdraw.ApproxBiLinear.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	}
	draw.Draw(out, out.Bounds(), layer, image.Point{}, draw.Over)
	return out, nil
}
