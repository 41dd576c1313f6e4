package photo

import (
	"math"

	"github.com/example/inkshot/internal/drawing"
)

// ReservedHeight is the screen height kept free for the tool strip when
// fitting a photo.
const ReservedHeight = 280

// MaxZoomFactor is how far past the fitted scale the photo may be zoomed.
const MaxZoomFactor = 3

// FitScale returns the scale that fits a photo of size img on a screen of
// size screen with reserved units of height kept free.
func FitScale(img, screen drawing.Size, reserved float64) float64 {
	if !img.Known() || !screen.Known() {
		return 1
	}
	widthScale := screen.W / img.W
	heightScale := (screen.H - reserved) / img.H
	if heightScale <= 0 {
		return widthScale
	}
	return math.Min(widthScale, heightScale)
}

// ZoomRange is the allowed zoom interval.
type ZoomRange struct {
	Min, Max float64
}

// NewZoomRange returns the range from the fitted scale to MaxZoomFactor
// times it.
func NewZoomRange(fit float64) ZoomRange {
	return ZoomRange{Min: fit, Max: fit * MaxZoomFactor}
}

// Clamp limits z to the range.
func (r ZoomRange) Clamp(z float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, z))
}

// CanvasSize returns the on-screen size of a photo of size img displayed at
// zoom.
func CanvasSize(img drawing.Size, zoom float64) drawing.Size {
	return drawing.Size{W: img.W * zoom, H: img.H * zoom}
}
