package tool

// Width slider bounds. The slider shows ten times the stroke width, so the
// stroke width itself ranges from 2 to 20 canvas units.
const (
	MinSlider     = 20
	MaxSlider     = 200
	DefaultSlider = 50
	sliderDivisor = 10
)

// ClampSlider limits v to the slider range.
func ClampSlider(v float64) float64 {
	if v < MinSlider {
		return MinSlider
	}
	if v > MaxSlider {
		return MaxSlider
	}
	return v
}

// StrokeWidth converts a slider value to a stroke width.
func StrokeWidth(slider float64) float64 {
	return ClampSlider(slider) / sliderDivisor
}

// SliderFor converts a stroke width back to its slider value.
func SliderFor(width float64) float64 {
	return ClampSlider(width * sliderDivisor)
}

// DefaultWidth is the stroke width of the default slider position.
func DefaultWidth() float64 { return StrokeWidth(DefaultSlider) }
