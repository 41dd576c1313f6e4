package drawing

// Gesture is one event of a pointer drag, in canvas space.
type Gesture struct {
	Pos Point
	// Start is set on the first event of a drag.
	Start bool
}

// IsGestureStart reports whether a drag with the given net translation since
// pointer-down is at its first event.
func IsGestureStart(translation Point) bool {
	return translation.IsZero()
}

// Apply feeds g into the drawing with brush.
func (d *Drawing) Apply(g Gesture, brush Brush) {
	d.BeginOrContinue(g.Pos, brush, g.Start)
}
