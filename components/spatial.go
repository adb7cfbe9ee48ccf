package components

// Position represents a ball's canvas position in pixels.
type Position struct {
	X, Y float64
}

// Velocity represents a ball's velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Target is the pixel a ball came from in the drawing.
// It is set once at creation and never changes.
type Target struct {
	X, Y float64
}
