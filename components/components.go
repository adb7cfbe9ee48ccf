// Package components defines ECS components for the simulation.
package components

// NotSeeking marks a Lifecycle whose ball has not started seeking.
const NotSeeking = -1.0

// State is the lifecycle phase of a ball.
type State uint8

const (
	StateActive  State = iota // Free movement, colliding with other balls
	StateSeeking              // Travelling straight to its target
	StateStuck                // Frozen on its target
	StateErased               // Gave up seeking and left the canvas
)

// String returns the display name for a State.
func (s State) String() string {
	names := StateNames()
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// StateNames returns the display names for all states.
// The order matches the State constants.
func StateNames() []string {
	return []string{"Active", "Seeking", "Stuck", "Erased"}
}

// Ball carries the stable index of a ball. The index matches the ball's slot
// in the position and color buffers for the lifetime of the simulation.
type Ball struct {
	Index int
}

// Color is a normalized RGBA color.
type Color struct {
	R, G, B, A float32
}

// Lifecycle holds the seek-and-freeze timers and terminal flags of a ball.
type Lifecycle struct {
	Timeout   float64 // Elapsed time after which the ball starts seeking
	SeekStart float64 // Elapsed time seeking began, or NotSeeking
	Stuck     bool
	Erased    bool
}

// State derives the lifecycle phase from the flags.
func (l *Lifecycle) State() State {
	switch {
	case l.Erased:
		return StateErased
	case l.Stuck:
		return StateStuck
	case l.SeekStart != NotSeeking:
		return StateSeeking
	default:
		return StateActive
	}
}

// Terminal reports whether the ball is stuck or erased.
func (l *Lifecycle) Terminal() bool {
	return l.Stuck || l.Erased
}

// Seeking reports whether the ball is travelling to its target.
func (l *Lifecycle) Seeking() bool {
	return !l.Terminal() && l.SeekStart != NotSeeking
}

// Reset returns a non-terminal ball to the active state with a new timeout.
// Terminal balls are left untouched.
func (l *Lifecycle) Reset(timeout float64) {
	if l.Terminal() {
		return
	}
	l.SeekStart = NotSeeking
	l.Timeout = timeout
}
