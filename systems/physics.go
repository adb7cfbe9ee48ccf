package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/redraw/components"
)

// Bounds represents the canvas the balls live in.
type Bounds struct {
	Width, Height float64
}

// Reflect flips each velocity component that points further into a wall the
// ball is already touching. Returns true if anything changed.
func (b Bounds) Reflect(pos components.Position, vel *components.Velocity, radius float64) bool {
	bounced := false
	if (pos.X <= radius && vel.X < 0) || (pos.X >= b.Width-radius && vel.X > 0) {
		vel.X = -vel.X
		bounced = true
	}
	if (pos.Y <= radius && vel.Y < 0) || (pos.Y >= b.Height-radius && vel.Y > 0) {
		vel.Y = -vel.Y
		bounced = true
	}
	return bounced
}

// Step returns the explicit Euler position after dt seconds.
func Step(pos components.Position, vel components.Velocity, dt float64) r2.Vec {
	return r2.Vec{X: pos.X + vel.X*dt, Y: pos.Y + vel.Y*dt}
}

// SeekVelocity returns a velocity of the given speed pointing from pos to
// target. A ball already on its target gets zero velocity.
func SeekVelocity(pos, target r2.Vec, speed float64) r2.Vec {
	d := r2.Sub(target, pos)
	n := r2.Norm(d)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(speed/n, d)
}
