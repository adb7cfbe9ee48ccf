package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Resolve returns the velocities of two equal-mass balls after an elastic
// collision. Velocities are rotated into the frame whose x axis runs along the
// line of centers, the x components are exchanged, and the result is rotated
// back.
//
// A pair that is already separating along the line of centers is returned
// unchanged so an overlap that persists for a few frames is not resolved
// again. Coincident centers are not special-cased.
func Resolve(p1, v1, p2, v2 r2.Vec) (r2.Vec, r2.Vec) {
	d := r2.Sub(p1, p2)

	if r2.Dot(v1, d) > 0 && r2.Dot(v2, d) < 0 {
		return v1, v2
	}

	phi := math.Atan2(d.Y, d.X)
	var origin r2.Vec

	u1 := r2.Rotate(v1, -phi, origin)
	u2 := r2.Rotate(v2, -phi, origin)
	u1.X, u2.X = u2.X, u1.X

	return r2.Rotate(u1, phi, origin), r2.Rotate(u2, phi, origin)
}

// Overlapping reports whether two balls of the same diameter touch.
func Overlapping(p1, p2 r2.Vec, diameter float64) bool {
	return r2.Norm2(r2.Sub(p1, p2)) <= diameter*diameter
}
