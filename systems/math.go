package systems

import "gonum.org/v1/gonum/spatial/r2"

// SegmentDistSq returns the squared distance from p to the segment a-b.
// A zero-length segment degrades to the distance from p to a.
func SegmentDistSq(a, b, p r2.Vec) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm2(r2.Sub(p, a))
	}

	t := clamp01(r2.Dot(r2.Sub(p, a), ab) / l2)
	closest := r2.Add(a, r2.Scale(t, ab))
	return r2.Norm2(r2.Sub(p, closest))
}

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
