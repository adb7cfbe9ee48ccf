package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"
)

const tol = 1e-9

func vecNear(a, b r2.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func genVec(t *rapid.T, label string, lo, hi float64) r2.Vec {
	return r2.Vec{
		X: rapid.Float64Range(lo, hi).Draw(t, label+"_x"),
		Y: rapid.Float64Range(lo, hi).Draw(t, label+"_y"),
	}
}

// TestResolveHeadOn verifies the x velocities swap in a head-on hit.
func TestResolveHeadOn(t *testing.T) {
	tests := []struct {
		name           string
		p1, v1, p2, v2 r2.Vec
		want1, want2   r2.Vec
	}{
		{
			name:  "horizontal",
			p1:    r2.Vec{X: 10, Y: 10},
			v1:    r2.Vec{X: 5, Y: 0},
			p2:    r2.Vec{X: 12, Y: 10},
			v2:    r2.Vec{X: -5, Y: 0},
			want1: r2.Vec{X: -5, Y: 0},
			want2: r2.Vec{X: 5, Y: 0},
		},
		{
			name:  "vertical",
			p1:    r2.Vec{X: 0, Y: 0},
			v1:    r2.Vec{X: 0, Y: 3},
			p2:    r2.Vec{X: 0, Y: 2},
			v2:    r2.Vec{X: 0, Y: -1},
			want1: r2.Vec{X: 0, Y: -1},
			want2: r2.Vec{X: 0, Y: 3},
		},
		{
			name:  "moving ball hits resting ball",
			p1:    r2.Vec{X: 0, Y: 0},
			v1:    r2.Vec{X: 4, Y: 0},
			p2:    r2.Vec{X: 3, Y: 0},
			v2:    r2.Vec{},
			want1: r2.Vec{},
			want2: r2.Vec{X: 4, Y: 0},
		},
		{
			name:  "glancing keeps tangential part",
			p1:    r2.Vec{X: 0, Y: 0},
			v1:    r2.Vec{X: 2, Y: 7},
			p2:    r2.Vec{X: 3, Y: 0},
			v2:    r2.Vec{X: -1, Y: 0},
			want1: r2.Vec{X: -1, Y: 7},
			want2: r2.Vec{X: 2, Y: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got1, got2 := Resolve(tc.p1, tc.v1, tc.p2, tc.v2)
			if !vecNear(got1, tc.want1, tol) || !vecNear(got2, tc.want2, tol) {
				t.Errorf("Resolve() = %v, %v, want %v, %v", got1, got2, tc.want1, tc.want2)
			}
		})
	}
}

// TestResolveSeparating verifies a separating pair is left alone, every time.
func TestResolveSeparating(t *testing.T) {
	p1 := r2.Vec{X: 10, Y: 10}
	p2 := r2.Vec{X: 12, Y: 10}
	v1 := r2.Vec{X: -5, Y: 1}
	v2 := r2.Vec{X: 5, Y: -2}

	got1, got2 := Resolve(p1, v1, p2, v2)
	if got1 != v1 || got2 != v2 {
		t.Fatalf("first Resolve() = %v, %v, want unchanged %v, %v", got1, got2, v1, v2)
	}
	again1, again2 := Resolve(p1, got1, p2, got2)
	if again1 != got1 || again2 != got2 {
		t.Errorf("second Resolve() = %v, %v, want unchanged %v, %v", again1, again2, got1, got2)
	}
}

func TestResolveConservesEnergy(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := genVec(t, "p1", -100, 100)
		p2 := genVec(t, "p2", -100, 100)
		if r2.Norm(r2.Sub(p1, p2)) < 1e-6 {
			t.Skip("coincident centers")
		}
		v1 := genVec(t, "v1", -200, 200)
		v2 := genVec(t, "v2", -200, 200)

		before := r2.Norm2(v1) + r2.Norm2(v2)
		n1, n2 := Resolve(p1, v1, p2, v2)
		after := r2.Norm2(n1) + r2.Norm2(n2)

		if math.Abs(before-after) > 1e-9*math.Max(1, before) {
			t.Fatalf("energy changed: before %v, after %v", before, after)
		}
	})
}

func TestResolveConservesMomentum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := genVec(t, "p1", -100, 100)
		p2 := genVec(t, "p2", -100, 100)
		if r2.Norm(r2.Sub(p1, p2)) < 1e-6 {
			t.Skip("coincident centers")
		}
		v1 := genVec(t, "v1", -200, 200)
		v2 := genVec(t, "v2", -200, 200)

		n1, n2 := Resolve(p1, v1, p2, v2)
		if !vecNear(r2.Add(v1, v2), r2.Add(n1, n2), 1e-9) {
			t.Fatalf("momentum changed: before %v, after %v", r2.Add(v1, v2), r2.Add(n1, n2))
		}
	})
}

func TestResolveSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := genVec(t, "p1", -100, 100)
		p2 := genVec(t, "p2", -100, 100)
		if r2.Norm(r2.Sub(p1, p2)) < 1e-6 {
			t.Skip("coincident centers")
		}
		v1 := genVec(t, "v1", -200, 200)
		v2 := genVec(t, "v2", -200, 200)

		a1, a2 := Resolve(p1, v1, p2, v2)
		b2, b1 := Resolve(p2, v2, p1, v1)

		if !vecNear(a1, b1, 1e-9) || !vecNear(a2, b2, 1e-9) {
			t.Fatalf("asymmetric: (%v, %v) vs swapped (%v, %v)", a1, a2, b1, b2)
		}
	})
}

func TestResolveSeparatingIsNoop(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1 := genVec(t, "p1", -100, 100)
		p2 := genVec(t, "p2", -100, 100)
		d := r2.Sub(p1, p2)
		if r2.Norm(d) < 1e-6 {
			t.Skip("coincident centers")
		}
		unit := r2.Scale(1/r2.Norm(d), d)
		perp := r2.Vec{X: -unit.Y, Y: unit.X}

		// Build velocities that point apart along the line of centers.
		away1 := rapid.Float64Range(0.01, 200).Draw(t, "away1")
		away2 := rapid.Float64Range(0.01, 200).Draw(t, "away2")
		side1 := rapid.Float64Range(-200, 200).Draw(t, "side1")
		side2 := rapid.Float64Range(-200, 200).Draw(t, "side2")
		v1 := r2.Add(r2.Scale(away1, unit), r2.Scale(side1, perp))
		v2 := r2.Add(r2.Scale(-away2, unit), r2.Scale(side2, perp))
		if !(r2.Dot(v1, d) > 0 && r2.Dot(v2, d) < 0) {
			t.Skip("rounding flipped a sign")
		}

		n1, n2 := Resolve(p1, v1, p2, v2)
		if n1 != v1 || n2 != v2 {
			t.Fatalf("separating pair changed: %v, %v -> %v, %v", v1, v2, n1, n2)
		}
		m1, m2 := Resolve(p1, n1, p2, n2)
		if m1 != n1 || m2 != n2 {
			t.Fatalf("second call changed the pair: %v, %v -> %v, %v", n1, n2, m1, m2)
		}
	})
}

func TestOverlapping(t *testing.T) {
	a := r2.Vec{X: 0, Y: 0}
	if !Overlapping(a, r2.Vec{X: 4, Y: 0}, 4) {
		t.Error("balls exactly one diameter apart should overlap")
	}
	// Square boxes touch at the corner, circles do not
	if Overlapping(a, r2.Vec{X: 3.9, Y: 3.9}, 4) {
		t.Error("corner-only box overlap should not count")
	}
}
