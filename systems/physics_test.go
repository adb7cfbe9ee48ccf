package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/redraw/components"
)

func TestBoundsReflect(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	const radius = 2

	tests := []struct {
		name    string
		pos     components.Position
		vel     components.Velocity
		want    components.Velocity
		bounced bool
	}{
		{"left wall", components.Position{X: 2, Y: 25}, components.Velocity{X: -5, Y: 1}, components.Velocity{X: 5, Y: 1}, true},
		{"left wall moving away", components.Position{X: 2, Y: 25}, components.Velocity{X: 5, Y: 1}, components.Velocity{X: 5, Y: 1}, false},
		{"right wall", components.Position{X: 99, Y: 25}, components.Velocity{X: 3, Y: 0}, components.Velocity{X: -3, Y: 0}, true},
		{"corner", components.Position{X: 1, Y: 49}, components.Velocity{X: -1, Y: 2}, components.Velocity{X: 1, Y: -2}, true},
		{"middle", components.Position{X: 50, Y: 25}, components.Velocity{X: -7, Y: -7}, components.Velocity{X: -7, Y: -7}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vel := tc.vel
			bounced := b.Reflect(tc.pos, &vel, radius)
			if vel != tc.want || bounced != tc.bounced {
				t.Errorf("Reflect() = %+v (%v), want %+v (%v)", vel, bounced, tc.want, tc.bounced)
			}
		})
	}
}

func TestSeekVelocity(t *testing.T) {
	v := SeekVelocity(r2.Vec{X: 0, Y: 0}, r2.Vec{X: 30, Y: 40}, 100)
	if math.Abs(v.X-60) > 1e-9 || math.Abs(v.Y-80) > 1e-9 {
		t.Errorf("SeekVelocity() = %v, want (60, 80)", v)
	}

	if v := SeekVelocity(r2.Vec{X: 5, Y: 5}, r2.Vec{X: 5, Y: 5}, 100); v != (r2.Vec{}) {
		t.Errorf("SeekVelocity() on target = %v, want zero", v)
	}
}

func TestSegmentDistSq(t *testing.T) {
	tests := []struct {
		name    string
		a, b, p r2.Vec
		want    float64
	}{
		{"perpendicular foot inside", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 5, Y: 3}, 9},
		{"beyond end", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, r2.Vec{X: 13, Y: 4}, 25},
		{"before start", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 0}, r2.Vec{X: -3, Y: 0}, 9},
		{"degenerate segment", r2.Vec{X: 1, Y: 1}, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}, 25},
		{"on segment", r2.Vec{X: 0, Y: 0}, r2.Vec{X: 10, Y: 10}, r2.Vec{X: 5, Y: 5}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentDistSq(tc.a, tc.b, tc.p); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("SegmentDistSq() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStep(t *testing.T) {
	got := Step(components.Position{X: 1, Y: 2}, components.Velocity{X: 10, Y: -20}, 0.5)
	if got != (r2.Vec{X: 6, Y: -8}) {
		t.Errorf("Step() = %v, want (6, -8)", got)
	}
}
