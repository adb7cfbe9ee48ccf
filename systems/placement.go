package systems

import (
	"errors"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxFailedAttempts is the cumulative rejection budget for placement.
const DefaultMaxFailedAttempts = 1000

// ErrPlacementExhausted is returned when the rejection budget runs out before
// every ball has a slot. Callers should reduce the ball count and retry.
var ErrPlacementExhausted = errors.New("placement exhausted")

// PlacementError reports how far placement got before giving up.
type PlacementError struct {
	Requested int
	Placed    int
	Failures  int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placement exhausted: placed %d of %d balls after %d failed attempts",
		e.Placed, e.Requested, e.Failures)
}

// Is lets errors.Is match ErrPlacementExhausted.
func (e *PlacementError) Is(target error) bool {
	return target == ErrPlacementExhausted
}

// Placer draws random non-overlapping ball positions by rejection sampling
// against a spatial index. Overlap is tested on square bounding boxes, so two
// balls may end up further apart than strictly needed near their corners.
//
// The failure counter is shared by every call on the same Placer; once it
// exceeds MaxFailures all further calls fail immediately.
type Placer struct {
	Index       *SpatialIndex
	Width       float64
	Height      float64
	Diameter    float64
	MaxFailures int

	failures int
}

// NewPlacer creates a placer over the given index. A nil index starts empty.
func NewPlacer(index *SpatialIndex, width, height, diameter float64, maxFailures int) *Placer {
	if index == nil {
		index = NewSpatialIndex()
	}
	return &Placer{
		Index:       index,
		Width:       width,
		Height:      height,
		Diameter:    diameter,
		MaxFailures: maxFailures,
	}
}

// Place finds a free slot for ball index, inserts its box and returns its
// center. It returns false when the failure budget is spent.
func (p *Placer) Place(rng *rand.Rand, index int) (r2.Vec, bool) {
	radius := p.Diameter / 2
	for p.failures <= p.MaxFailures {
		x := rng.Float64()*(p.Width-p.Diameter) + radius
		y := rng.Float64()*(p.Height-p.Diameter) + radius

		box := BoxAround(x, y, p.Diameter, index)
		if p.Index.Collides(box) {
			p.failures++
			continue
		}

		p.Index.Insert(box)
		return r2.Vec{X: x, Y: y}, true
	}
	return r2.Vec{}, false
}

// Failures returns the number of rejected samples so far.
func (p *Placer) Failures() int {
	return p.failures
}

// GeneratePositions returns n non-overlapping positions as a flat x,y slice.
func GeneratePositions(rng *rand.Rand, n int, width, height, diameter float64, maxFailures int) ([]float64, error) {
	placer := NewPlacer(nil, width, height, diameter, maxFailures)
	positions := make([]float64, 0, n*2)

	for i := 0; i < n; i++ {
		pos, ok := placer.Place(rng, i)
		if !ok {
			return nil, &PlacementError{
				Requested: n,
				Placed:    i,
				Failures:  placer.Failures(),
			}
		}
		positions = append(positions, pos.X, pos.Y)
	}

	return positions, nil
}
