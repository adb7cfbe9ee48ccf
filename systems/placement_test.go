package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

func chebyshev(ax, ay, bx, by float64) float64 {
	return math.Max(math.Abs(ax-bx), math.Abs(ay-by))
}

func TestGeneratePositionsNonOverlapping(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 60).Draw(t, "n")
		diameter := rapid.Float64Range(1, 8).Draw(t, "diameter")
		width := rapid.Float64Range(200, 600).Draw(t, "width")
		height := rapid.Float64Range(200, 600).Draw(t, "height")
		seed := rapid.Int64().Draw(t, "seed")

		rng := rand.New(rand.NewSource(seed))
		positions, err := GeneratePositions(rng, n, width, height, diameter, DefaultMaxFailedAttempts)
		if err != nil {
			t.Fatalf("GeneratePositions error: %v", err)
		}
		if len(positions) != 2*n {
			t.Fatalf("len = %d, want %d", len(positions), 2*n)
		}

		radius := diameter / 2
		for i := 0; i < n; i++ {
			x, y := positions[2*i], positions[2*i+1]
			if x < radius || x > width-radius || y < radius || y > height-radius {
				t.Fatalf("ball %d at (%v, %v) outside the canvas", i, x, y)
			}
			for j := i + 1; j < n; j++ {
				d := chebyshev(x, y, positions[2*j], positions[2*j+1])
				if d < diameter {
					t.Fatalf("balls %d and %d only %v apart, want >= %v", i, j, d, diameter)
				}
			}
		}
	})
}

func TestGeneratePositionsExhausted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// A 10x10 canvas fits at most a handful of 4px boxes.
	_, err := GeneratePositions(rng, 100, 10, 10, 4, DefaultMaxFailedAttempts)
	if err == nil {
		t.Fatal("expected an error for an overfull canvas")
	}
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Errorf("error %v is not ErrPlacementExhausted", err)
	}

	var perr *PlacementError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *PlacementError", err)
	}
	if perr.Requested != 100 {
		t.Errorf("Requested = %d, want 100", perr.Requested)
	}
	if perr.Placed >= 100 || perr.Placed < 1 {
		t.Errorf("Placed = %d, want between 1 and 99", perr.Placed)
	}
	if perr.Failures != DefaultMaxFailedAttempts+1 {
		t.Errorf("Failures = %d, want %d", perr.Failures, DefaultMaxFailedAttempts+1)
	}
}

func TestPlacerBudgetIsCumulative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	placer := NewPlacer(nil, 10, 10, 4, 5)

	placed := 0
	for i := 0; i < 50; i++ {
		if _, ok := placer.Place(rng, i); ok {
			placed++
		}
	}

	if placer.Failures() != 6 {
		t.Errorf("Failures() = %d, want 6", placer.Failures())
	}
	if placed == 0 || placed == 50 {
		t.Errorf("placed = %d, want some but not all", placed)
	}

	// Once spent, the budget stays spent even for an easy slot.
	placer.Index = NewSpatialIndex()
	if _, ok := placer.Place(rng, 99); ok {
		t.Error("Place succeeded after the budget was spent")
	}
}

func TestPlacerAvoidsSeededBoxes(t *testing.T) {
	index := NewSpatialIndex()
	// Block the left half of a 100x20 canvas.
	for x := 2.0; x < 50; x += 4 {
		for y := 2.0; y < 20; y += 4 {
			index.Insert(BoxAround(x, y, 4, -1))
		}
	}
	blocked := index.Len()

	rng := rand.New(rand.NewSource(3))
	placer := NewPlacer(index, 100, 20, 4, DefaultMaxFailedAttempts)
	for i := 0; i < 10; i++ {
		pos, ok := placer.Place(rng, i)
		if !ok {
			t.Fatalf("ball %d could not be placed", i)
		}
		if pos.X < 50 {
			t.Errorf("ball %d placed at x=%v inside the blocked half", i, pos.X)
		}
	}
	if index.Len() != blocked+10 {
		t.Errorf("index holds %d boxes, want %d", index.Len(), blocked+10)
	}
}
