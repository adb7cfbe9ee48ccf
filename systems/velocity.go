package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Initial velocity defaults.
const (
	DefaultVelocityScale = 100.0 // px/s
	DefaultMinSpeedRatio = 0.4   // no component starts slower than this fraction of scale
)

// RandomVelocity draws one velocity. Each component has magnitude
// max(U(0,1), floor) * scale and a random sign.
func RandomVelocity(rng *rand.Rand, scale, floor float64) r2.Vec {
	return r2.Vec{
		X: randomComponent(rng, scale, floor),
		Y: randomComponent(rng, scale, floor),
	}
}

// GenerateVelocities returns n random velocities as a flat vx,vy slice.
func GenerateVelocities(rng *rand.Rand, n int, scale, floor float64) []float64 {
	velocities := make([]float64, n*2)
	for i := range velocities {
		velocities[i] = randomComponent(rng, scale, floor)
	}
	return velocities
}

func randomComponent(rng *rand.Rand, scale, floor float64) float64 {
	v := math.Max(rng.Float64(), floor) * scale
	if rng.Float64() < 0.5 {
		return -v
	}
	return v
}
