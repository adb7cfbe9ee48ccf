// Package renderer draws the simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// BallRenderer draws balls straight from the simulation's flat buffers.
type BallRenderer struct {
	radius  float32
	width   float32
	height  float32
	outline bool
}

// NewBallRenderer creates a renderer for balls of the given diameter on a
// canvas of the given size.
func NewBallRenderer(dotSize, width, height float64) *BallRenderer {
	return &BallRenderer{
		radius: float32(dotSize / 2),
		width:  float32(width),
		height: float32(height),
	}
}

// SetOutline toggles a thin dark edge around each ball.
func (r *BallRenderer) SetOutline(outline bool) {
	r.outline = outline
}

// Draw renders every on-canvas ball. positions holds x,y pairs and colors
// RGBA quadruples in [0,1], both in ball index order.
func (r *BallRenderer) Draw(positions, colors []float32) {
	n := len(positions) / 2
	if len(colors) < 4*n {
		n = len(colors) / 4
	}

	for i := 0; i < n; i++ {
		x, y := positions[2*i], positions[2*i+1]

		// Erased balls are parked off-canvas
		if x < -r.radius || y < -r.radius || x > r.width+r.radius || y > r.height+r.radius {
			continue
		}

		color := ToColor(colors[4*i : 4*i+4])
		if r.outline {
			rl.DrawCircle(int32(x), int32(y), r.radius+1, rl.Color{R: 20, G: 20, B: 20, A: color.A})
		}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r.radius, color)
	}
}

// ToColor converts a float RGBA quadruple to a raylib color.
func ToColor(rgba []float32) rl.Color {
	return rl.Color{
		R: channel(rgba[0]),
		G: channel(rgba[1]),
		B: channel(rgba[2]),
		A: channel(rgba[3]),
	}
}

func channel(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
