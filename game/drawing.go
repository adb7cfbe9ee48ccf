package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"

	"github.com/pthm-cable/redraw/systems"
)

// ErrInvalidDrawing is returned for drawing data the simulation cannot use.
var ErrInvalidDrawing = errors.New("invalid drawing")

// Colors used by RandomDrawing.
var (
	DefaultColor   = []float64{0.6, 0.2, 0.8, 1.0}
	HighlightColor = []float64{1.0, 1.0, 0.0, 1.0}
)

// Drawing is the input to a simulation: one normalized x,y pair per ball and
// an optional flat color list, RGB or RGBA, as floats in [0,1] or bytes.
type Drawing struct {
	Title     string    `json:"title,omitempty"`
	Positions []float64 `json:"positions"`
	Colors    []float64 `json:"colors"`
}

// storedDrawing is the envelope drawings are saved in. Timestamps are kept as
// text: saved files use RFC 3339, older stores wrote "2006-01-02 15:04:05".
type storedDrawing struct {
	Title     string       `json:"title"`
	Data      *drawingData `json:"data"`
	CreatedAt string       `json:"created_at,omitempty"`
	UpdatedAt string       `json:"updated_at,omitempty"`
}

// drawingData is the data member of the envelope.
type drawingData struct {
	Positions []float64 `json:"positions"`
	Colors    []float64 `json:"colors"`
}

// LoadDrawing reads a drawing from a JSON file.
func LoadDrawing(path string) (*Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drawing: %w", err)
	}
	d, err := ParseDrawing(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseDrawing decodes either the stored envelope
// {title, data: {positions, colors}, ...} or a bare {positions, colors} object.
func ParseDrawing(data []byte) (*Drawing, error) {
	var stored storedDrawing
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDrawing, err)
	}

	var d *Drawing
	if stored.Data != nil {
		d = &Drawing{
			Title:     stored.Title,
			Positions: stored.Data.Positions,
			Colors:    stored.Data.Colors,
		}
	} else {
		d = &Drawing{}
		if err := json.Unmarshal(data, d); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDrawing, err)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// RandomDrawing builds the drawing used when none is supplied: n balls at
// random non-overlapping spots, all DefaultColor except the last, which is
// HighlightColor. maxFailures is the placement rejection budget.
func RandomDrawing(rng *rand.Rand, n int, width, height, dot float64, maxFailures int) (*Drawing, error) {
	positions, err := systems.GeneratePositions(rng, n, width, height, dot, maxFailures)
	if err != nil {
		return nil, fmt.Errorf("generating default drawing: %w", err)
	}

	for i := 0; i < len(positions); i += 2 {
		positions[i] /= width
		positions[i+1] /= height
	}

	d := &Drawing{Title: "random", Positions: positions}
	d.Recolor(DefaultColor, HighlightColor)
	return d, nil
}

// Len returns the number of balls in the drawing.
func (d *Drawing) Len() int {
	return len(d.Positions) / 2
}

// Validate checks that positions pair up and lie in the unit square.
func (d *Drawing) Validate() error {
	if d == nil || len(d.Positions) == 0 {
		return fmt.Errorf("%w: no positions", ErrInvalidDrawing)
	}
	if len(d.Positions)%2 != 0 {
		return fmt.Errorf("%w: odd positions length %d", ErrInvalidDrawing, len(d.Positions))
	}
	for i, v := range d.Positions {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: position %d of ball %d is %v, want [0,1]", ErrInvalidDrawing, i%2, i/2, v)
		}
	}
	return nil
}

// Recolor paints every ball base except the last, which gets highlight.
func (d *Drawing) Recolor(base, highlight []float64) {
	n := d.Len()
	d.Colors = make([]float64, 0, 4*n)
	for i := 0; i < n-1; i++ {
		d.Colors = append(d.Colors, base...)
	}
	if n > 0 {
		d.Colors = append(d.Colors, highlight...)
	}
}

// Targets scales the normalized positions to canvas pixels.
func (d *Drawing) Targets(width, height float64) []float64 {
	targets := make([]float64, len(d.Positions))
	for i := 0; i < len(d.Positions); i += 2 {
		targets[i] = d.Positions[i] * width
		targets[i+1] = d.Positions[i+1] * height
	}
	return targets
}

// channels returns how many color values each ball has, or 0 if the color
// list does not line up with the positions.
func (d *Drawing) channels() int {
	n := d.Len()
	switch len(d.Colors) {
	case 4 * n:
		return 4
	case 3 * n:
		return 3
	}
	return 0
}

// RGBA returns one RGBA quadruple per ball as floats in [0,1]. RGB input
// gets alpha 1. Byte input (any value above 1) is divided by 255. A color
// list that does not line up with the positions is replaced by fallback.
func (d *Drawing) RGBA(fallback []float64, logger *slog.Logger) []float32 {
	n := d.Len()
	out := make([]float32, 0, 4*n)

	ch := d.channels()
	if ch == 0 {
		if len(d.Colors) > 0 && logger != nil {
			logger.Warn("colors have unexpected length, expected RGB or RGBA",
				"colors", len(d.Colors),
				"balls", n,
			)
		}
		for i := 0; i < n; i++ {
			for _, c := range fallback {
				out = append(out, float32(c))
			}
		}
		return out
	}

	scale := 1.0
	for _, c := range d.Colors {
		if c > 1 {
			scale = 1.0 / 255
			break
		}
	}

	for i := 0; i < n; i++ {
		rgb := d.Colors[i*ch : i*ch+3]
		for _, c := range rgb {
			out = append(out, float32(clampUnit(c*scale)))
		}
		alpha := 1.0
		if ch == 4 {
			alpha = clampUnit(d.Colors[i*ch+3] * scale)
		}
		out = append(out, float32(alpha))
	}
	return out
}

// Downsample keeps every stride-th ball. A stride below 2 returns the
// drawing unchanged.
func (d *Drawing) Downsample(stride int) *Drawing {
	if stride < 2 {
		return d
	}

	ch := d.channels()
	out := &Drawing{Title: d.Title}
	for i := 0; i < d.Len(); i += stride {
		out.Positions = append(out.Positions, d.Positions[2*i], d.Positions[2*i+1])
		if ch > 0 {
			out.Colors = append(out.Colors, d.Colors[i*ch:(i+1)*ch]...)
		}
	}
	return out
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
