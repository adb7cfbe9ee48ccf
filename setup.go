package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/game"
	"github.com/pthm-cable/redraw/systems"
)

// loadDrawing reads the drawing at path, or generates the default one.
func loadDrawing(cfg *config.Config, path string, seed int64) (*game.Drawing, error) {
	if path != "" {
		return game.LoadDrawing(path)
	}

	rng := rand.New(rand.NewSource(seed))
	d, err := game.RandomDrawing(rng, cfg.Drawing.DefaultBallCount,
		cfg.Derived.Width, cfg.Derived.Height, cfg.Simulation.DotSize, cfg.Placement.MaxFailedAttempts)
	if err != nil {
		return nil, err
	}
	d.Recolor(cfg.Drawing.DefaultColor, cfg.Drawing.HighlightColor)
	return d, nil
}

// buildSimulation creates the simulation, thinning the drawing out whenever
// the canvas cannot fit every ball.
func buildSimulation(cfg *config.Config, drawing *game.Drawing, opts game.Options) (*game.Simulation, error) {
	for stride := 1; stride <= cfg.Drawing.MaxDownsample; stride *= 2 {
		d := drawing.Downsample(stride)

		sim, err := game.New(cfg, d, opts)
		if err == nil {
			if stride > 1 {
				slog.Warn("drawing down-sampled to fit the canvas",
					"stride", stride,
					"balls", d.Len(),
					"requested", drawing.Len(),
				)
			}
			return sim, nil
		}
		if !errors.Is(err, systems.ErrPlacementExhausted) {
			return nil, err
		}

		slog.Warn("placement exhausted, down-sampling", "stride", stride, "error", err)
	}

	return nil, fmt.Errorf("drawing with %d balls does not fit even at stride %d: %w",
		drawing.Len(), cfg.Drawing.MaxDownsample, systems.ErrPlacementExhausted)
}
