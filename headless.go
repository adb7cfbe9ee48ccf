package main

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/redraw/game"
)

type headlessOptions struct {
	DT           float64 // Fixed seconds per frame
	MaxFrames    int     // 0 = unlimited
	ShakeAt      float64 // Simulated time of a one-off shake-up (0 = never)
	UntilSettled bool    // Stop once every ball is stuck or erased
}

// runHeadless advances the simulation on a fixed clock until it settles, the
// frame limit is hit or ctx is cancelled.
func runHeadless(ctx context.Context, sim *game.Simulation, opts headlessOptions) {
	shaken := opts.ShakeAt <= 0

	for frame := 0; ; frame++ {
		if err := ctx.Err(); err != nil {
			slog.Info("headless run interrupted", "frame", frame, "reason", err)
			return
		}

		now := float64(frame) * opts.DT
		if !shaken && now >= opts.ShakeAt {
			sim.ShakeItUp()
			shaken = true
		}

		sim.Advance(opts.DT, now)

		if opts.MaxFrames > 0 && sim.Frame() >= opts.MaxFrames {
			slog.Info("max frames reached", "frame", sim.Frame())
			return
		}
		if opts.UntilSettled && sim.Done() {
			slog.Info("all balls settled", "frame", sim.Frame(), "elapsed", sim.Elapsed())
			return
		}
	}
}
