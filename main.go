package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/game"
	"github.com/pthm-cable/redraw/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	drawingPath := flag.String("drawing", "", "Path to drawing JSON (empty = random drawing)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	shakeAt := flag.Float64("shake-at", 0, "Headless: request a shake-up at this simulated time (0 = never)")
	untilSettled := flag.Bool("until-settled", true, "Headless: stop once every ball is stuck or erased")
	showSummary := flag.Bool("summary", true, "Headless: print a run summary to stderr when done")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := uuid.NewString()

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	drawing, err := loadDrawing(cfg, *drawingPath, rngSeed)
	if err != nil {
		slog.Error("failed to load drawing", "error", err, "path", *drawingPath)
		os.Exit(1)
	}

	summary := &runSummary{}
	opts := game.Options{
		Seed:          rngSeed,
		RunID:         runID,
		Logger:        logger,
		LogStats:      *logStats,
		Output:        output,
		StatsCallback: summary.Record,
	}

	sim, err := buildSimulation(cfg, drawing, opts)
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		slog.Info("starting headless simulation",
			"run_id", runID,
			"seed", rngSeed,
			"balls", sim.Len(),
			"max_frames", *maxFrames,
		)

		runHeadless(ctx, sim, headlessOptions{
			DT:           cfg.Simulation.FixedDT,
			MaxFrames:    *maxFrames,
			ShakeAt:      *shakeAt,
			UntilSettled: *untilSettled,
		})
	} else {
		runWindow(cfg, sim, *maxFrames)
	}

	sim.FlushTelemetry()
	slog.Info("simulation finished",
		"run_id", runID,
		"frames", sim.Frame(),
		"elapsed", sim.Elapsed(),
		"counts", sim.Counts(),
	)

	if *headless && *showSummary {
		fmt.Fprintln(os.Stderr, summary.Render(runID, sim.Frame(), sim.Elapsed(), sim.Counts()))
	}
}
