package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/game"
	"github.com/pthm-cable/redraw/systems"
	"github.com/pthm-cable/redraw/telemetry"
)

func testOptions() game.Options {
	return game.Options{Seed: 1, RunID: "test", Logger: slog.New(slog.DiscardHandler)}
}

func TestBuildSimulationDownsamples(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 40, 40
	cfg.ComputeDerived()

	drawing := &game.Drawing{Positions: make([]float64, 2*200)}
	sim, err := buildSimulation(cfg, drawing, testOptions())
	if err != nil {
		t.Fatalf("buildSimulation error: %v", err)
	}
	if sim.Len() == 0 || sim.Len() >= 200 {
		t.Errorf("Len() = %d, want a down-sampled drawing", sim.Len())
	}
}

func TestBuildSimulationGivesUp(t *testing.T) {
	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 5, 5
	cfg.Drawing.MaxDownsample = 1
	cfg.ComputeDerived()

	drawing := &game.Drawing{Positions: []float64{0.1, 0.1, 0.9, 0.9}}
	_, err := buildSimulation(cfg, drawing, testOptions())
	if !errors.Is(err, systems.ErrPlacementExhausted) {
		t.Errorf("err = %v, want ErrPlacementExhausted", err)
	}
}

func TestLoadDrawingDefault(t *testing.T) {
	cfg := config.Default()
	cfg.Drawing.DefaultBallCount = 50

	d, err := loadDrawing(cfg, "", 1)
	if err != nil {
		t.Fatalf("loadDrawing error: %v", err)
	}
	if d.Len() != 50 {
		t.Errorf("Len() = %d, want 50", d.Len())
	}
	if len(d.Colors) != 200 {
		t.Errorf("len(Colors) = %d, want 200", len(d.Colors))
	}
}

func TestRunHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Lifecycle.TimeoutMin = 0.1
	cfg.Lifecycle.TimeoutMax = 0.2
	cfg.Lifecycle.SeekTimeout = 1
	cfg.ComputeDerived()

	drawing, err := loadDrawing(cfg, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	sim, err := buildSimulation(cfg, drawing.Downsample(10), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	runHeadless(context.Background(), sim, headlessOptions{
		DT:           cfg.Simulation.FixedDT,
		MaxFrames:    1000,
		ShakeAt:      0.05,
		UntilSettled: true,
	})

	if !sim.Done() {
		t.Errorf("simulation not settled after %d frames: %+v", sim.Frame(), sim.Counts())
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	cfg := config.Default()
	drawing := &game.Drawing{Positions: []float64{0.5, 0.5}}
	sim, err := buildSimulation(cfg, drawing, testOptions())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runHeadless(ctx, sim, headlessOptions{DT: cfg.Simulation.FixedDT})

	if sim.Frame() != 0 {
		t.Errorf("Frame() = %d, want 0 after cancelled context", sim.Frame())
	}
}

func TestRunSummary(t *testing.T) {
	var r runSummary
	r.Record(telemetry.WindowStats{Counts: telemetry.Counts{Active: 3, Stuck: 1}, Collisions: 4})
	r.Record(telemetry.WindowStats{Counts: telemetry.Counts{Stuck: 3, Erased: 1}, Collisions: 2, ShakeUps: 1})

	if r.collisions != 6 || r.shakeUps != 1 {
		t.Errorf("collisions, shakeUps = %d, %d; want 6, 1", r.collisions, r.shakeUps)
	}
	if len(r.settled) != 2 || r.settled[0] != 25 || r.settled[1] != 100 {
		t.Errorf("settled = %v, want [25 100]", r.settled)
	}

	out := r.Render("run-1", 120, 2, telemetry.Counts{Stuck: 3, Erased: 1})
	for _, want := range []string{"run-1", "Collisions", "Settled %"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
