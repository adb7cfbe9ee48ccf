// Package game owns the ball simulation: construction from drawing data, the
// per-frame Advance pipeline, the seek-and-freeze lifecycle and shake-ups.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/redraw/components"
	"github.com/pthm-cable/redraw/config"
	"github.com/pthm-cable/redraw/systems"
	"github.com/pthm-cable/redraw/telemetry"
)

// ErasedPosition is where erased balls are parked, well off the canvas.
var ErasedPosition = components.Position{X: -1000, Y: -1000}

// Options configures a simulation run beyond the shared config.
type Options struct {
	Seed          int64                             // RNG seed (0 = time-based)
	RunID         string                            // Identifier stamped on logs and CSV rows (empty = random UUID)
	Logger        *slog.Logger                      // Defaults to slog.Default()
	LogStats      bool                              // Log window and perf stats via slog
	Output        *telemetry.OutputManager          // Optional CSV output
	StatsCallback func(stats telemetry.WindowStats) // Called on every stats window flush
}

// BallState is a copy of one ball's components, for inspection and tests.
type BallState struct {
	Index     int
	Position  components.Position
	Velocity  components.Velocity
	Target    components.Target
	Lifecycle components.Lifecycle
	Color     components.Color
}

// State returns the ball's lifecycle phase.
func (b BallState) State() components.State {
	return b.Lifecycle.State()
}

// Simulation holds the complete state of one run. It is not safe for
// concurrent use; a single frame driver calls Advance once per frame.
type Simulation struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	logger *slog.Logger
	runID  string

	// Entity mappers
	ballMapper *ecs.Map6[
		components.Position,
		components.Velocity,
		components.Target,
		components.Lifecycle,
		components.Color,
		components.Ball,
	]
	ballFilter *ecs.Filter3[components.Position, components.Velocity, components.Lifecycle]

	// Individual component mappers for index-ordered access
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	targetMap *ecs.Map1[components.Target]
	lifeMap   *ecs.Map1[components.Lifecycle]
	colorMap  *ecs.Map1[components.Color]

	// Entities by stable ball index
	balls []ecs.Entity

	// Geometry
	bounds     systems.Bounds
	dotSize    float64
	radius     float64
	snapDistSq float64

	// Clock
	started   bool
	startTime float64
	elapsed   float64
	frame     int

	shouldShakeItUp bool

	// Per-frame scratch, reused across frames
	boxes      []systems.Box
	candidates []systems.Box
	consumed   []bool

	// Render buffers
	positions []float32
	colors    []float32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(stats telemetry.WindowStats)
}

// New builds a simulation from drawing data. Ball targets are the drawing's
// normalized positions scaled to the canvas; starting positions are random
// and non-overlapping. It returns an error wrapping
// systems.ErrPlacementExhausted if the canvas cannot fit the drawing, in which
// case the caller should down-sample and retry.
func New(cfg *config.Config, drawing *Drawing, opts Options) (*Simulation, error) {
	if err := drawing.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()

	s := &Simulation{
		cfg:    cfg,
		world:  world,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With("run_id", runID),
		runID:  runID,
		ballMapper: ecs.NewMap6[
			components.Position,
			components.Velocity,
			components.Target,
			components.Lifecycle,
			components.Color,
			components.Ball,
		](world),
		ballFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Lifecycle](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		targetMap:  ecs.NewMap1[components.Target](world),
		lifeMap:    ecs.NewMap1[components.Lifecycle](world),
		colorMap:   ecs.NewMap1[components.Color](world),
		bounds: systems.Bounds{
			Width:  cfg.Derived.Width,
			Height: cfg.Derived.Height,
		},
		dotSize:       cfg.Simulation.DotSize,
		radius:        cfg.Derived.Radius,
		snapDistSq:    cfg.Derived.SnapDistSq,
		collector:     telemetry.NewCollector(runID, cfg.Telemetry.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	if err := s.spawnBalls(drawing); err != nil {
		return nil, err
	}

	s.logger.Info("simulation created",
		"balls", len(s.balls),
		"width", s.bounds.Width,
		"height", s.bounds.Height,
		"dot_size", s.dotSize,
		"seed", seed,
	)

	return s, nil
}

// spawnBalls creates one entity per drawing point, in index order.
func (s *Simulation) spawnBalls(drawing *Drawing) error {
	n := drawing.Len()
	simCfg := s.cfg.Simulation

	start, err := systems.GeneratePositions(s.rng, n, s.bounds.Width, s.bounds.Height,
		s.dotSize, s.cfg.Placement.MaxFailedAttempts)
	if err != nil {
		return fmt.Errorf("placing %d balls: %w", n, err)
	}
	velocities := systems.GenerateVelocities(s.rng, n, simCfg.VelocityScale, simCfg.MinSpeedRatio)
	targets := drawing.Targets(s.bounds.Width, s.bounds.Height)

	s.colors = drawing.RGBA(s.cfg.Drawing.DefaultColor, s.logger)
	s.positions = make([]float32, 2*n)
	s.balls = make([]ecs.Entity, n)
	s.consumed = make([]bool, n)
	s.boxes = make([]systems.Box, 0, n)

	for i := 0; i < n; i++ {
		pos := components.Position{X: start[2*i], Y: start[2*i+1]}
		vel := components.Velocity{X: velocities[2*i], Y: velocities[2*i+1]}
		target := components.Target{X: targets[2*i], Y: targets[2*i+1]}
		life := components.Lifecycle{
			Timeout:   s.randomTimeout(),
			SeekStart: components.NotSeeking,
		}
		color := components.Color{
			R: s.colors[4*i],
			G: s.colors[4*i+1],
			B: s.colors[4*i+2],
			A: s.colors[4*i+3],
		}
		ball := components.Ball{Index: i}

		s.balls[i] = s.ballMapper.NewEntity(&pos, &vel, &target, &life, &color, &ball)
	}

	s.writePositions()
	return nil
}

// randomTimeout draws a seek timeout relative to the current elapsed time.
func (s *Simulation) randomTimeout() float64 {
	lc := s.cfg.Lifecycle
	return s.elapsed + lc.TimeoutMin + s.rng.Float64()*s.cfg.Derived.TimeoutSpan
}

// ShakeItUp requests a shake-up. It takes effect at the start of the next
// Advance call.
func (s *Simulation) ShakeItUp() {
	s.shouldShakeItUp = true
}

// ShakePending reports whether a shake-up is waiting for the next frame.
func (s *Simulation) ShakePending() bool {
	return s.shouldShakeItUp
}

// Len returns the number of balls.
func (s *Simulation) Len() int {
	return len(s.balls)
}

// Elapsed returns the simulated seconds since the first frame.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Frame returns the number of frames advanced so far.
func (s *Simulation) Frame() int {
	return s.frame
}

// RunID returns the identifier of this run.
func (s *Simulation) RunID() string {
	return s.runID
}

// Bounds returns the canvas size.
func (s *Simulation) Bounds() systems.Bounds {
	return s.bounds
}

// DotSize returns the ball diameter in pixels.
func (s *Simulation) DotSize() float64 {
	return s.dotSize
}

// Positions returns the flat x,y buffer of every ball, in ball index order.
// Erased balls sit at ErasedPosition. The slice is reused by the next Advance.
func (s *Simulation) Positions() []float32 {
	return s.positions
}

// Colors returns the flat RGBA buffer of every ball, in ball index order.
func (s *Simulation) Colors() []float32 {
	return s.colors
}

// Ball returns a copy of ball i's state.
func (s *Simulation) Ball(i int) BallState {
	e := s.balls[i]
	return BallState{
		Index:     i,
		Position:  *s.posMap.Get(e),
		Velocity:  *s.velMap.Get(e),
		Target:    *s.targetMap.Get(e),
		Lifecycle: *s.lifeMap.Get(e),
		Color:     *s.colorMap.Get(e),
	}
}

// Counts returns how many balls are in each lifecycle state.
func (s *Simulation) Counts() telemetry.Counts {
	var c telemetry.Counts
	query := s.ballFilter.Query()
	for query.Next() {
		_, _, life := query.Get()
		switch life.State() {
		case components.StateActive:
			c.Active++
		case components.StateSeeking:
			c.Seeking++
		case components.StateStuck:
			c.Stuck++
		case components.StateErased:
			c.Erased++
		}
	}
	return c
}

// Done reports whether every ball has reached a terminal state.
func (s *Simulation) Done() bool {
	c := s.Counts()
	return c.Active == 0 && c.Seeking == 0
}

// PerfStats returns the rolling per-phase timing.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perfCollector.Stats()
}

func vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}
