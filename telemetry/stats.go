package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Counts is a snapshot of how many balls are in each lifecycle state.
type Counts struct {
	Active  int `csv:"active"`
	Seeking int `csv:"seeking"`
	Stuck   int `csv:"stuck"`
	Erased  int `csv:"erased"`
}

// Total returns the number of balls.
func (c Counts) Total() int {
	return c.Active + c.Seeking + c.Stuck + c.Erased
}

// Settled returns the fraction of balls that have reached a terminal state.
func (c Counts) Settled() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Stuck+c.Erased) / float64(total)
}

// WindowStats holds aggregated statistics for a window of simulated time.
type WindowStats struct {
	RunID       string  `csv:"run_id"`
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"sim_time"`
	Frames      int     `csv:"frames"`

	// Lifecycle counts at window end
	Counts

	// Events during window
	Collisions    int `csv:"collisions"`
	Bounces       int `csv:"bounces"`
	SeeksStarted  int `csv:"seeks_started"`
	NewlyStuck    int `csv:"newly_stuck"`
	NewlyErased   int `csv:"newly_erased"`
	ShakeUps      int `csv:"shake_ups"`
	ShakeFailures int `csv:"shake_failures"`

	// Speed distribution of moving balls (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("active", s.Counts.Active),
		slog.Int("seeking", s.Counts.Seeking),
		slog.Int("stuck", s.Counts.Stuck),
		slog.Int("erased", s.Counts.Erased),
		slog.Int("collisions", s.Collisions),
		slog.Int("bounces", s.Bounces),
		slog.Int("shake_failures", s.ShakeFailures),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}

// LogStats logs the window via slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "run_id", s.RunID, "window", s)
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles of
// ball speeds. Returns zeros for an empty slice.
func ComputeSpeedStats(speeds []float64) (mean, std, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	mean, std = stat.PopMeanStdDev(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}
