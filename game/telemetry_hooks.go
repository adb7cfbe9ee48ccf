package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// flushTelemetry checks if the stats window should be flushed.
func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush(s.elapsed) {
		return
	}
	s.FlushTelemetry()
}

// FlushTelemetry closes the current stats window regardless of its length.
// Drivers call it once more after the last frame so the tail is not lost.
func (s *Simulation) FlushTelemetry() {
	stats := s.collector.Flush(s.elapsed, s.Counts(), s.sampleSpeeds())
	perfStats := s.perfCollector.Stats()

	// Call stats callback if provided
	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if s.output != nil {
		if err := s.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := s.output.WritePerf(perfStats, s.runID, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleSpeeds collects the speed of every ball still moving on its own.
func (s *Simulation) sampleSpeeds() []float64 {
	speeds := make([]float64, 0, len(s.balls))

	query := s.ballFilter.Query()
	for query.Next() {
		_, vel, life := query.Get()
		if life.Terminal() {
			continue
		}
		speeds = append(speeds, r2.Norm(vec(vel.X, vel.Y)))
	}

	return speeds
}
