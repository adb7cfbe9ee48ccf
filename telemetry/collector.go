// Package telemetry collects per-window statistics and per-phase timing for
// the simulation and writes them out as CSV.
package telemetry

// Collector accumulates events within windows of simulated time and produces
// WindowStats.
type Collector struct {
	runID          string
	windowDuration float64

	// Current window tracking
	windowStart float64
	frames      int

	// Event counters for current window
	collisions    int
	bounces       int
	seeksStarted  int
	stuck         int
	erased        int
	shakeUps      int
	shakeFailures int
}

// NewCollector creates a new stats collector.
// windowDuration is the length of each stats window in simulated seconds.
func NewCollector(runID string, windowDuration float64) *Collector {
	if windowDuration <= 0 {
		windowDuration = 10
	}
	return &Collector{
		runID:          runID,
		windowDuration: windowDuration,
	}
}

// RecordFrame records one advanced frame.
func (c *Collector) RecordFrame() {
	c.frames++
}

// RecordCollision records a resolved ball-ball collision.
func (c *Collector) RecordCollision() {
	c.collisions++
}

// RecordBounce records a wall reflection.
func (c *Collector) RecordBounce() {
	c.bounces++
}

// RecordSeek records a ball that started seeking.
func (c *Collector) RecordSeek() {
	c.seeksStarted++
}

// RecordStuck records a ball that froze on its target.
func (c *Collector) RecordStuck() {
	c.stuck++
}

// RecordErased records a ball that ran out of seek time.
func (c *Collector) RecordErased() {
	c.erased++
}

// RecordShakeUp records a shake-up and how many balls could not be moved.
func (c *Collector) RecordShakeUp(failures int) {
	c.shakeUps++
	c.shakeFailures += failures
}

// ShouldFlush returns true if the current window has covered its duration.
func (c *Collector) ShouldFlush(elapsed float64) bool {
	return elapsed-c.windowStart >= c.windowDuration
}

// Flush produces a WindowStats and resets counters for the next window.
// speeds holds the speed of every moving ball at window end.
func (c *Collector) Flush(elapsed float64, counts Counts, speeds []float64) WindowStats {
	mean, std, p50, p90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		RunID:       c.runID,
		WindowStart: c.windowStart,
		WindowEnd:   elapsed,
		Frames:      c.frames,

		Counts: counts,

		Collisions:    c.collisions,
		Bounces:       c.bounces,
		SeeksStarted:  c.seeksStarted,
		NewlyStuck:    c.stuck,
		NewlyErased:   c.erased,
		ShakeUps:      c.shakeUps,
		ShakeFailures: c.shakeFailures,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	c.reset(elapsed)
	return stats
}

func (c *Collector) reset(elapsed float64) {
	c.windowStart = elapsed
	c.frames = 0
	c.collisions = 0
	c.bounces = 0
	c.seeksStarted = 0
	c.stuck = 0
	c.erased = 0
	c.shakeUps = 0
	c.shakeFailures = 0
}
