package game

import (
	"github.com/pthm-cable/redraw/components"
	"github.com/pthm-cable/redraw/systems"
	"github.com/pthm-cable/redraw/telemetry"
)

// Advance runs one frame. dt is the seconds since the previous frame and now
// is the frame driver's clock in seconds. Phases run in a fixed order and
// each one sees the writes of the ones before it. dt is not clamped.
func (s *Simulation) Advance(dt, now float64) {
	s.perfCollector.StartTick()

	// 1. Shake-up requested since the last frame
	s.perfCollector.StartPhase(telemetry.PhaseShakeUp)
	if s.shouldShakeItUp {
		s.shakeUp()
		s.shouldShakeItUp = false
	}

	// 2. Clock
	if !s.started {
		s.started = true
		s.startTime = now
	}
	s.elapsed = now - s.startTime

	// 3. Wall reflection
	s.perfCollector.StartPhase(telemetry.PhaseBoundary)
	s.reflectWalls()

	// 4. Broad phase
	s.perfCollector.StartPhase(telemetry.PhaseBroadPhase)
	index := s.buildIndex()

	// 5. Narrow phase
	s.perfCollector.StartPhase(telemetry.PhaseNarrowPhase)
	s.resolveCollisions(index)

	// 6. Lifecycle transitions
	s.perfCollector.StartPhase(telemetry.PhaseLifecycle)
	s.updateLifecycle()

	// 7. Integration and snap-to-target
	s.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	s.integrate(dt)

	// 8. Render buffer and telemetry
	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.writePositions()
	s.frame++
	s.collector.RecordFrame()
	s.flushTelemetry()

	s.perfCollector.EndTick()
}

// reflectWalls bounces every non-erased ball off the canvas edges.
// Stuck balls take part but have zero velocity, so nothing changes for them.
func (s *Simulation) reflectWalls() {
	query := s.ballFilter.Query()
	for query.Next() {
		pos, vel, life := query.Get()
		if life.Erased {
			continue
		}
		if s.bounds.Reflect(*pos, vel, s.radius) {
			s.collector.RecordBounce()
		}
	}
}

// buildIndex loads a fresh spatial index with the boxes of every moving ball.
// s.boxes is left in ascending ball index order for the narrow phase.
func (s *Simulation) buildIndex() *systems.SpatialIndex {
	s.boxes = s.boxes[:0]
	for i, e := range s.balls {
		if s.lifeMap.Get(e).Terminal() {
			continue
		}
		pos := s.posMap.Get(e)
		s.boxes = append(s.boxes, systems.BoxAround(pos.X, pos.Y, s.dotSize, i))
	}

	index := systems.NewSpatialIndex()
	index.Load(s.boxes)
	return index
}

// resolveCollisions resolves at most one collision per ball. Balls are
// visited in index order; each takes the last candidate from its query that
// is not itself, is not already taken this frame and really touches it.
// Remaining candidates wait for a later frame.
func (s *Simulation) resolveCollisions(index *systems.SpatialIndex) {
	for i := range s.consumed {
		s.consumed[i] = false
	}

	for _, box := range s.boxes {
		i := box.Index
		if s.consumed[i] {
			continue
		}

		p1 := s.posMap.Get(s.balls[i])
		s.candidates = index.Search(box, s.candidates[:0])

		j := -1
		for k := len(s.candidates) - 1; k >= 0; k-- {
			c := s.candidates[k].Index
			if c == i || s.consumed[c] {
				continue
			}
			// Boxes overlap at the corners before circles do
			p2 := s.posMap.Get(s.balls[c])
			if !systems.Overlapping(vec(p1.X, p1.Y), vec(p2.X, p2.Y), s.dotSize) {
				continue
			}
			j = c
			break
		}
		if j < 0 {
			continue
		}

		s.consumed[i] = true
		s.consumed[j] = true

		p2 := s.posMap.Get(s.balls[j])
		v1 := s.velMap.Get(s.balls[i])
		v2 := s.velMap.Get(s.balls[j])

		n1, n2 := systems.Resolve(vec(p1.X, p1.Y), vec(v1.X, v1.Y), vec(p2.X, p2.Y), vec(v2.X, v2.Y))
		*v1 = components.Velocity{X: n1.X, Y: n1.Y}
		*v2 = components.Velocity{X: n2.X, Y: n2.Y}

		s.collector.RecordCollision()
	}
}

// writePositions copies ball positions into the render buffer.
func (s *Simulation) writePositions() {
	for i, e := range s.balls {
		pos := s.posMap.Get(e)
		s.positions[2*i] = float32(pos.X)
		s.positions[2*i+1] = float32(pos.Y)
	}
}
