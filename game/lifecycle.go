package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/redraw/components"
	"github.com/pthm-cable/redraw/systems"
)

// updateLifecycle moves active balls past their timeout into seeking and
// erases balls that have been seeking for longer than the seek timeout.
// A ball makes at most one transition per frame.
func (s *Simulation) updateLifecycle() {
	lc := s.cfg.Lifecycle

	for i, e := range s.balls {
		life := s.lifeMap.Get(e)

		switch {
		case life.Terminal():
			continue

		case !life.Seeking():
			if s.elapsed <= life.Timeout {
				continue
			}
			pos := s.posMap.Get(e)
			target := s.targetMap.Get(e)
			v := systems.SeekVelocity(vec(pos.X, pos.Y), vec(target.X, target.Y), lc.SeekSpeed)

			life.SeekStart = s.elapsed
			*s.velMap.Get(e) = components.Velocity{X: v.X, Y: v.Y}
			s.collector.RecordSeek()

		default:
			if s.elapsed-life.SeekStart <= lc.SeekTimeout {
				continue
			}
			s.erase(i, e)
		}
	}
}

// erase parks a ball off the canvas for good.
func (s *Simulation) erase(i int, e ecs.Entity) {
	life := s.lifeMap.Get(e)
	life.Erased = true
	*s.posMap.Get(e) = ErasedPosition
	*s.velMap.Get(e) = components.Velocity{}
	s.collector.RecordErased()

	s.logger.Debug("ball erased",
		"ball", i,
		"seek_start", life.SeekStart,
		"elapsed", s.elapsed,
	)
}

// integrate moves every non-erased ball by its velocity. A ball whose path
// this frame passes close enough to its target snaps onto it and is stuck
// from then on. The whole path segment is checked, not just its end point.
func (s *Simulation) integrate(dt float64) {
	for i, e := range s.balls {
		life := s.lifeMap.Get(e)
		if life.Erased {
			continue
		}

		pos := s.posMap.Get(e)
		vel := s.velMap.Get(e)
		target := s.targetMap.Get(e)

		next := systems.Step(*pos, *vel, dt)
		goal := vec(target.X, target.Y)

		if systems.SegmentDistSq(vec(pos.X, pos.Y), next, goal) > s.snapDistSq {
			pos.X, pos.Y = next.X, next.Y
			continue
		}

		*pos = components.Position{X: target.X, Y: target.Y}
		*vel = components.Velocity{}
		if !life.Stuck {
			life.Stuck = true
			s.collector.RecordStuck()
			s.logger.Debug("ball stuck", "ball", i, "elapsed", s.elapsed)
		}
	}
}
