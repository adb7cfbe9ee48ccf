package game

import (
	"github.com/pthm-cable/redraw/components"
	"github.com/pthm-cable/redraw/systems"
)

// shakeUp gives every moving ball a fresh timeout, a new random position clear
// of the stuck and erased balls, and a new random velocity. Stuck and erased
// balls are not touched. Placement shares one cumulative failure budget; once
// it runs out the remaining balls keep their position and velocity.
func (s *Simulation) shakeUp() {
	simCfg := s.cfg.Simulation

	index := systems.NewSpatialIndex()
	for i, e := range s.balls {
		if !s.lifeMap.Get(e).Terminal() {
			continue
		}
		pos := s.posMap.Get(e)
		index.Insert(systems.BoxAround(pos.X, pos.Y, s.dotSize, i))
	}

	placer := systems.NewPlacer(index, s.bounds.Width, s.bounds.Height,
		s.dotSize, s.cfg.Placement.MaxFailedAttempts)

	moved, unplaced := 0, 0
	for i, e := range s.balls {
		life := s.lifeMap.Get(e)
		if life.Terminal() {
			continue
		}
		life.Reset(s.randomTimeout())

		p, ok := placer.Place(s.rng, i)
		if !ok {
			unplaced++
			s.logger.Warn("shake-up could not place ball",
				"ball", i,
				"failed_attempts", placer.Failures(),
			)
			continue
		}

		v := systems.RandomVelocity(s.rng, simCfg.VelocityScale, simCfg.MinSpeedRatio)
		*s.posMap.Get(e) = components.Position{X: p.X, Y: p.Y}
		*s.velMap.Get(e) = components.Velocity{X: v.X, Y: v.Y}
		moved++
	}

	s.collector.RecordShakeUp(unplaced)
	s.logger.Info("shake-up",
		"elapsed", s.elapsed,
		"moved", moved,
		"unplaced", unplaced,
		"failed_attempts", placer.Failures(),
	)
}
