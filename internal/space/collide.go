package space

import (
	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
	"github.com/san-kum/greyspace/internal/interact"
)

// Collide runs fuel, exit and bomb checks for b in that order. Space is the
// body.Collider handed to every Step.
func (s *Space) Collide(b body.MovingBody) body.Contact {
	if b.UsesFuel() {
		if ship, ok := b.(*body.Ship); ok {
			if n := collideFuel(ship, &s.Fuels, s.Field); n > 0 {
				s.log.Debug("fuel collected", "frame", s.frame, "items", n, "particles", ship.ParticleCount)
			}
		}
	}

	if b.EndsLevel() && collideExit(b, &s.Exits) {
		if ship, ok := b.(*body.Ship); ok {
			ship.DrainFuel()
		}
		b.Kin().Freeze()
		s.IsLevelCompleted = true
		s.log.Info("level completed", "frame", s.frame, "time", s.time)
		return body.Contact{}
	}

	bomb := collideBomb(b, &s.Bombs)
	if bomb == nil {
		return body.Contact{}
	}

	ct := body.Contact{FieldChanged: true}
	k := b.Kin()
	if b.LosesGameOnExplosion() {
		k.Freeze()
		k.Pos = s.offDomain()
		s.IsLevelLost = true
		s.log.Info("level lost", "frame", s.frame, "time", s.time, "bomb", bomb.Pos)
	} else {
		ct.Removed = true
	}

	cells := bomb.Detonate(s.Field)
	if s.opts.Waves {
		s.Field.AddEffect(bomb.Wave())
	}
	s.log.Debug("bomb detonated", "frame", s.frame, "pos", bomb.Pos, "polarity", bomb.Polarity, "cells", cells)
	return ct
}

// offDomain is where a destroyed ship is parked.
func (s *Space) offDomain() dynamo.Vec2 {
	return dynamo.V(-2*float64(s.Field.Width), -2*float64(s.Field.Height))
}

// collideFuel consumes every fuel item the ship overlaps and returns how many
// were taken.
func collideFuel(ship *body.Ship, fuels *[]*interact.Fuel, f *field.Field) int {
	taken := 0
	list := *fuels
	for i := 0; i < len(list); {
		fu := list[i]
		if !fu.Hits(ship) {
			i++
			continue
		}
		list = removeAt(list, i)
		pot := max(f.ClosestPotential(ship.Pos), f.ClosestPotential(fu.Pos))
		ship.AddFuel(fu.Particles, fu.Boost, pot, f)
		taken++
	}
	*fuels = list
	return taken
}

// collideExit removes the first exit b overlaps and reports whether there
// was one.
func collideExit(b body.MovingBody, exits *[]*interact.Exit) bool {
	for i, e := range *exits {
		if e.Hits(b) {
			*exits = removeAt(*exits, i)
			return true
		}
	}
	return false
}

// collideBomb removes and returns the first bomb b overlaps.
func collideBomb(b body.MovingBody, bombs *[]*interact.Bomb) *interact.Bomb {
	for i, bo := range *bombs {
		if bo.Hits(b) {
			*bombs = removeAt(*bombs, i)
			return bo
		}
	}
	return nil
}

func removeAt[T any](list []*T, i int) []*T {
	copy(list[i:], list[i+1:])
	list[len(list)-1] = nil
	return list[:len(list)-1]
}

func remove[T any](list []*T, item *T) ([]*T, bool) {
	for i, cur := range list {
		if cur == item {
			return removeAt(list, i), true
		}
	}
	return list, false
}
