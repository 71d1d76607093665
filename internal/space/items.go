package space

import (
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/interact"
)

func (s *Space) AddExit(pos dynamo.Vec2, size float64) *interact.Exit {
	e := &interact.Exit{Pos: pos, Size: size}
	s.Exits = append(s.Exits, e)
	return e
}

func (s *Space) AddFuel(pos dynamo.Vec2, size float64, particles int, boost float64) *interact.Fuel {
	fu := &interact.Fuel{Pos: pos, Size: size, Particles: particles, Boost: boost}
	s.Fuels = append(s.Fuels, fu)
	return fu
}

func (s *Space) AddBomb(pos dynamo.Vec2, size, rng float64, polarity interact.Polarity) *interact.Bomb {
	b := &interact.Bomb{Pos: pos, Size: size, Range: rng, Polarity: polarity}
	s.Bombs = append(s.Bombs, b)
	return b
}

// AddPlanet adds a planet and registers it as a field source.
func (s *Space) AddPlanet(pos dynamo.Vec2, size, exponent float64) *interact.Planet {
	p := &interact.Planet{Pos: pos, Size: size, Exponent: exponent}
	s.Planets = append(s.Planets, p)
	s.Field.AddSource(p)
	return p
}

func (s *Space) RemoveExit(e *interact.Exit) bool {
	var ok bool
	s.Exits, ok = remove(s.Exits, e)
	return ok
}

func (s *Space) RemoveFuel(fu *interact.Fuel) bool {
	var ok bool
	s.Fuels, ok = remove(s.Fuels, fu)
	return ok
}

func (s *Space) RemoveBomb(b *interact.Bomb) bool {
	var ok bool
	s.Bombs, ok = remove(s.Bombs, b)
	return ok
}

func (s *Space) RemovePlanet(p *interact.Planet) bool {
	var ok bool
	s.Planets, ok = remove(s.Planets, p)
	if ok {
		s.Field.RemoveSource(p)
	}
	return ok
}
