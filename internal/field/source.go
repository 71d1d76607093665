package field

import (
	"math"

	"github.com/san-kum/greyspace/internal/dynamo"
)

// Source contributes potential on top of the stored grid. Contributions are
// evaluated on demand and never baked into the cells.
type Source interface {
	PotentialAt(p dynamo.Vec2) float64
}

// Effect is a Source that changes over time and eventually expires.
type Effect interface {
	Source
	Advance(dt float64)
	Expired() bool
}

// PlanetClamp bounds a single planet's contribution.
const PlanetClamp = 3.0

// Planet is a permanent inverse-power well centred at Pos.
type Planet struct {
	Pos      dynamo.Vec2
	Size     float64
	Exponent float64
}

func (pl *Planet) PotentialAt(p dynamo.Vec2) float64 {
	if pl.Size <= 0 {
		return 0
	}
	r := p.Dist(pl.Pos) / pl.Size
	return dynamo.Clamp(-1/math.Pow(r, pl.Exponent), -PlanetClamp, PlanetClamp)
}

// Wave is an expanding ring of raised potential, fading linearly to nothing
// over its lifetime.
type Wave struct {
	Center    dynamo.Vec2
	Amplitude float64
	Speed     float64
	Width     float64
	Lifetime  float64

	age float64
}

func NewWave(center dynamo.Vec2, amplitude, speed, width, lifetime float64) *Wave {
	if width <= 0 {
		width = 1
	}
	return &Wave{Center: center, Amplitude: amplitude, Speed: speed, Width: width, Lifetime: lifetime}
}

func (w *Wave) Advance(dt float64) { w.age += dt }

func (w *Wave) Expired() bool { return w.age >= w.Lifetime }

func (w *Wave) Age() float64 { return w.age }

func (w *Wave) PotentialAt(p dynamo.Vec2) float64 {
	if w.Expired() {
		return 0
	}
	z := (p.Dist(w.Center) - w.Speed*w.age) / w.Width
	return w.Amplitude * (1 - w.age/w.Lifetime) * math.Exp(-z*z)
}

func (f *Field) AddSource(s Source) {
	f.sources = append(f.sources, s)
	f.touch()
}

func (f *Field) RemoveSource(s Source) bool {
	for i, cur := range f.sources {
		if cur == s {
			f.sources = append(f.sources[:i], f.sources[i+1:]...)
			f.touch()
			return true
		}
	}
	return false
}

func (f *Field) AddEffect(e Effect) {
	f.effects = append(f.effects, e)
	f.touch()
}

func (f *Field) Effects() int { return len(f.effects) }

// Advance moves every effect forward by dt and drops the expired ones. It
// reports whether any effect was active, in which case the field changed.
func (f *Field) Advance(dt float64) bool {
	if len(f.effects) == 0 {
		return false
	}
	kept := f.effects[:0]
	for _, e := range f.effects {
		e.Advance(dt)
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(f.effects); i++ {
		f.effects[i] = nil
	}
	f.effects = kept
	f.touch()
	return true
}
