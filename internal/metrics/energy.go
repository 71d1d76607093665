package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/greyspace/internal/space"
)

// Energy is the mean invariant energy of the ship over the observed frames.
type Energy struct {
	name    string
	samples []float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s *space.Space) {
	if s.Ship == nil || s.Ship.Frozen {
		return
	}
	e.samples = append(e.samples, s.Ship.Energy)
}

func (e *Energy) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return stat.Mean(e.samples, nil)
}

func (e *Energy) Reset() {
	e.samples = e.samples[:0]
}

// EnergyExcess is the largest amount by which the ship's mechanical energy
// exceeded its invariant, relative to the invariant's magnitude. A correct
// run stays at rounding level.
type EnergyExcess struct {
	name      string
	maxExcess float64
}

func NewEnergyExcess() *EnergyExcess {
	return &EnergyExcess{name: "energy_excess"}
}

func (e *EnergyExcess) Name() string { return e.name }

func (e *EnergyExcess) Observe(s *space.Space) {
	sh := s.Ship
	if sh == nil || sh.Frozen {
		return
	}
	excess := (sh.CalcEnergy(s.Field) - sh.Energy) / math.Max(1, math.Abs(sh.Energy))
	e.maxExcess = math.Max(e.maxExcess, excess)
}

func (e *EnergyExcess) Value() float64 {
	return e.maxExcess
}

func (e *EnergyExcess) Reset() {
	e.maxExcess = 0
}
