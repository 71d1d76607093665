package body

import (
	"math"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
)

// Kinematics is the state shared by every body.
type Kinematics struct {
	Pos    dynamo.Vec2
	Vel    dynamo.Vec2
	Size   float64
	Mass   float64
	Energy float64

	// Frozen bodies are no longer integrated.
	Frozen bool
	// Removed bodies have left the simulation and are waiting to be dropped.
	Removed bool

	fieldRev uint64
}

func (k *Kinematics) Kin() *Kinematics { return k }

// MovingBody is anything Step can integrate.
type MovingBody interface {
	Kin() *Kinematics
	UsesFuel() bool
	EndsLevel() bool
	LosesGameOnExplosion() bool
}

// CalcEnergy returns mass*(|v|^2/2 + g*P(pos)) for the current state.
func (k *Kinematics) CalcEnergy(f *field.Field) float64 {
	return k.Mass * (0.5*k.Vel.LenSq() + f.Gravity*f.ClosestPotential(k.Pos))
}

// RefreshEnergy re-establishes the energy invariant from the current state.
func (k *Kinematics) RefreshEnergy(f *field.Field) {
	k.Energy = k.CalcEnergy(f)
	k.fieldRev = f.Revision()
}

// Freeze stops the body where it is with no energy budget left.
func (k *Kinematics) Freeze() {
	k.Frozen = true
	k.Energy = 0
	k.Vel = dynamo.Vec2{}
}

// Overlaps reports whether two circles of the given radii intersect.
func Overlaps(a dynamo.Vec2, ra float64, b dynamo.Vec2, rb float64) bool {
	return a.Dist(b) < ra+rb
}

// renormalize corrects the speed so kinetic plus potential energy equals the
// invariant. If the new position is above the invariant the body stops dead
// at prev instead.
func (k *Kinematics) renormalize(f *field.Field, prev dynamo.Vec2) {
	if !dynamo.Check(k.Mass > 0, "body with non-positive mass skipped renormalization", "mass", k.Mass) {
		return
	}
	final := k.Mass * f.Gravity * f.ClosestPotential(k.Pos)
	if final > k.Energy {
		k.Vel = dynamo.Vec2{}
		k.Pos = prev
		return
	}
	if !k.Vel.IsZero() {
		k.Vel = k.Vel.WithLen(math.Sqrt(2 * (k.Energy - final) / k.Mass))
	}
}
