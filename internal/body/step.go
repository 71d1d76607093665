package body

import (
	"fmt"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
	"github.com/san-kum/greyspace/internal/integrators"
)

// Contact is the outcome of a collision check.
type Contact struct {
	FieldChanged bool
	Removed      bool
}

// Collider checks a body against everything it can collide with.
type Collider interface {
	Collide(b MovingBody) Contact
}

// Step advances b through f by dt and reports whether a collision changed the
// field. Long steps are bisected until no leaf moves the body a whole cell;
// each leaf integrates, runs collisions, then re-asserts the energy invariant.
func Step(b MovingBody, f *field.Field, st integrators.Stepper, c Collider, dt float64) (bool, error) {
	if !dynamo.Finite(dt) || dt < 0 {
		return false, fmt.Errorf("%w: %v", dynamo.ErrInvalidTimestep, dt)
	}
	k := b.Kin()
	if dt == 0 || k.Frozen || k.Removed {
		return false, nil
	}
	if k.fieldRev != f.Revision() {
		k.RefreshEnergy(f)
	}

	changed := false
	integrators.Subdivide(dt, func() float64 { return k.Vel.Len() }, func(h float64) bool {
		prev := k.Pos
		k.Pos, k.Vel = st.Step(k.Pos, k.Vel, f.Accel, h)

		if c != nil {
			ct := c.Collide(b)
			changed = changed || ct.FieldChanged
			if ct.Removed {
				k.Removed = true
			}
			if k.Removed || k.Frozen {
				return false
			}
		}

		k.renormalize(f, prev)
		return true
	})
	return changed, nil
}
