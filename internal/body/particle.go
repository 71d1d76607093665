package body

import (
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
)

// Particle is one ejected unit of reaction mass.
type Particle struct {
	Kinematics
}

func NewParticle(pos, vel dynamo.Vec2, mass, size float64, f *field.Field) *Particle {
	p := &Particle{Kinematics: Kinematics{Pos: pos, Vel: vel, Mass: mass, Size: size}}
	p.RefreshEnergy(f)
	return p
}

func (p *Particle) UsesFuel() bool             { return false }
func (p *Particle) EndsLevel() bool            { return false }
func (p *Particle) LosesGameOnExplosion() bool { return false }
