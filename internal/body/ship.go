package body

import (
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
)

// DefaultParticleSize is the collision radius of ejected particles.
const DefaultParticleSize = 1.0

// Drive holds a ship's reaction-drive parameters.
type Drive struct {
	ShipMass         float64
	ParticleMass     float64
	ParticleVelocity float64
	ParticleCount    int
}

// Ship is propelled by ejecting particles of reaction mass.
type Ship struct {
	Kinematics
	Drive

	ParticleSize float64
}

// NewShip places a ship at rest at pos and computes its mass and energy.
func NewShip(pos dynamo.Vec2, size float64, d Drive, f *field.Field) *Ship {
	s := &Ship{
		Kinematics:   Kinematics{Pos: pos, Size: size},
		Drive:        d,
		ParticleSize: DefaultParticleSize,
	}
	s.Mass = s.CalculateMass()
	s.RefreshEnergy(f)
	return s
}

func (s *Ship) UsesFuel() bool             { return true }
func (s *Ship) EndsLevel() bool            { return true }
func (s *Ship) LosesGameOnExplosion() bool { return true }

// CalculateMass is the dry mass plus the remaining reaction mass.
func (s *Ship) CalculateMass() float64 {
	return s.ShipMass + float64(s.ParticleCount)*s.ParticleMass
}

// Shoot ejects one particle of reaction mass at angle theta. The ship gains
// the momentum of the ejected unit and the particle is returned for the
// caller to add to the simulation. Shoot returns nil when the ship is out of
// reaction mass or frozen.
func (s *Ship) Shoot(theta float64, f *field.Field) *Particle {
	if s.ParticleCount <= 0 || s.Frozen {
		return nil
	}
	dir := dynamo.Direction(theta)
	s.Vel.AddScaledInPlace(dir, s.ParticleVelocity*s.ParticleMass/s.Mass)
	s.ParticleCount--
	s.Mass = s.CalculateMass()
	s.RefreshEnergy(f)

	speed := s.Vel.Len() - s.ParticleVelocity
	return NewParticle(s.Pos, dir.Scale(speed), s.ParticleMass, s.ParticleSize, f)
}

// AddFuel grants reaction mass and ejection speed, crediting the energy
// budget with the new mass at potential pot.
func (s *Ship) AddFuel(particles int, boost, pot float64, f *field.Field) {
	s.ParticleCount += particles
	s.ParticleVelocity += boost
	s.Mass = s.CalculateMass()
	s.Energy += float64(particles) * s.ParticleMass * pot * f.Gravity
}

// DrainFuel discards all remaining reaction mass.
func (s *Ship) DrainFuel() {
	s.ParticleCount = 0
	s.Mass = s.CalculateMass()
}
