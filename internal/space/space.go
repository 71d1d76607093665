package space

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
	"github.com/san-kum/greyspace/internal/integrators"
	"github.com/san-kum/greyspace/internal/interact"
)

const (
	DefaultBorder       = 10.0
	DefaultMaxParticles = 256
)

type Options struct {
	Border     float64
	Integrator string
	// MaxParticles bounds the particle list; the oldest go first. Zero means
	// no bound.
	MaxParticles int
	// CullMargin is how far outside the domain a particle may drift before it
	// is dropped. Zero picks the larger domain side; negative disables.
	CullMargin float64
	// Waves adds an expanding ring effect to every detonation.
	Waves  bool
	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Border:       DefaultBorder,
		Integrator:   "rk4",
		MaxParticles: DefaultMaxParticles,
		Waves:        true,
	}
}

type Space struct {
	Field     *field.Field
	Ship      *body.Ship
	Particles []*body.Particle

	Fuels   []*interact.Fuel
	Exits   []*interact.Exit
	Bombs   []*interact.Bomb
	Planets []*interact.Planet

	IsLevelCompleted bool
	IsLevelLost      bool

	opts    Options
	stepper integrators.Stepper
	log     *slog.Logger
	seenRev uint64
	time    float64
	frame   int
	shots   int
	fired   bool
}

// New creates an empty space of the given size. The ship is attached
// separately with SetupShip.
func New(width, height int, gravity float64, opts Options) (*Space, error) {
	if opts.Border == 0 {
		opts.Border = DefaultBorder
	}
	if opts.Integrator == "" {
		opts.Integrator = "rk4"
	}
	if opts.CullMargin == 0 {
		opts.CullMargin = float64(max(width, height))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	f, err := field.New(width, height, opts.Border, gravity)
	if err != nil {
		return nil, err
	}
	st, err := integrators.New(opts.Integrator)
	if err != nil {
		return nil, err
	}
	return &Space{
		Field:   f,
		opts:    opts,
		stepper: st,
		log:     opts.Logger,
		seenRev: math.MaxUint64,
	}, nil
}

func (s *Space) Options() Options { return s.opts }
func (s *Space) Time() float64    { return s.time }
func (s *Space) Frame() int       { return s.frame }

// Shots is the number of particles the ship has ejected.
func (s *Space) Shots() int { return s.shots }

// Fired reports whether the last Update ejected a particle.
func (s *Space) Fired() bool { return s.fired }

// SetupShip places the ship, replacing any previous one.
func (s *Space) SetupShip(pos dynamo.Vec2, size float64, d body.Drive) *body.Ship {
	s.Ship = body.NewShip(pos, size, d, s.Field)
	return s.Ship
}

// Potential samples the field at p.
func (s *Space) Potential(p dynamo.Vec2) float64 {
	return s.Field.ClosestPotential(p)
}

// HasPotentialUpdated reports whether the field changed since the last
// ConsumePotentialUpdated.
func (s *Space) HasPotentialUpdated() bool {
	return s.Field.Revision() != s.seenRev
}

// ConsumePotentialUpdated returns and clears the dirty flag. The first call
// on a new space always reports true.
func (s *Space) ConsumePotentialUpdated() bool {
	dirty := s.HasPotentialUpdated()
	s.seenRev = s.Field.Revision()
	return dirty
}

// Update advances the simulation by dt split into subSteps equal sub-steps,
// firing the ship at angle first when fire is set. It reports whether the
// field changed during the frame.
func (s *Space) Update(dt float64, subSteps int, fire bool, angle float64) (bool, error) {
	if !dynamo.Finite(dt) || dt < 0 {
		return false, &dynamo.StepError{Frame: s.frame, Dt: dt, Wrapped: dynamo.ErrInvalidTimestep}
	}
	if !dynamo.Check(subSteps >= 1, "sub-step count below one, using 1", "sub_steps", subSteps) {
		subSteps = 1
	}
	s.frame++
	s.fired = false
	rev := s.Field.Revision()

	if fire && s.Ship != nil {
		if p := s.Ship.Shoot(angle, s.Field); p != nil {
			s.Particles = append(s.Particles, p)
			s.shots++
			s.fired = true
			s.log.Debug("particle fired", "frame", s.frame, "angle", angle, "remaining", s.Ship.ParticleCount)
		}
	}

	if dt > 0 {
		h := dt / float64(subSteps)
		for i := 0; i < subSteps; i++ {
			if err := s.subStep(h); err != nil {
				return false, &dynamo.StepError{Frame: s.frame, Dt: dt, Wrapped: err}
			}
		}
		s.time += dt
	}

	s.cull()
	return s.Field.Revision() != rev, nil
}

func (s *Space) subStep(h float64) error {
	s.Field.Advance(h)

	if s.Ship != nil {
		if _, err := body.Step(s.Ship, s.Field, s.stepper, s, h); err != nil {
			return fmt.Errorf("ship: %w", err)
		}
	}
	for _, p := range s.Particles {
		if _, err := body.Step(p, s.Field, s.stepper, s, h); err != nil {
			return fmt.Errorf("particle: %w", err)
		}
	}
	s.dropRemoved()
	return nil
}

func (s *Space) dropRemoved() {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if !p.Removed {
			kept = append(kept, p)
		}
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}

// cull drops particles that drifted past the margin and then the oldest
// particles beyond MaxParticles.
func (s *Space) cull() {
	before := len(s.Particles)
	if s.opts.CullMargin > 0 {
		kept := s.Particles[:0]
		for _, p := range s.Particles {
			if s.outsideDistance(p.Pos) <= s.opts.CullMargin {
				kept = append(kept, p)
			}
		}
		clear(s.Particles[len(kept):])
		s.Particles = kept
	}
	if s.opts.MaxParticles > 0 && len(s.Particles) > s.opts.MaxParticles {
		excess := len(s.Particles) - s.opts.MaxParticles
		n := copy(s.Particles, s.Particles[excess:])
		clear(s.Particles[n:])
		s.Particles = s.Particles[:n]
	}
	if n := before - len(s.Particles); n > 0 {
		s.log.Debug("particles culled", "frame", s.frame, "count", n, "remaining", len(s.Particles))
	}
}

func (s *Space) outsideDistance(p dynamo.Vec2) float64 {
	w, h := float64(s.Field.Width), float64(s.Field.Height)
	dx := math.Max(0, math.Max(-p.X, p.X-w))
	dy := math.Max(0, math.Max(-p.Y, p.Y-h))
	return math.Hypot(dx, dy)
}
