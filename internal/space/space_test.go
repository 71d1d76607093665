package space

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/interact"
)

var scenarioDrive = body.Drive{ShipMass: 2, ParticleMass: 1, ParticleVelocity: 0.1, ParticleCount: 5}

// update advances s and fails the spec on error.
func update(s *Space, dt float64, subSteps int, fire bool, angle float64) bool {
	changed, err := s.Update(dt, subSteps, fire, angle)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return changed
}

// detonateByParticle fires a particle east into a white bomb of range 10 and
// steps until the bomb is gone. It returns the number of consecutive frames,
// starting with the detonation, that reported a field change.
func detonateByParticle(s *Space, subSteps int) int {
	s.AddBomb(dynamo.V(60, 50), 0.5, 10, interact.White)
	update(s, 0, 1, true, math.Pi)

	changed := false
	for i := 0; i < 400 && len(s.Bombs) > 0; i++ {
		changed = update(s, 1, subSteps, false, 0)
	}
	ExpectWithOffset(1, s.Bombs).To(BeEmpty())
	ExpectWithOffset(1, changed).To(BeTrue())

	frames := 1
	for frames < 100 && update(s, 1, subSteps, false, 0) {
		frames++
	}
	return frames
}

func newScenario(opts Options) *Space {
	s, err := New(100, 100, 0.05, opts)
	Expect(err).NotTo(HaveOccurred())
	s.SetupShip(dynamo.V(50, 50), 2, scenarioDrive)
	return s
}

var _ = Describe("Space", func() {
	var s *Space

	BeforeEach(func() {
		s = newScenario(DefaultOptions())
	})

	Describe("construction", func() {
		It("rejects an unknown integrator", func() {
			_, err := New(10, 10, 1, Options{Integrator: "midpoint"})
			Expect(errors.Is(err, dynamo.ErrUnknownIntegrator)).To(BeTrue())
		})

		It("rejects empty dimensions", func() {
			_, err := New(0, 10, 1, DefaultOptions())
			Expect(errors.Is(err, dynamo.ErrInvalidDimensions)).To(BeTrue())
		})

		It("steps without a ship", func() {
			empty, err := New(10, 10, 1, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			_, err = empty.Update(1, 2, true, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(empty.Frame()).To(Equal(1))
		})
	})

	Describe("firing", func() {
		It("applies the reaction impulse and spawns a particle", func() {
			_, err := s.Update(0, 1, true, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Ship.Vel.X).To(BeNumerically("~", 0.1/7, 1e-12))
			Expect(s.Ship.Vel.Y).To(BeZero())
			Expect(s.Ship.ParticleCount).To(Equal(4))

			Expect(s.Particles).To(HaveLen(1))
			p := s.Particles[0]
			Expect(p.Pos).To(Equal(dynamo.V(50, 50)))
			Expect(p.Vel.X).To(BeNumerically("<", 0))
			Expect(p.Vel.X).To(BeNumerically("~", 0.1/7-0.1, 1e-12))
		})

		It("keeps a coasting ship at constant speed on a flat field", func() {
			update(s, 0, 1, true, 0)
			for i := 0; i < 50; i++ {
				_, err := s.Update(1, 4, false, 0)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(s.Ship.Vel.X).To(BeNumerically("~", 0.1/7, 1e-9))
			Expect(s.Ship.Pos.X).To(BeNumerically("~", 50+50*0.1/7, 1e-6))
		})

		It("does nothing once the tank is empty", func() {
			for i := 0; i < 8; i++ {
				update(s, 0, 1, true, float64(i))
			}
			Expect(s.Ship.ParticleCount).To(BeZero())
			Expect(s.Particles).To(HaveLen(5))
		})
	})

	Describe("exit", func() {
		It("completes the level and empties the tank", func() {
			s.AddExit(dynamo.V(60, 50), 10)

			_, err := s.Update(1, 1, false, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.IsLevelCompleted).To(BeTrue())
			Expect(s.IsLevelLost).To(BeFalse())
			Expect(s.Ship.ParticleCount).To(BeZero())
			Expect(s.Ship.Energy).To(BeZero())
			Expect(s.Exits).To(BeEmpty())

			pos := s.Ship.Pos
			update(s, 1, 1, true, 0)
			Expect(s.Ship.Pos).To(Equal(pos))
			Expect(s.Particles).To(BeEmpty())
		})

		It("is out of reach when the gap equals the summed sizes", func() {
			s.AddExit(dynamo.V(62, 50), 10)
			update(s, 1, 1, false, 0)
			Expect(s.IsLevelCompleted).To(BeFalse())
			Expect(s.Exits).To(HaveLen(1))
		})
	})

	Describe("fuel", func() {
		It("takes every overlapping item and credits energy", func() {
			s.Field.Fill(0.2)
			s.Ship.RefreshEnergy(s.Field)
			energy := s.Ship.Energy

			s.AddFuel(dynamo.V(51, 50), 1, 3, 0.05)
			s.AddFuel(dynamo.V(50, 51), 1, 2, 0.01)
			far := s.AddFuel(dynamo.V(90, 90), 1, 7, 0)

			_, err := s.Update(0.5, 1, false, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Fuels).To(ConsistOf(far))
			Expect(s.Ship.ParticleCount).To(Equal(10))
			Expect(s.Ship.ParticleVelocity).To(BeNumerically("~", 0.16, 1e-12))
			Expect(s.Ship.Mass).To(BeNumerically("==", 12))
			Expect(s.Ship.Energy).To(BeNumerically("~", energy+5*1*0.2*0.05, 1e-12))
		})

		It("is ignored by particles", func() {
			s.AddFuel(dynamo.V(55, 50), 1, 3, 0)
			update(s, 0, 1, true, math.Pi)
			for i := 0; i < 100; i++ {
				update(s, 1, 1, false, 0)
			}
			Expect(s.Particles).To(HaveLen(1))
			Expect(s.Particles[0].Pos.X).To(BeNumerically(">", 56))
			Expect(s.Fuels).To(HaveLen(1))
		})
	})

	Describe("bombs", func() {
		It("destroys the ship and loses the level", func() {
			s.ConsumePotentialUpdated()
			s.AddBomb(dynamo.V(51, 50), 1, 5, interact.White)

			changed, err := s.Update(1, 1, false, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(changed).To(BeTrue())
			Expect(s.IsLevelLost).To(BeTrue())
			Expect(s.Bombs).To(BeEmpty())
			Expect(s.Ship.Energy).To(BeZero())
			Expect(s.Ship.Frozen).To(BeTrue())
			Expect(s.Field.InDomain(s.Ship.Pos)).To(BeFalse())
			Expect(s.ConsumePotentialUpdated()).To(BeTrue())

			v, _ := s.Field.Cell(51, 50)
			Expect(v).To(BeNumerically("==", 1))

			pos := s.Ship.Pos
			for i := 0; i < 10; i++ {
				update(s, 1, 1, false, 0)
			}
			Expect(s.Ship.Pos).To(Equal(pos))
		})

		It("removes a particle and leaves the ship alive", func() {
			bomb := s.AddBomb(dynamo.V(53, 50), 0.5, 2, interact.Black)
			s.Field.Fill(0.5)

			update(s, 0, 1, true, math.Pi)
			Expect(s.Particles).To(HaveLen(1))
			Expect(s.Particles[0].Vel.X).To(BeNumerically(">", 0))

			for i := 0; i < 40; i++ {
				_, err := s.Update(1, 1, false, 0)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(s.Bombs).NotTo(ContainElement(bomb))
			Expect(s.Particles).To(BeEmpty())
			Expect(s.IsLevelLost).To(BeFalse())
			v, _ := s.Field.Cell(53, 50)
			Expect(v).To(BeNumerically("==", 0))
		})
	})

	Describe("detonation waves", func() {
		It("sends a wave that expires", func() {
			Expect(detonateByParticle(s, 1)).To(Equal(11))
			Expect(s.Field.Effects()).To(BeZero())
			Expect(s.IsLevelLost).To(BeFalse())
		})

		It("ages the wave by simulated time, not by sub-step count", func() {
			frames := detonateByParticle(s, 4)
			Expect(frames).To(BeNumerically(">=", 10))
			Expect(frames).To(BeNumerically("<=", 11))
			Expect(s.Field.Effects()).To(BeZero())
		})

		It("changes the field only once without waves", func() {
			opts := DefaultOptions()
			opts.Waves = false
			s = newScenario(opts)

			Expect(detonateByParticle(s, 1)).To(Equal(1))
			Expect(s.Field.Effects()).To(BeZero())
		})
	})

	Describe("planets", func() {
		It("marks the field dirty when added and removed", func() {
			s.ConsumePotentialUpdated()
			p := s.AddPlanet(dynamo.V(20, 20), 3, 1)
			Expect(s.HasPotentialUpdated()).To(BeTrue())
			Expect(s.Potential(dynamo.V(20, 23))).To(BeNumerically("~", -1, 1e-12))

			s.ConsumePotentialUpdated()
			Expect(s.RemovePlanet(p)).To(BeTrue())
			Expect(s.ConsumePotentialUpdated()).To(BeTrue())
			Expect(s.Potential(dynamo.V(20, 23))).To(BeZero())
			Expect(s.RemovePlanet(p)).To(BeFalse())
		})

		It("pulls the ship toward it", func() {
			s.AddPlanet(dynamo.V(70, 50), 4, 1)
			for i := 0; i < 20; i++ {
				update(s, 1, 2, false, 0)
			}
			Expect(s.Ship.Pos.X).To(BeNumerically(">", 50))
		})
	})

	Describe("time deltas", func() {
		DescribeTable("rejects invalid dt",
			func(dt float64) {
				_, err := s.Update(dt, 1, false, 0)
				Expect(errors.Is(err, dynamo.ErrInvalidTimestep)).To(BeTrue())
				Expect(s.Frame()).To(BeZero())
			},
			Entry("NaN", math.NaN()),
			Entry("+Inf", math.Inf(1)),
			Entry("negative", -1.0),
		)

		It("clamps a zero sub-step count", func() {
			_, err := s.Update(1, 0, false, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Time()).To(BeNumerically("==", 1))
		})
	})

	Describe("dirty flag", func() {
		It("is consumed once", func() {
			Expect(s.ConsumePotentialUpdated()).To(BeTrue())
			Expect(s.ConsumePotentialUpdated()).To(BeFalse())

			s.Field.SetPotential(3, 3, 0.5)
			Expect(s.ConsumePotentialUpdated()).To(BeTrue())
			Expect(s.ConsumePotentialUpdated()).To(BeFalse())
		})
	})

	Describe("culling", func() {
		It("keeps only the newest particles", func() {
			opts := DefaultOptions()
			opts.MaxParticles = 3
			s = newScenario(opts)

			for i := 0; i < 5; i++ {
				update(s, 0, 1, true, float64(i))
			}
			Expect(s.Particles).To(HaveLen(3))
			Expect(s.Particles[2].Vel.Len()).NotTo(BeZero())
		})

		It("drops particles far outside the domain", func() {
			update(s, 0, 1, true, 0)
			s.Particles[0].Pos = dynamo.V(-500, 50)
			update(s, 0, 1, false, 0)
			Expect(s.Particles).To(BeEmpty())
		})
	})

	Describe("snapshot", func() {
		It("copies bodies and items", func() {
			s.AddExit(dynamo.V(90, 90), 2)
			s.AddBomb(dynamo.V(10, 90), 2, 3, interact.Black)
			s.AddFuel(dynamo.V(90, 10), 2, 1, 0)
			s.AddPlanet(dynamo.V(10, 10), 2, 2)
			update(s, 0, 1, true, 1)

			snap := s.Snapshot()
			Expect(snap.Ship).NotTo(BeNil())
			Expect(snap.Ship.ParticleCount).To(Equal(4))
			Expect(snap.Particles).To(HaveLen(1))
			Expect(snap.Items).To(HaveLen(4))
			Expect(snap.Items[0].Kind).To(Equal(KindFuel))
			Expect(snap.Width).To(Equal(100))

			snap.Particles[0].Pos = dynamo.V(-1, -1)
			Expect(s.Particles[0].Pos).To(Equal(dynamo.V(50, 50)))
		})
	})
})
