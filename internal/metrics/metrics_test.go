package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/space"
)

func newSpace(t *testing.T) *space.Space {
	t.Helper()
	s, err := space.New(100, 100, 0.05, space.DefaultOptions())
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	s.SetupShip(dynamo.V(50, 50), 1, body.Drive{ShipMass: 2, ParticleMass: 1, ParticleCount: 5, ParticleVelocity: 0.1})
	return s
}

func TestSpeed(t *testing.T) {
	s := newSpace(t)
	mean, sd := NewSpeed(), NewSpeedStdDev()

	for _, v := range []float64{1, 2, 3} {
		s.Ship.Vel = dynamo.V(0, v)
		mean.Observe(s)
		sd.Observe(s)
	}

	if math.Abs(mean.Value()-2) > 1e-12 {
		t.Errorf("expected mean speed 2, got %f", mean.Value())
	}
	if math.Abs(sd.Value()-1) > 1e-12 {
		t.Errorf("expected stddev 1, got %f", sd.Value())
	}

	mean.Reset()
	if mean.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyExcessStaysAtRounding(t *testing.T) {
	s := newSpace(t)
	for x := range 100 {
		for y := range 100 {
			s.Field.SetPotential(x, y, 0.5+0.4*math.Sin(float64(x)/7)*math.Cos(float64(y)/5))
		}
	}
	s.Ship.RefreshEnergy(s.Field)
	ms := Default()

	if _, err := s.Update(1, 1, true, 0.3); err != nil {
		t.Fatalf("update: %v", err)
	}
	for range 200 {
		if _, err := s.Update(1, 1, false, 0); err != nil {
			t.Fatalf("update: %v", err)
		}
		Observe(ms, s)
	}

	got := Collect(ms)
	if got["energy_excess"] > 1e-9 {
		t.Errorf("energy rose above invariant: %g", got["energy_excess"])
	}
	if got["shots"] != 0 {
		t.Errorf("shot fired before observation started, got %v", got["shots"])
	}
	if got["particles_peak"] != 1 {
		t.Errorf("expected one particle, got %v", got["particles_peak"])
	}
}

func TestShots(t *testing.T) {
	s := newSpace(t)
	shots := NewShots()
	shots.Observe(s)

	for _, fire := range []bool{true, false, true} {
		if _, err := s.Update(1, 1, fire, 0); err != nil {
			t.Fatalf("update: %v", err)
		}
		shots.Observe(s)
	}
	if shots.Value() != 2 {
		t.Errorf("expected 2 shots, got %v", shots.Value())
	}

	s.AddFuel(s.Ship.Pos, 1, 3, 0)
	if _, err := s.Update(1, 1, true, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	shots.Observe(s)
	if s.Ship.ParticleCount != 5 {
		t.Fatalf("expected fuel to refill the tank to 5, got %d", s.Ship.ParticleCount)
	}
	if shots.Value() != 3 {
		t.Errorf("shot in a frame with a fuel pickup must count, got %v", shots.Value())
	}

	shots.Reset()
	shots.Observe(s)
	if shots.Value() != 0 {
		t.Errorf("expected reset to start from zero, got %v", shots.Value())
	}
}

func TestCollectNames(t *testing.T) {
	got := Collect(Default())
	for _, name := range []string{"energy", "energy_excess", "speed_mean", "speed_stddev", "particles_peak", "shots"} {
		if _, ok := got[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
}
