package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/greyspace/internal/dynamo"
)

func spring(p dynamo.Vec2) dynamo.Vec2 { return p.Neg() }

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()

	pos := dynamo.V(1, 0)
	vel := dynamo.V(0, 0)
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		pos, vel = integ.Step(pos, vel, spring, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(pos.X-expectedX) > 1e-8 {
		t.Errorf("position error too large: got %.10f, expected %.10f", pos.X, expectedX)
	}
	if math.Abs(vel.X-expectedV) > 1e-8 {
		t.Errorf("velocity error too large: got %.10f, expected %.10f", vel.X, expectedV)
	}
	if pos.Y != 0 || vel.Y != 0 {
		t.Errorf("motion leaked into y: pos %v vel %v", pos, vel)
	}
}

func TestRK4_ConstantAcceleration(t *testing.T) {
	integ := NewRK4()
	g := dynamo.V(0, -2)
	accel := func(dynamo.Vec2) dynamo.Vec2 { return g }

	pos, vel := integ.Step(dynamo.V(0, 10), dynamo.V(3, 0), accel, 0.5)

	// exact for constant acceleration: x = x0 + v0 t + a t^2 / 2
	if math.Abs(pos.X-1.5) > 1e-12 || math.Abs(pos.Y-9.75) > 1e-12 {
		t.Errorf("pos = %v, want (1.5, 9.75)", pos)
	}
	if math.Abs(vel.X-3) > 1e-12 || math.Abs(vel.Y+1) > 1e-12 {
		t.Errorf("vel = %v, want (3, -1)", vel)
	}
}

func TestSteppers_Energy(t *testing.T) {
	tests := []struct {
		name     string
		maxDrift float64
	}{
		{"rk4", 1e-6},
		{"leapfrog", 1e-3},
		{"euler", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := New(tt.name)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.name, err)
			}
			pos, vel := dynamo.V(1, 0), dynamo.V(0, 1)
			energy := func() float64 { return 0.5 * (pos.LenSq() + vel.LenSq()) }
			e0 := energy()

			for i := 0; i < 1000; i++ {
				pos, vel = integ.Step(pos, vel, spring, 0.01)
			}

			drift := math.Abs(energy()-e0) / e0
			if drift > tt.maxDrift {
				t.Errorf("%s energy drift too high: %e", tt.name, drift)
			}
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("rk45")
	if !errors.Is(err, dynamo.ErrUnknownIntegrator) {
		t.Errorf("expected ErrUnknownIntegrator, got %v", err)
	}
	if len(Names()) != 3 {
		t.Errorf("expected 3 registered steppers, got %v", Names())
	}
}
