package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len failed: got %v", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist failed: got %v", got)
	}
	if a != V(1, 2) {
		t.Errorf("allocating ops mutated receiver: %v", a)
	}
}

func TestVec2_InPlace(t *testing.T) {
	v := V(1, 1)
	v.AddInPlace(V(1, 2))
	v.ScaleInPlace(2)
	v.AddScaledInPlace(V(1, 0), -4)
	v.SubInPlace(V(0, 1))
	if v != V(0, 5) {
		t.Errorf("in-place chain: got %v, want (0,5)", v)
	}
}

func TestVec2_WithLen(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		l    float64
		want Vec2
	}{
		{"axis", V(2, 0), 5, V(5, 0)},
		{"diagonal", V(3, 4), 10, V(6, 8)},
		{"zero stays zero", V(0, 0), 3, V(0, 0)},
		{"collapse", V(3, 4), 0, V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.WithLen(tt.l)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("WithLen(%v) = %v, want %v", tt.l, got, tt.want)
			}
		})
	}
}

func TestDirection(t *testing.T) {
	d := Direction(math.Pi / 2)
	if math.Abs(d.X) > 1e-12 || math.Abs(d.Y-1) > 1e-12 {
		t.Errorf("Direction(pi/2) = %v", d)
	}
	if got := Direction(0); got != V(1, 0) {
		t.Errorf("Direction(0) = %v", got)
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"normal", V(1, 2), true},
		{"NaN", V(math.NaN(), 0), false},
		{"+Inf", V(0, math.Inf(1)), false},
		{"-Inf", V(math.Inf(-1), 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Frame: 12, Dt: 0.5, Wrapped: ErrInvalidTimestep}
	if !errors.Is(err, ErrInvalidTimestep) {
		t.Error("StepError does not unwrap to ErrInvalidTimestep")
	}
	want := "frame 12 (dt=0.5): " + ErrInvalidTimestep.Error()
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
