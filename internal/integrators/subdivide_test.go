package integrators

import (
	"math"
	"testing"
)

func TestSubdivide_NoSplit(t *testing.T) {
	var got []float64
	n := Subdivide(0.5, func() float64 { return 1 }, func(dt float64) bool {
		got = append(got, dt)
		return true
	})
	if n != 1 || len(got) != 1 || got[0] != 0.5 {
		t.Errorf("expected one leaf of 0.5, got %v", got)
	}
}

func TestSubdivide_Halves(t *testing.T) {
	tests := []struct {
		name   string
		speed  float64
		dt     float64
		leaves int
	}{
		{"at threshold", 1, 1, 2},
		{"speed 3", 3, 1, 4},
		{"speed 10", 10, 1, 16},
		{"zero speed", 0, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := 0.0
			n := Subdivide(tt.dt, func() float64 { return tt.speed }, func(dt float64) bool {
				if tt.speed*dt >= 1 {
					t.Errorf("leaf dt %v too long for speed %v", dt, tt.speed)
				}
				total += dt
				return true
			})
			if n != tt.leaves {
				t.Errorf("leaves = %d, want %d", n, tt.leaves)
			}
			if math.Abs(total-tt.dt) > 1e-12 {
				t.Errorf("leaves cover %v, want %v", total, tt.dt)
			}
		})
	}
}

func TestSubdivide_SpeedReadPerHalf(t *testing.T) {
	// The body slows after the first leaf, so the second half is not split.
	speed := 4.0
	var got []float64
	Subdivide(1, func() float64 { return speed }, func(dt float64) bool {
		got = append(got, dt)
		speed = 0.5
		return true
	})

	want := []float64{0.125, 0.125, 0.25, 0.5}
	if len(got) != len(want) {
		t.Fatalf("leaves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("leaf %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubdivide_Abort(t *testing.T) {
	calls := 0
	n := Subdivide(1, func() float64 { return 8 }, func(dt float64) bool {
		calls++
		return calls < 3
	})
	if n != 3 || calls != 3 {
		t.Errorf("expected abort after 3 leaves, got n=%d calls=%d", n, calls)
	}
}

func TestSubdivide_DepthCap(t *testing.T) {
	n := Subdivide(1, func() float64 { return math.Inf(1) }, func(dt float64) bool { return true })
	if n != 1<<MaxDepth {
		t.Errorf("expected %d leaves at the depth cap, got %d", 1<<MaxDepth, n)
	}
}
