package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/metrics"
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
)

func drift(t *testing.T, integrator string) *space.Space {
	t.Helper()
	opts := space.DefaultOptions()
	opts.Integrator = integrator
	sp, err := level.Build(level.Preset("drift"), opts)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return sp
}

func thrust(frame int) (float64, bool) {
	return 0, frame <= 3
}

func TestSimulatorReachesExit(t *testing.T) {
	sim := New(drift(t, "rk4"))
	sim.AddMetric(metrics.NewShots())

	result, err := sim.Run(context.Background(), Config{Frames: 2000, Dt: 1, SubSteps: 1, StopOnEnd: true}, thrust)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !result.Completed {
		t.Fatal("expected the ship to reach the exit")
	}
	if n := len(result.Frames); n >= 2000 || n < 100 {
		t.Errorf("expected to stop early, ran %d frames", n)
	}
	last := result.Frames[len(result.Frames)-1]
	if !last.Completed || last.Fuel != 0 {
		t.Errorf("unexpected final frame %+v", last)
	}
	if result.Metrics["shots"] != 3 {
		t.Errorf("expected 3 shots, got %v", result.Metrics["shots"])
	}
	for i, rec := range result.Frames[:3] {
		if !rec.Fired {
			t.Errorf("frame %d should have fired", i+1)
		}
	}
}

func TestSimulatorRecordsOnlyEjectedShots(t *testing.T) {
	sp := drift(t, "rk4")
	sp.Ship.ParticleCount = 2
	sim := New(sp)
	sim.AddMetric(metrics.NewShots())

	always := func(int) (float64, bool) { return math.Pi / 2, true }
	result, err := sim.Run(context.Background(), Config{Frames: 5, Dt: 1, SubSteps: 1}, always)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	fired := 0
	for _, rec := range result.Frames {
		if rec.Fired {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("expected 2 fired frames with a 2 particle tank, got %d", fired)
	}
	if result.Metrics["shots"] != 2 {
		t.Errorf("expected 2 shots, got %v", result.Metrics["shots"])
	}
}

func TestSimulatorRunsAllFrames(t *testing.T) {
	sim := New(drift(t, "rk4"))
	result, err := sim.Run(context.Background(), Config{Frames: 10, Dt: 1, SubSteps: 2}, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Frames) != 10 {
		t.Errorf("expected 10 frames, got %d", len(result.Frames))
	}
	if result.Frames[9].Frame != 10 {
		t.Errorf("expected last frame 10, got %d", result.Frames[9].Frame)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative dt", Config{Dt: -0.1, Frames: 1, SubSteps: 1}},
		{"negative frames", Config{Dt: 1, Frames: -1, SubSteps: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(drift(t, "rk4")).Run(context.Background(), tt.cfg, nil); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorNoShip(t *testing.T) {
	sp, err := space.New(10, 10, 1, space.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(sp).Run(context.Background(), Config{Dt: 1, Frames: 1, SubSteps: 1}, nil)
	if !errors.Is(err, dynamo.ErrNoShip) {
		t.Errorf("expected ErrNoShip, got %v", err)
	}
}

func TestSimulatorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(drift(t, "rk4")).Run(ctx, Config{Dt: 1, Frames: 5, SubSteps: 1}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSimulatorObserver(t *testing.T) {
	sim := New(drift(t, "rk4"))
	count := 0
	sim.AddObserver(ObserverFunc(func(sp *space.Space, rec storage.FrameRecord) {
		count++
		if rec.Frame != sp.Frame() {
			t.Errorf("record frame %d does not match space frame %d", rec.Frame, sp.Frame())
		}
	}))
	if _, err := sim.Run(context.Background(), Config{Dt: 1, Frames: 7, SubSteps: 1}, nil); err != nil {
		t.Fatal(err)
	}
	if count != 7 {
		t.Errorf("expected 7 observations, got %d", count)
	}
}

func TestEnsemble(t *testing.T) {
	variants := make([]Variant, 0, 3)
	for _, name := range []string{"rk4", "euler", "leapfrog"} {
		variants = append(variants, Variant{Name: name, Build: func() (*space.Space, error) {
			opts := space.DefaultOptions()
			opts.Integrator = name
			return level.Build(level.Preset("drift"), opts)
		}})
	}

	results, err := NewEnsemble(variants...).Run(context.Background(), Config{Frames: 50, Dt: 1, SubSteps: 1}, thrust)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// The drift level is flat, so every integrator agrees.
	x := results[0].Frames[49].ShipX
	for i, r := range results {
		if math.Abs(r.Frames[49].ShipX-x) > 1e-9 {
			t.Errorf("variant %s: expected x=%f, got %f", variants[i].Name, x, r.Frames[49].ShipX)
		}
	}
}

func TestEnsembleBuildError(t *testing.T) {
	bad := Variant{Name: "bad", Build: func() (*space.Space, error) {
		opts := space.DefaultOptions()
		opts.Integrator = "nope"
		return level.Build(level.Preset("drift"), opts)
	}}
	if _, err := NewEnsemble(bad).Run(context.Background(), Config{Frames: 1, Dt: 1, SubSteps: 1}, nil); err == nil {
		t.Error("expected build error")
	}
}
