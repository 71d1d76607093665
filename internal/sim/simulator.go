package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/metrics"
	"github.com/san-kum/greyspace/internal/space"
	"github.com/san-kum/greyspace/internal/storage"
)

// Simulator runs a space headless for a fixed number of frames.
type Simulator struct {
	sp        *space.Space
	metrics   []metrics.Metric
	observers []Observer
}

func New(sp *space.Space) *Simulator {
	return &Simulator{
		sp:        sp,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Simulator) Space() *space.Space { return s.sp }

func (s *Simulator) Run(ctx context.Context, cfg Config, script Script) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if script == nil {
		script = NoFire
	}

	result := &Result{
		Frames:  make([]storage.FrameRecord, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	metrics.Observe(s.metrics, s.sp)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		angle, fire := script(s.sp.Frame() + 1)
		changed, err := s.sp.Update(cfg.Dt, cfg.SubSteps, fire, angle)
		if err != nil {
			return result, err
		}

		rec := storage.Record(s.sp, changed)
		result.Frames = append(result.Frames, rec)
		metrics.Observe(s.metrics, s.sp)
		for _, obs := range s.observers {
			obs.OnFrame(s.sp, rec)
		}

		if cfg.StopOnEnd && (s.sp.IsLevelCompleted || s.sp.IsLevelLost) {
			break
		}
	}

	result.Completed = s.sp.IsLevelCompleted
	result.Lost = s.sp.IsLevelLost
	result.Metrics = metrics.Collect(s.metrics)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !dynamo.Finite(cfg.Dt) || cfg.Dt < 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidTimestep, cfg.Dt)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	if s.sp.Ship == nil {
		return dynamo.ErrNoShip
	}
	return nil
}
