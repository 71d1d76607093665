package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/greyspace/internal/config"
	"github.com/san-kum/greyspace/internal/level"
	"github.com/san-kum/greyspace/internal/metrics"
	"github.com/san-kum/greyspace/internal/sim"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields fall back to the defaults of
// config.DefaultConfig.
type ScenarioStep struct {
	Level      string               `yaml:"level"`
	Integrator string               `yaml:"integrator"`
	Dt         float64              `yaml:"dt"`
	SubSteps   int                  `yaml:"sub_steps"`
	Frames     int                  `yaml:"frames"`
	Script     []config.FireCommand `yaml:"script"`
	SaveAs     string               `yaml:"save_as"`
}

type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step against the defaults.
func (st ScenarioStep) Config() *config.Config {
	cfg := config.DefaultConfig()
	if st.Level != "" {
		cfg.Level = st.Level
	}
	if st.Integrator != "" {
		cfg.Integrator = st.Integrator
	}
	if st.Dt != 0 {
		cfg.Dt = st.Dt
	}
	if st.SubSteps != 0 {
		cfg.SubSteps = st.SubSteps
	}
	if st.Frames != 0 {
		cfg.Frames = st.Frames
	}
	cfg.Script = st.Script
	return cfg
}

// RunConfig builds the configured level and runs it headless with the
// default metrics. The run stops when the level ends.
func RunConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sim.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, err := level.Resolve(cfg.Level)
	if err != nil {
		return nil, err
	}
	sp, err := level.Build(lvl, cfg.SpaceOptions(logger))
	if err != nil {
		return nil, err
	}

	s := sim.New(sp)
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s.Run(ctx, sim.Config{Frames: cfg.Frames, Dt: cfg.Dt, SubSteps: cfg.SubSteps, StopOnEnd: true}, cfg.FireAt)
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("running scenario step", "step", i+1, "of", len(scenario.Steps), "level", step.Level)

		result, err := RunConfig(ctx, step.Config(), logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Result: result})
	}

	return results, nil
}

// AngleSweep fires Shots units at each of NumSteps angles spread evenly
// over [AngleMin, AngleMax] and records how each run ends.
type AngleSweep struct {
	Level      string
	Integrator string
	Dt         float64
	SubSteps   int
	Frames     int
	Shots      int
	AngleMin   float64
	AngleMax   float64
	NumSteps   int
}

// SweepResult holds the outcome of one angle
type SweepResult struct {
	Angle     float64
	Completed bool
	Lost      bool
	Frames    int
	Metrics   map[string]float64
}

// RunSweep executes a sweep over launch angles
func RunSweep(ctx context.Context, sweep *AngleSweep, logger *slog.Logger) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	angleStep := 0.0
	if sweep.NumSteps > 1 {
		angleStep = (sweep.AngleMax - sweep.AngleMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		angle := sweep.AngleMin + float64(i)*angleStep
		cfg := ScenarioStep{
			Level:      sweep.Level,
			Integrator: sweep.Integrator,
			Dt:         sweep.Dt,
			SubSteps:   sweep.SubSteps,
			Frames:     sweep.Frames,
		}.Config()
		for shot := 1; shot <= sweep.Shots; shot++ {
			cfg.Script = append(cfg.Script, config.FireCommand{Frame: shot, Angle: angle})
		}

		result, err := RunConfig(ctx, cfg, logger)
		if err != nil {
			return results, fmt.Errorf("angle %.4f: %w", angle, err)
		}

		results = append(results, SweepResult{
			Angle:     angle,
			Completed: result.Completed,
			Lost:      result.Lost,
			Frames:    len(result.Frames),
			Metrics:   result.Metrics,
		})
	}

	return results, nil
}
