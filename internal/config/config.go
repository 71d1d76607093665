package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/integrators"
	"github.com/san-kum/greyspace/internal/space"
)

const (
	DefaultLevel    = "drift"
	DefaultDt       = 1.0
	DefaultSubSteps = 1
	DefaultFrames   = 600
	DefaultFPS      = 30
)

type Config struct {
	Level        string        `yaml:"level"`
	Integrator   string        `yaml:"integrator"`
	Dt           float64       `yaml:"dt"`
	SubSteps     int           `yaml:"sub_steps"`
	Frames       int           `yaml:"frames"`
	FPS          int           `yaml:"fps"`
	MaxParticles int           `yaml:"max_particles"`
	CullMargin   float64       `yaml:"cull_margin"`
	Waves        bool          `yaml:"waves"`
	LogLevel     string        `yaml:"log_level"`
	Script       []FireCommand `yaml:"script,omitempty"`
}

// FireCommand fires the ship at Angle (radians) at the start of Frame.
type FireCommand struct {
	Frame int     `yaml:"frame"`
	Angle float64 `yaml:"angle"`
}

func DefaultConfig() *Config {
	return &Config{
		Level:        DefaultLevel,
		Integrator:   "rk4",
		Dt:           DefaultDt,
		SubSteps:     DefaultSubSteps,
		Frames:       DefaultFrames,
		FPS:          DefaultFPS,
		MaxParticles: space.DefaultMaxParticles,
		Waves:        true,
		LogLevel:     "info",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !dynamo.Finite(c.Dt) || c.Dt < 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidTimestep, c.Dt)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("sub_steps must be at least 1, got %d", c.SubSteps)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.MaxParticles < 0 {
		return fmt.Errorf("max_particles must not be negative, got %d", c.MaxParticles)
	}
	if _, err := integrators.New(c.Integrator); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	for i, fc := range c.Script {
		if fc.Frame < 0 || !dynamo.Finite(fc.Angle) {
			return fmt.Errorf("script entry %d: bad command %+v", i, fc)
		}
	}
	return nil
}

// SpaceOptions maps the run settings onto simulation options.
func (c *Config) SpaceOptions(logger *slog.Logger) space.Options {
	opts := space.DefaultOptions()
	opts.Integrator = c.Integrator
	opts.MaxParticles = c.MaxParticles
	opts.CullMargin = c.CullMargin
	opts.Waves = c.Waves
	opts.Logger = logger
	return opts
}

// FireAt returns the angle scripted for frame, if any. The first matching
// entry wins.
func (c *Config) FireAt(frame int) (float64, bool) {
	for _, fc := range c.Script {
		if fc.Frame == frame {
			return fc.Angle, true
		}
	}
	return 0, false
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
}
