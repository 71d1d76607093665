package config

import (
	"math"
	"sort"
)

// Presets are canned runs keyed by level, then by run name.
var Presets = map[string]map[string]*Config{
	"drift": {
		"thrust": {
			Level: "drift", Integrator: "rk4", Dt: 1, SubSteps: 1, Frames: 600, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: 0}, {Frame: 2, Angle: 0}, {Frame: 3, Angle: 0}},
		},
		"coast": {
			Level: "drift", Integrator: "rk4", Dt: 1, SubSteps: 1, Frames: 300, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
		},
	},
	"valley": {
		"slide": {
			Level: "valley", Integrator: "rk4", Dt: 0.5, SubSteps: 2, Frames: 1200, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: 0}, {Frame: 200, Angle: 0}},
		},
		"leapfrog": {
			Level: "valley", Integrator: "leapfrog", Dt: 0.5, SubSteps: 2, Frames: 1200, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: 0}},
		},
	},
	"minefield": {
		"run": {
			Level: "minefield", Integrator: "rk4", Dt: 1, SubSteps: 1, Frames: 900, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: 0}, {Frame: 2, Angle: 0}},
		},
		"quiet": {
			Level: "minefield", Integrator: "rk4", Dt: 1, SubSteps: 1, Frames: 900, FPS: 30,
			MaxParticles: 256, Waves: false, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: 0}, {Frame: 2, Angle: 0}},
		},
	},
	"orbit": {
		"slingshot": {
			Level: "orbit", Integrator: "rk4", Dt: 0.5, SubSteps: 4, Frames: 2000, FPS: 30,
			MaxParticles: 256, Waves: true, LogLevel: "info",
			Script: []FireCommand{{Frame: 1, Angle: -math.Pi / 8}},
		},
	},
}

// GetPreset returns a copy of the preset, or nil.
func GetPreset(level, name string) *Config {
	runs, ok := Presets[level]
	if !ok {
		return nil
	}
	cfg, ok := runs[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Script = append([]FireCommand(nil), cfg.Script...)
	return &cp
}

func ListPresets(level string) []string {
	runs, ok := Presets[level]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(runs))
	for name := range runs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListLevels() []string {
	levels := make([]string, 0, len(Presets))
	for level := range Presets {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}
