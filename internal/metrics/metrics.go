package metrics

import "github.com/san-kum/greyspace/internal/space"

// Metric accumulates a single number over the frames of a run.
type Metric interface {
	Name() string
	Observe(s *space.Space)
	Value() float64
	Reset()
}

// Default returns the metrics recorded for every run.
func Default() []Metric {
	return []Metric{
		NewEnergy(),
		NewEnergyExcess(),
		NewSpeed(),
		NewSpeedStdDev(),
		NewPeakParticles(),
		NewShots(),
	}
}

// Observe feeds one frame to every metric.
func Observe(ms []Metric, s *space.Space) {
	for _, m := range ms {
		m.Observe(s)
	}
}

func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
