package metrics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/greyspace/internal/space"
)

type speedSamples struct {
	samples []float64
}

func (sp *speedSamples) observe(s *space.Space) {
	if s.Ship == nil || s.Ship.Frozen {
		return
	}
	sp.samples = append(sp.samples, s.Ship.Vel.Len())
}

func (sp *speedSamples) reset() { sp.samples = sp.samples[:0] }

// Speed is the mean ship speed.
type Speed struct {
	speedSamples
}

func NewSpeed() *Speed { return &Speed{} }

func (sp *Speed) Name() string           { return "speed_mean" }
func (sp *Speed) Observe(s *space.Space) { sp.observe(s) }
func (sp *Speed) Reset()                 { sp.reset() }

func (sp *Speed) Value() float64 {
	if len(sp.samples) == 0 {
		return 0
	}
	return stat.Mean(sp.samples, nil)
}

// SpeedStdDev is the sample standard deviation of the ship speed.
type SpeedStdDev struct {
	speedSamples
}

func NewSpeedStdDev() *SpeedStdDev { return &SpeedStdDev{} }

func (sp *SpeedStdDev) Name() string           { return "speed_stddev" }
func (sp *SpeedStdDev) Observe(s *space.Space) { sp.observe(s) }
func (sp *SpeedStdDev) Reset()                 { sp.reset() }

func (sp *SpeedStdDev) Value() float64 {
	if len(sp.samples) < 2 {
		return 0
	}
	return stat.StdDev(sp.samples, nil)
}
