package analysis

import (
	"context"
	"math"

	"github.com/san-kum/greyspace/internal/space"
)

type SensitivityConfig struct {
	Dt       float64
	SubSteps int
	Frames   int
}

// Divergence describes how two launches separated.
type Divergence struct {
	// Final is the ship separation after the last frame.
	Final float64
	// Rate estimates λ in |δx(t)| ≈ |δx(1)|·e^{λt} by averaging
	// ln(|δx(t)|/|δx(1)|)/t over frames.
	Rate float64
}

// LaunchSensitivity fires one shot at angle in one space and at
// angle+perturbation in another, then tracks the ship separation. build
// must return a fresh space on each call.
func LaunchSensitivity(
	ctx context.Context,
	build func() (*space.Space, error),
	angle, perturbation float64,
	cfg SensitivityConfig,
) (Divergence, error) {
	a, err := build()
	if err != nil {
		return Divergence{}, err
	}
	b, err := build()
	if err != nil {
		return Divergence{}, err
	}

	var d0, sep, sumRate float64
	count := 0
	for frame := 1; frame <= cfg.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return Divergence{}, err
		}
		fire := frame == 1
		if _, err := a.Update(cfg.Dt, cfg.SubSteps, fire, angle); err != nil {
			return Divergence{}, err
		}
		if _, err := b.Update(cfg.Dt, cfg.SubSteps, fire, angle+perturbation); err != nil {
			return Divergence{}, err
		}
		if a.Ship == nil || b.Ship == nil {
			break
		}

		sep = a.Ship.Pos.Dist(b.Ship.Pos)
		if frame == 1 {
			d0 = sep
			continue
		}
		if sep > 0 && d0 > 0 {
			sumRate += math.Log(sep/d0) / float64(frame-1)
			count++
		}
	}

	d := Divergence{Final: sep}
	if count > 0 {
		d.Rate = sumRate / float64(count)
	}
	return d, nil
}
