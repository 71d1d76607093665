package level

import (
	"math"
	"sort"

	"github.com/san-kum/greyspace/internal/dynamo"
)

var presets = map[string]func() *Level{
	"drift":     drift,
	"valley":    valley,
	"minefield": minefield,
	"orbit":     orbit,
}

// Preset returns a fresh copy of the built-in level name, or nil.
func Preset(name string) *Level {
	gen, ok := presets[name]
	if !ok {
		return nil
	}
	l := gen()
	l.Name = name
	return l
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func defaultShip(pos dynamo.Vec2) *ShipSpec {
	return &ShipSpec{
		Pos:              pos,
		Size:             2,
		ShipMass:         2,
		ParticleMass:     1,
		ParticleCount:    5,
		ParticleVelocity: 0.1,
	}
}

func grid(w, h int, fn func(x, y float64) float64) [][]float64 {
	rows := make([][]float64, h)
	for y := range rows {
		rows[y] = make([]float64, w)
		for x := range rows[y] {
			rows[y][x] = dynamo.Clamp(fn(float64(x), float64(y)), 0, 1)
		}
	}
	return rows
}

// drift is flat black space with an exit to the east.
func drift() *Level {
	return &Level{
		Width:   100,
		Height:  100,
		Gravity: 0.05,
		Border:  10,
		Ship:    defaultShip(dynamo.V(50, 50)),
		Exits:   []ExitSpec{{Pos: dynamo.V(90, 50), Size: 5}},
	}
}

// valley is a parabolic trough running west to east. The ship starts on
// the northern slope with fuel waiting at the floor.
func valley() *Level {
	const w, h = 120, 80
	mid := float64(h) / 2
	return &Level{
		Width:   w,
		Height:  h,
		Gravity: 0.05,
		Border:  10,
		Potential: grid(w, h, func(x, y float64) float64 {
			d := (y - mid) / mid
			return d * d
		}),
		Ship:  defaultShip(dynamo.V(15, 20)),
		Exits: []ExitSpec{{Pos: dynamo.V(110, 40), Size: 5}},
		Fuels: []FuelSpec{{Pos: dynamo.V(60, 40), Size: 3, Particles: 5, Boost: 0}},
	}
}

// minefield scatters bombs of both polarities across a gentle ramp.
func minefield() *Level {
	const w, h = 100, 100
	l := &Level{
		Width:   w,
		Height:  h,
		Gravity: 0.05,
		Border:  10,
		Potential: grid(w, h, func(x, y float64) float64 {
			return 0.3 * (1 - x/w)
		}),
		Ship:  defaultShip(dynamo.V(10, 50)),
		Exits: []ExitSpec{{Pos: dynamo.V(92, 50), Size: 4}},
	}
	for i := 0; i < 8; i++ {
		pol := "white"
		if i%2 == 1 {
			pol = "black"
		}
		l.Bombs = append(l.Bombs, BombSpec{
			Pos:      dynamo.V(25+float64(i)*8, 50+20*math.Sin(float64(i))),
			Size:     2,
			Range:    12,
			Polarity: pol,
		})
	}
	return l
}

// orbit places two planets in a shallow bowl.
func orbit() *Level {
	const w, h = 100, 100
	return &Level{
		Width:   w,
		Height:  h,
		Gravity: 0.05,
		Border:  10,
		Potential: grid(w, h, func(x, y float64) float64 {
			return 0.5 * math.Hypot(x-w/2, y-h/2) / (w / 2)
		}),
		Ship:    defaultShip(dynamo.V(20, 50)),
		Exits:   []ExitSpec{{Pos: dynamo.V(80, 50), Size: 4}},
		Planets: []PlanetSpec{{Pos: dynamo.V(50, 35), Size: 4, Exponent: 2}, {Pos: dynamo.V(50, 65), Size: 3, Exponent: 1}},
		Fuels:   []FuelSpec{{Pos: dynamo.V(50, 50), Size: 2, Particles: 3, Boost: 0.05}},
	}
}
