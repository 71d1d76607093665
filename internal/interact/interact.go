// Package interact holds the static and field-mutating objects a body can
// collide with.
package interact

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/greyspace/internal/body"
	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/field"
)

// Planet is a permanent field contributor; it has no contact behaviour.
type Planet = field.Planet

// Fuel grants reaction mass and ejection speed to the ship that touches it.
type Fuel struct {
	Pos       dynamo.Vec2
	Size      float64
	Particles int
	Boost     float64
}

func (fu *Fuel) Hits(b body.MovingBody) bool {
	k := b.Kin()
	return body.Overlaps(k.Pos, k.Size, fu.Pos, fu.Size)
}

// Exit completes the level.
type Exit struct {
	Pos  dynamo.Vec2
	Size float64
}

func (e *Exit) Hits(b body.MovingBody) bool {
	k := b.Kin()
	return body.Overlaps(k.Pos, k.Size, e.Pos, e.Size)
}

// Polarity is the direction a bomb pushes the field.
type Polarity int

const (
	// White raises potential toward 1.
	White Polarity = iota
	// Black lowers potential toward 0.
	Black
)

func (p Polarity) String() string {
	if p == Black {
		return "black"
	}
	return "white"
}

// Target is the potential the blast blends toward.
func (p Polarity) Target() float64 {
	if p == Black {
		return 0
	}
	return 1
}

func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "white", "whiten":
		return White, nil
	case "black", "blacken":
		return Black, nil
	}
	return White, fmt.Errorf("unknown polarity: %q", s)
}

// Bomb detonates on contact, reshaping the field within Range.
type Bomb struct {
	Pos      dynamo.Vec2
	Size     float64
	Range    float64
	Polarity Polarity
}

func (bo *Bomb) Hits(b body.MovingBody) bool {
	k := b.Kin()
	return body.Overlaps(k.Pos, k.Size, bo.Pos, bo.Size)
}

// Detonate blends every stored cell closer than Range toward the bomb's
// target with weight (Range-d)/Range. It returns the number of cells touched.
func (bo *Bomb) Detonate(f *field.Field) int {
	r := bo.Range
	if !dynamo.Check(r > 0 && dynamo.Finite(r), "bomb with non-positive range", "range", r) {
		return 0
	}
	target := bo.Polarity.Target()

	x0 := max(0, int(math.Floor(bo.Pos.X-r)))
	x1 := min(f.Width-1, int(math.Ceil(bo.Pos.X+r)))
	y0 := max(0, int(math.Floor(bo.Pos.Y-r)))
	y1 := min(f.Height-1, int(math.Ceil(bo.Pos.Y+r)))

	n := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := bo.Pos.Dist(dynamo.V(float64(x), float64(y)))
			if d >= r {
				continue
			}
			w := (r - d) / r
			old, _ := f.Cell(x, y)
			f.SetPotential(x, y, old*(1-w)+target*w)
			n++
		}
	}
	return n
}

// Wave defaults for the ring a detonation sends out.
const (
	WaveAmplitude = 0.3
	WaveSpeed     = 1.0
	WaveWidth     = 2.0
)

// Wave returns the expanding ring left by a detonation. It reaches the edge
// of the blast radius as it fades out.
func (bo *Bomb) Wave() *field.Wave {
	amp := WaveAmplitude
	if bo.Polarity == Black {
		amp = -amp
	}
	return field.NewWave(bo.Pos, amp, WaveSpeed, WaveWidth, bo.Range/WaveSpeed)
}
