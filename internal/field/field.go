package field

import (
	"fmt"
	"math"

	"github.com/san-kum/greyspace/internal/dynamo"
)

// Baseline is the potential at the domain edge seen from outside.
const Baseline = 1.0

// coordLimit bounds sampling coordinates so float-to-int conversion stays
// defined for positions far outside the domain.
const coordLimit = 1e7

type Field struct {
	Width, Height int
	Border        float64
	Gravity       float64

	cells    []float64
	sources  []Source
	effects  []Effect
	revision uint64
}

// New creates a field with every cell at zero potential.
func New(width, height int, border, gravity float64) (*Field, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", dynamo.ErrInvalidDimensions, width, height)
	}
	if !dynamo.Check(border > 0 && dynamo.Finite(border), "field border must be positive, using 1", "border", border) {
		border = 1
	}
	return &Field{
		Width:   width,
		Height:  height,
		Border:  border,
		Gravity: gravity,
		cells:   make([]float64, width*height),
	}, nil
}

func (f *Field) Contains(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// InDomain reports whether p lies in [0,Width)x[0,Height).
func (f *Field) InDomain(p dynamo.Vec2) bool {
	return p.X >= 0 && p.X < float64(f.Width) && p.Y >= 0 && p.Y < float64(f.Height)
}

// Revision increases on every change to the field's potential.
func (f *Field) Revision() uint64 { return f.revision }

func (f *Field) touch() { f.revision++ }

// Cell returns the stored potential of an in-domain cell.
func (f *Field) Cell(x, y int) (float64, bool) {
	if !f.Contains(x, y) {
		return 0, false
	}
	return f.cells[y*f.Width+x], true
}

// SetPotential overwrites a stored cell. Out-of-domain writes are rejected.
func (f *Field) SetPotential(x, y int, v float64) bool {
	if !dynamo.Check(f.Contains(x, y), "set potential outside domain", "x", x, "y", y) {
		return false
	}
	if !dynamo.Check(dynamo.Finite(v), "non-finite potential ignored", "x", x, "y", y) {
		return false
	}
	f.cells[y*f.Width+x] = v
	f.touch()
	return true
}

// Fill sets every stored cell to v.
func (f *Field) Fill(v float64) {
	for i := range f.cells {
		f.cells[i] = v
	}
	f.touch()
}

// Rows returns a copy of the stored grid, one slice per row.
func (f *Field) Rows() [][]float64 {
	rows := make([][]float64, f.Height)
	for y := range rows {
		rows[y] = append([]float64(nil), f.cells[y*f.Width:(y+1)*f.Width]...)
	}
	return rows
}

// SetRows replaces the stored grid. rows must be Height rows of Width values.
func (f *Field) SetRows(rows [][]float64) error {
	if len(rows) != f.Height {
		return fmt.Errorf("%w: got %d rows, want %d", dynamo.ErrInvalidDimensions, len(rows), f.Height)
	}
	for y, row := range rows {
		if len(row) != f.Width {
			return fmt.Errorf("%w: row %d has %d values, want %d", dynamo.ErrInvalidDimensions, y, len(row), f.Width)
		}
	}
	for y, row := range rows {
		copy(f.cells[y*f.Width:], row)
	}
	f.touch()
	return nil
}

// Potential returns the potential at grid point (x, y): the stored cell or
// the outside falloff, plus every source and active effect.
func (f *Field) Potential(x, y int) float64 {
	v := f.base(x, y)
	if len(f.sources) == 0 && len(f.effects) == 0 {
		return v
	}
	p := dynamo.V(float64(x), float64(y))
	for _, s := range f.sources {
		v += s.PotentialAt(p)
	}
	for _, e := range f.effects {
		v += e.PotentialAt(p)
	}
	return v
}

func (f *Field) base(x, y int) float64 {
	if f.Contains(x, y) {
		return f.cells[y*f.Width+x]
	}
	dx := outside(x, f.Width)
	dy := outside(y, f.Height)
	return math.Hypot(dx, dy)/f.Border + Baseline
}

// outside is the distance from i to the nearest index in [0, n).
func outside(i, n int) float64 {
	switch {
	case i < 0:
		return float64(-i)
	case i >= n:
		return float64(i - n + 1)
	}
	return 0
}

// ClosestPotential bilinearly interpolates the potential at p.
func (f *Field) ClosestPotential(p dynamo.Vec2) float64 {
	ix, iy, fx, fy, ok := f.locate(p)
	if !ok {
		return Baseline
	}
	return bilerp(fx, fy,
		f.Potential(ix, iy), f.Potential(ix+1, iy),
		f.Potential(ix, iy+1), f.Potential(ix+1, iy+1))
}

// ClosestGradient returns the gravity-scaled central-difference gradient at
// the four grid points around p, blended with the same weights as
// ClosestPotential.
func (f *Field) ClosestGradient(p dynamo.Vec2) dynamo.Vec2 {
	ix, iy, fx, fy, ok := f.locate(p)
	if !ok {
		return dynamo.Vec2{}
	}
	g00 := f.gridGradient(ix, iy)
	g10 := f.gridGradient(ix+1, iy)
	g01 := f.gridGradient(ix, iy+1)
	g11 := f.gridGradient(ix+1, iy+1)
	return dynamo.Vec2{
		X: bilerp(fx, fy, g00.X, g10.X, g01.X, g11.X),
		Y: bilerp(fx, fy, g00.Y, g10.Y, g01.Y, g11.Y),
	}
}

// Accel is the acceleration a body feels at p: the negated gradient.
func (f *Field) Accel(p dynamo.Vec2) dynamo.Vec2 {
	return f.ClosestGradient(p).Neg()
}

func (f *Field) gridGradient(x, y int) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (f.Potential(x+1, y) - f.Potential(x-1, y)) * f.Gravity,
		Y: (f.Potential(x, y+1) - f.Potential(x, y-1)) * f.Gravity,
	}
}

func (f *Field) locate(p dynamo.Vec2) (ix, iy int, fx, fy float64, ok bool) {
	if !dynamo.Check(p.IsValid(), "field sampled at non-finite position", "x", p.X, "y", p.Y) {
		return 0, 0, 0, 0, false
	}
	x := dynamo.Clamp(p.X, -coordLimit, coordLimit)
	y := dynamo.Clamp(p.Y, -coordLimit, coordLimit)
	x0, y0 := math.Floor(x), math.Floor(y)
	return int(x0), int(y0), x - x0, y - y0, true
}

func bilerp(fx, fy, v00, v10, v01, v11 float64) float64 {
	return v00*(1-fx)*(1-fy) + v10*fx*(1-fy) + v01*(1-fx)*fy + v11*fx*fy
}
