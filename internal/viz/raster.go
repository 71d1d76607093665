package viz

import (
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/greyspace/internal/dynamo"
	"github.com/san-kum/greyspace/internal/space"
)

// shades run from low potential (black) to high (white).
var shades = []rune(" .:-=+*#%@")

// Raster is a screen-resolution sampling of a field.
type Raster struct {
	Cols, Rows int
	values     []float64
	lo, hi     float64
}

func NewRaster(cols, rows int) *Raster {
	return &Raster{Cols: cols, Rows: rows, values: make([]float64, cols*rows)}
}

// WorldPoint returns the field position at the centre of screen cell (col, row).
func (r *Raster) WorldPoint(s *space.Space, col, row int) dynamo.Vec2 {
	sx := float64(s.Field.Width) / float64(r.Cols)
	sy := float64(s.Field.Height) / float64(r.Rows)
	return dynamo.V((float64(col)+0.5)*sx, (float64(row)+0.5)*sy)
}

// ScreenPoint maps a field position to a screen cell.
func (r *Raster) ScreenPoint(s *space.Space, p dynamo.Vec2) (int, int) {
	col := int(p.X * float64(r.Cols) / float64(s.Field.Width))
	row := int(p.Y * float64(r.Rows) / float64(s.Field.Height))
	if p.X < 0 {
		col--
	}
	if p.Y < 0 {
		row--
	}
	return col, row
}

// Sample reads the potential under every screen cell.
func (r *Raster) Sample(s *space.Space) {
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			r.values[row*r.Cols+col] = s.Potential(r.WorldPoint(s, col, row))
		}
	}
	r.lo, r.hi = floats.Min(r.values), floats.Max(r.values)
}

// Range is the smallest and largest sampled potential.
func (r *Raster) Range() (float64, float64) { return r.lo, r.hi }

// Shade maps the sample under (col, row) to a glyph. Values are placed on
// the fixed 0..1 scale, widened to the sampled range when it exceeds it.
func (r *Raster) Shade(col, row int) rune {
	lo, hi := min(r.lo, 0), max(r.hi, 1)
	t := (r.values[row*r.Cols+col] - lo) / (hi - lo)
	i := int(t * float64(len(shades)-1))
	return shades[min(max(i, 0), len(shades)-1)]
}

// Draw paints the shades onto c.
func (r *Raster) Draw(c *Canvas, ink lipgloss.Color) {
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			c.Set(col, row, r.Shade(col, row), ink)
		}
	}
}
