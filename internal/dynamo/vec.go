package dynamo

import "math"

// Vec2 is a 2D vector. Value methods allocate a new result, the *InPlace
// methods mutate the receiver.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Direction returns the unit vector at angle theta (radians).
func Direction(theta float64) Vec2 {
	s, c := math.Sincos(theta)
	return Vec2{X: c, Y: s}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64  { return math.Hypot(v.X-o.X, v.Y-o.Y) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) AddScaled(o Vec2, f float64) Vec2 {
	return Vec2{v.X + o.X*f, v.Y + o.Y*f}
}

// IsValid reports whether both components are finite.
func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// WithLen returns v rescaled to length l. The zero vector stays zero.
func (v Vec2) WithLen(l float64) Vec2 {
	n := v.Len()
	if n == 0 {
		return Vec2{}
	}
	return v.Scale(l / n)
}

func (v *Vec2) AddInPlace(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vec2) SubInPlace(o Vec2) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vec2) ScaleInPlace(f float64) {
	v.X *= f
	v.Y *= f
}

func (v *Vec2) AddScaledInPlace(o Vec2, f float64) {
	v.X += o.X * f
	v.Y += o.Y * f
}

func (v *Vec2) Set(x, y float64) {
	v.X, v.Y = x, y
}

// Finite reports whether f is neither NaN nor infinite.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
