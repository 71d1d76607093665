package integrators

import "github.com/san-kum/greyspace/internal/dynamo"

// Leapfrog is the kick-drift-kick form of velocity Verlet.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(pos, vel dynamo.Vec2, accel AccelFunc, dt float64) (dynamo.Vec2, dynamo.Vec2) {
	halfDt := dt * 0.5
	v := vel.AddScaled(accel(pos), halfDt)
	p := pos.AddScaled(v, dt)
	v = v.AddScaled(accel(p), halfDt)
	return p, v
}
