package integrators

import "github.com/san-kum/greyspace/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(pos, vel dynamo.Vec2, accel AccelFunc, dt float64) (dynamo.Vec2, dynamo.Vec2) {
	a := accel(pos)
	return pos.AddScaled(vel, dt), vel.AddScaled(a, dt)
}
