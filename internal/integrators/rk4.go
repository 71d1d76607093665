package integrators

import "github.com/san-kum/greyspace/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta step over the state
// (position, velocity), where position' = velocity and velocity' = accel.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(pos, vel dynamo.Vec2, accel AccelFunc, dt float64) (dynamo.Vec2, dynamo.Vec2) {
	half := dt * 0.5

	k1 := accel(pos)
	r1 := vel

	k2 := accel(pos.AddScaled(r1, half))
	r2 := vel.AddScaled(k1, half)

	k3 := accel(pos.AddScaled(r2, half))
	r3 := vel.AddScaled(k2, half)

	k4 := accel(pos.AddScaled(r3, dt))
	r4 := vel.AddScaled(k3, dt)

	dt6 := dt / 6.0
	newVel := dynamo.Vec2{
		X: vel.X + dt6*(k1.X+2*k2.X+2*k3.X+k4.X),
		Y: vel.Y + dt6*(k1.Y+2*k2.Y+2*k3.Y+k4.Y),
	}
	newPos := dynamo.Vec2{
		X: pos.X + dt6*(r1.X+2*r2.X+2*r3.X+r4.X),
		Y: pos.Y + dt6*(r1.Y+2*r2.Y+2*r3.Y+r4.Y),
	}
	return newPos, newVel
}
