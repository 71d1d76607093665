package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/greyspace/internal/dynamo"
)

// AccelFunc returns the acceleration felt at a position.
type AccelFunc func(pos dynamo.Vec2) dynamo.Vec2

// Stepper advances a (position, velocity) pair by one step of dt.
type Stepper interface {
	Step(pos, vel dynamo.Vec2, accel AccelFunc, dt float64) (dynamo.Vec2, dynamo.Vec2)
}

var registry = map[string]func() Stepper{
	"rk4":      func() Stepper { return NewRK4() },
	"euler":    func() Stepper { return NewEuler() },
	"leapfrog": func() Stepper { return NewLeapfrog() },
}

// New returns the stepper registered under name.
func New(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
