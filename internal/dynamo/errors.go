package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidTimestep indicates a NaN, infinite or negative time delta.
	ErrInvalidTimestep = errors.New("dynamo: invalid timestep (NaN, Inf or negative)")

	// ErrInvalidDimensions indicates a field or level with a non-positive size.
	ErrInvalidDimensions = errors.New("dynamo: invalid field dimensions")

	// ErrUnknownIntegrator indicates an integrator name with no registered stepper.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownLevel indicates a level name that is neither a preset nor a file.
	ErrUnknownLevel = errors.New("dynamo: unknown level")

	// ErrInvalidLevel indicates a level document the simulation cannot run.
	ErrInvalidLevel = errors.New("dynamo: invalid level")

	// ErrNoShip indicates an operation that needs a ship before one was set up.
	ErrNoShip = errors.New("dynamo: no ship set up")
)

// StepError wraps an error with the simulation frame it occurred in.
type StepError struct {
	Frame   int
	Dt      float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("frame %d (dt=%g): %v", e.Frame, e.Dt, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
