// Package dynamo provides the shared primitives of the greyspace simulation.
//
// The package defines the small value types and error values that every
// other package builds on:
//
//   - [Vec2]: 2D vector with allocating and in-place arithmetic
//   - sentinel errors such as [ErrInvalidTimestep]
//   - [Check]: runtime guard that warns in release builds and panics in
//     builds tagged greydebug
//
// # Example
//
//	v := dynamo.V(3, 4)
//	v.AddScaledInPlace(dynamo.Direction(0), 0.5)
//	speed := v.Len()
package dynamo
