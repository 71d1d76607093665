// Package field implements the scalar potential field the bodies move
// through.
//
// A [Field] is the sum of three parts:
//
//   - a stored row-major grid of cell potentials over [0,Width)x[0,Height),
//     with a radial falloff that keeps rising outside the domain
//   - permanent [Source] contributions such as [Planet]
//   - transient [Effect] contributions such as [Wave], which expire
//
// Sampling at arbitrary real coordinates goes through [Field.ClosestPotential]
// and [Field.ClosestGradient], both bilinear blends of the four surrounding
// grid points. The gradient is the central difference at each grid point
// blended the same way, not the derivative of the blended potential.
//
// Every mutation bumps [Field.Revision] so that bodies and renderers can tell
// that cached energies or rasters are stale.
package field
