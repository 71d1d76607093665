// Package body implements the bodies integrated through the potential field.
//
// [Ship] and [Particle] both embed [Kinematics] and satisfy [MovingBody]; the
// integration and collision-response algorithm in [Step] is written once
// against that interface. Capability flags on the interface decide which
// interactions a body takes part in.
//
// # Energy
//
// Each body carries a target mechanical energy, mass*(|v|^2/2 + g*P(pos)).
// It is set when the body is created or its mass changes, refreshed when the
// field revision moves on, and re-asserted after every leaf step: the speed is
// re-derived from it, so the integrator's drift never accumulates.
package body
