// Package space owns one running level: the field, the ship, the free
// particles and every interactable.
//
// The driver calls [Space.Update] once per frame. Update optionally fires the
// ship, advances field effects, the ship and every particle through the
// integrator in fixed sub-steps, resolves collisions, culls stray particles
// and reports whether the field changed so a renderer can re-rasterize.
//
// # Thread Safety
//
// A Space is NOT safe for concurrent use. All state is owned by the instance
// and mutated only inside its own method calls.
package space
