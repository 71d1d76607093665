// Package viz draws a running space in the terminal.
//
// The play view rasterizes the potential field into shade glyphs, overlays
// the ship, particles and interactables, and lets the player aim and fire.
//
// # Key Bindings
//
//	Left/Right, H/L - Rotate aim
//	Space           - Fire one unit of reaction mass
//	P               - Pause/Resume
//	R               - Restart the level
//	T               - Cycle color themes
//	Q               - Quit
//
// The field raster is rebuilt only when the space reports that its
// potential changed.
package viz
