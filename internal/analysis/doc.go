// Package analysis inspects recorded and live runs.
//
//   - [Path] and [SpeedPotential]: point sets drawn from recorded frames
//   - [PlotASCII]: terminal scatter plot of a point set
//   - [LaunchSensitivity]: how fast two nearly identical launches diverge
//
// A positive sensitivity rate means small aiming errors grow, which is
// typical near planets and bomb craters:
//
//	d, err := analysis.LaunchSensitivity(ctx, build, angle, 1e-6, cfg)
//	if d.Rate > 0 {
//	    // launch is unstable
//	}
package analysis
