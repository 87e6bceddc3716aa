// Package physics models the double-pole pendulum.
//
// A bob hangs over a plane containing two attracting poles placed
// symmetrically on the x axis. It is released at rest and integrated with
// a fixed-step explicit scheme until it settles near a pole or the step
// budget runs out:
//
//   - [Params]: immutable physical and integration settings
//   - [Classify]: decides which pole a starting point settles on
//   - [Trace]: same integration, recording the trajectory for inspection
//
// # Energy Loss
//
// Quadratic drag is the only dissipation. With zero friction a bob
// never comes to rest and every start point ends [Undetermined].
//
//	params := physics.DefaultParams()
//	switch physics.Classify(dynamo.Vec2{X: 0.3, Y: 0.1}, params) {
//	case physics.ConvergedPole1:
//	    ...
//	}
package physics
