// Package dynamo provides the shared primitives of the basin renderer.
//
// The package defines the small value types and errors every other
// package builds on:
//
//   - [Vec2]: immutable 2D vector used for positions, velocities and
//     per-pixel pole votes
//   - domain errors returned when a render is asked for a degenerate shape
//
// # Example
//
//	p := dynamo.Vec2{X: 0.3, Y: 0.1}
//	d := pole.Sub(p)
//	dist := d.Length()
//
// # Thread Safety
//
// All types are plain values and safe to share between goroutines.
package dynamo
