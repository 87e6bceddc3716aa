// Package basin turns the pole classifier into an image.
//
// A render simulates a single quadrant of the plane, x and y in [0, 1),
// and mirrors it into the full canvas afterwards:
//
//   - [SamplePixel]: Monte-Carlo votes for one pixel
//   - [RenderPartials]: fans the sample budget out over workers
//   - [Aggregate]: averages the per-worker grids
//   - [ExpandToCanvas]: mirrors the quadrant into a 2·size canvas
//   - [RenderQuadrant]: the three steps above in one call
//
// # Reproducibility
//
// Each worker draws from its own PCG stream seeded from a master stream.
// With a fixed seed, size, sample count and worker count the output is
// bit-identical regardless of goroutine scheduling.
package basin
