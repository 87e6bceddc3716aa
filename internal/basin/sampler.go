package basin

import (
	"math/rand/v2"

	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/physics"
)

// SamplePixel classifies n points jittered uniformly inside the pixel whose
// lower corner is corner and whose side is width, and returns the share of
// samples that settled on each pole.
func SamplePixel(corner dynamo.Vec2, width float64, n int, params physics.Params, rng *rand.Rand) dynamo.Vec2 {
	if n <= 0 {
		return dynamo.Zero
	}
	var acc dynamo.Vec2
	for s := 0; s < n; s++ {
		offset := dynamo.Vec2{X: rng.Float64(), Y: rng.Float64()}.Scale(width)
		acc = acc.Add(physics.Classify(corner.Add(offset), params).Vote())
	}
	return acc.Div(float64(n))
}

// pixelCorner maps grid cell (x, y) of a size×size quadrant onto [0,1)².
func pixelCorner(x, y, size int) dynamo.Vec2 {
	return dynamo.Vec2{X: float64(x) / float64(size), Y: float64(y) / float64(size)}
}
