package basin

import (
	"math/rand/v2"
	"testing"

	"github.com/san-kum/basinsim/internal/physics"
)

func BenchmarkSamplePixel(b *testing.B) {
	params := physics.DefaultParams()
	rng := rand.New(rand.NewPCG(1, 1))
	corner := pixelCorner(3, 5, 16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SamplePixel(corner, 1.0/16, 4, params, rng)
	}
}

func BenchmarkRenderQuadrant(b *testing.B) {
	params := physics.DefaultParams()
	params.MaxSteps = 1000
	seed := uint64(1)
	opts := Options{Size: 8, Samples: 4, Workers: 4, Seed: &seed, OnProgress: func(int) {}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RenderQuadrant(params, opts); err != nil {
			b.Fatal(err)
		}
	}
}
