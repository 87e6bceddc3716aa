package basin

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/physics"
)

// Options controls how a quadrant is sampled.
type Options struct {
	Size    int
	Samples int
	Workers int
	// Seed makes the render reproducible. A nil seed is drawn from the
	// runtime's entropy source once, before any worker starts.
	Seed *uint64
	// OnProgress, if set, is called from worker goroutines after every
	// pixel with the number of samples that pixel took.
	OnProgress func(samples int)
}

// Render is a finished quadrant together with the values actually used to
// produce it.
type Render struct {
	Quadrant *Grid
	// Samples is the per-pixel sample count after rounding up to a multiple
	// of Workers.
	Samples int
	Workers int
	Seed    uint64
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("size %d: %w", o.Size, dynamo.ErrInvalidSize)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("workers %d: %w", o.Workers, dynamo.ErrInvalidWorkers)
	}
	if o.Samples <= 0 {
		return fmt.Errorf("samples %d: %w", o.Samples, dynamo.ErrInvalidSamples)
	}
	return nil
}

func (o Options) resolveSeed() uint64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return rand.Uint64()
}

// RenderQuadrant samples the quadrant on Workers goroutines and averages
// their grids. The caller blocks until every worker is done.
func RenderQuadrant(params physics.Params, opts Options) (*Render, error) {
	seed := opts.resolveSeed()
	opts.Seed = &seed

	partials, err := RenderPartials(params, opts)
	if err != nil {
		return nil, err
	}
	quadrant, err := Aggregate(partials)
	if err != nil {
		return nil, err
	}
	return &Render{
		Quadrant: quadrant,
		Samples:  RoundUpSamples(opts.Samples, opts.Workers),
		Workers:  opts.Workers,
		Seed:     seed,
	}, nil
}

// RenderPartials runs one sampling pass per worker over the whole quadrant,
// each with its share of the rounded-up sample budget, and returns the
// per-worker grids in worker order.
func RenderPartials(params physics.Params, opts Options) ([]*Grid, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	shares := Split(RoundUpSamples(opts.Samples, opts.Workers), opts.Workers)
	seed := opts.resolveSeed()
	master := rand.New(rand.NewPCG(seed, seed))

	// streams are derived up front so worker i always gets the same one
	rngs := make([]*rand.Rand, len(shares))
	for i := range rngs {
		rngs[i] = rand.New(rand.NewPCG(master.Uint64(), master.Uint64()))
	}

	results := make([]*Grid, len(shares))
	errs := make([]error, len(shares))

	var wg sync.WaitGroup
	for i, share := range shares {
		wg.Add(1)
		go func(idx, samples int) {
			defer wg.Done()
			results[idx], errs[idx] = samplePass(params, opts.Size, samples, rngs[idx], opts.OnProgress)
		}(i, share)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func samplePass(params physics.Params, size, samples int, rng *rand.Rand, onProgress func(int)) (*Grid, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	width := 1 / float64(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, SamplePixel(pixelCorner(x, y, size), width, samples, params, rng))
			if onProgress != nil {
				onProgress(samples)
			}
		}
	}
	return g, nil
}
