package basin_test

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/basinsim/internal/basin"
	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/physics"
)

func quickParams() physics.Params {
	p := physics.DefaultParams()
	p.MaxSteps = 400
	return p
}

func seedPtr(s uint64) *uint64 { return &s }

var _ = Describe("Split", func() {
	It("splits 10 over 3 as 4,3,3", func() {
		Expect(basin.Split(10, 3)).To(Equal([]int{4, 3, 3}))
	})

	It("keeps the sum and the floor/ceil bounds", func() {
		for total := 1; total <= 40; total++ {
			for workers := 1; workers <= 12; workers++ {
				shares := basin.Split(total, workers)
				Expect(shares).To(HaveLen(workers))
				sum := 0
				lo, hi := total/workers, (total+workers-1)/workers
				for _, s := range shares {
					sum += s
					Expect(s).To(BeNumerically(">=", lo))
					Expect(s).To(BeNumerically("<=", hi))
				}
				Expect(sum).To(Equal(total), "split(%d, %d)", total, workers)
			}
		}
	})

	It("leaves trailing workers empty when samples run short", func() {
		Expect(basin.Split(3, 5)).To(Equal([]int{1, 1, 1, 0, 0}))
	})

	It("returns nothing for an empty budget", func() {
		Expect(basin.Split(0, 4)).To(BeEmpty())
		Expect(basin.Split(5, 0)).To(BeEmpty())
	})

	It("rounds the budget up to a multiple of the workers", func() {
		Expect(basin.RoundUpSamples(10, 4)).To(Equal(12))
		Expect(basin.RoundUpSamples(12, 4)).To(Equal(12))
		Expect(basin.RoundUpSamples(1, 8)).To(Equal(8))
		Expect(basin.Split(basin.RoundUpSamples(10, 3), 3)).To(Equal([]int{4, 4, 4}))
	})
})

var _ = Describe("SamplePixel", func() {
	params := quickParams()

	It("votes fully for a pole when the pixel lies inside its capture radius", func() {
		rng := rand.New(rand.NewPCG(1, 2))
		corner := params.Pole2().Sub(dynamo.Vec2{X: 0.001, Y: 0.001})
		Expect(basin.SamplePixel(corner, 0.002, 8, params, rng)).To(Equal(dynamo.Vec2{Y: 1}))
	})

	It("returns shares within the unit square", func() {
		rng := rand.New(rand.NewPCG(3, 4))
		v := basin.SamplePixel(dynamo.Vec2{X: 0.1, Y: 0.1}, 0.25, 16, params, rng)
		Expect(v.X).To(BeNumerically(">=", 0))
		Expect(v.Y).To(BeNumerically(">=", 0))
		Expect(v.X + v.Y).To(BeNumerically("<=", 1))
	})

	It("returns zero for no samples", func() {
		rng := rand.New(rand.NewPCG(5, 6))
		Expect(basin.SamplePixel(dynamo.Zero, 1, 0, params, rng)).To(Equal(dynamo.Zero))
	})
})

var _ = Describe("Aggregate", func() {
	It("is idempotent over identical partials", func() {
		g, _ := basin.NewGrid(3)
		for i := range g.Cells {
			g.Cells[i] = dynamo.Vec2{X: float64(i%3) / 3, Y: float64(i%2) / 7}
		}
		out, err := basin.Aggregate([]*basin.Grid{g, g.Clone(), g.Clone(), g.Clone()})
		Expect(err).NotTo(HaveOccurred())
		for i := range g.Cells {
			Expect(out.Cells[i].X).To(BeNumerically("~", g.Cells[i].X, 1e-12))
			Expect(out.Cells[i].Y).To(BeNumerically("~", g.Cells[i].Y, 1e-12))
		}
	})

	It("averages cell by cell", func() {
		a, _ := basin.NewGrid(1)
		b, _ := basin.NewGrid(1)
		a.Cells[0] = dynamo.Vec2{X: 1}
		b.Cells[0] = dynamo.Vec2{Y: 1}
		out, err := basin.Aggregate([]*basin.Grid{a, b})
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Cells[0]).To(Equal(dynamo.Vec2{X: 0.5, Y: 0.5}))
	})

	It("rejects empty and mismatched input", func() {
		_, err := basin.Aggregate(nil)
		Expect(errors.Is(err, dynamo.ErrInvalidWorkers)).To(BeTrue())

		a, _ := basin.NewGrid(2)
		b, _ := basin.NewGrid(3)
		_, err = basin.Aggregate([]*basin.Grid{a, b})
		Expect(errors.Is(err, dynamo.ErrShapeMismatch)).To(BeTrue())
	})
})

var _ = Describe("ExpandToCanvas", func() {
	It("maps an all-zero quadrant to an all-zero canvas", func() {
		q, _ := basin.NewGrid(5)
		c, err := basin.ExpandToCanvas(q)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Size).To(Equal(10))
		Expect(c.Cells).To(HaveLen(100))
		for _, v := range c.Cells {
			Expect(v).To(Equal(dynamo.Zero))
		}
	})

	It("writes every canvas cell and swaps votes across the y axis", func() {
		n := 4
		q, _ := basin.NewGrid(n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				q.Set(x, y, dynamo.Vec2{X: float64(1 + x + y*n), Y: -float64(1 + x + y*n)})
			}
		}
		c, err := basin.ExpandToCanvas(q)
		Expect(err).NotTo(HaveOccurred())

		for _, v := range c.Cells {
			Expect(v).NotTo(Equal(dynamo.Zero))
		}
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				v := q.At(x, y)
				Expect(c.At(n+x, n+y)).To(Equal(v))
				Expect(c.At(n-1-x, n+y)).To(Equal(v.Transpose()))
				Expect(c.At(n+x, n-1-y)).To(Equal(v))
				Expect(c.At(n-1-x, n-1-y)).To(Equal(v.Transpose()))
			}
		}
	})

	It("agrees with simulating the mirrored points directly", func() {
		params := quickParams()
		pts := []dynamo.Vec2{{X: 0.12, Y: 0.3}, {X: 0.4, Y: 0.05}}
		for _, p := range pts {
			c := physics.Classify(p, params).Vote()
			Expect(physics.Classify(dynamo.Vec2{X: -p.X, Y: p.Y}, params).Vote()).To(Equal(c.Transpose()))
			Expect(physics.Classify(dynamo.Vec2{X: p.X, Y: -p.Y}, params).Vote()).To(Equal(c))
		}
	})

	It("rejects a nil quadrant", func() {
		_, err := basin.ExpandToCanvas(nil)
		Expect(errors.Is(err, dynamo.ErrInvalidSize)).To(BeTrue())
	})
})

var _ = Describe("RenderQuadrant", func() {
	params := quickParams()

	It("fails fast on degenerate shapes", func() {
		_, err := basin.RenderQuadrant(params, basin.Options{Size: 0, Samples: 1, Workers: 1})
		Expect(errors.Is(err, dynamo.ErrInvalidSize)).To(BeTrue())

		_, err = basin.RenderQuadrant(params, basin.Options{Size: 2, Samples: 1, Workers: 0})
		Expect(errors.Is(err, dynamo.ErrInvalidWorkers)).To(BeTrue())

		_, err = basin.RenderQuadrant(params, basin.Options{Size: 2, Samples: 0, Workers: 1})
		Expect(errors.Is(err, dynamo.ErrInvalidSamples)).To(BeTrue())
	})

	It("reports the rounded-up sample count and the seed used", func() {
		r, err := basin.RenderQuadrant(params, basin.Options{Size: 2, Samples: 5, Workers: 3, Seed: seedPtr(9)})
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Samples).To(Equal(6))
		Expect(r.Workers).To(Equal(3))
		Expect(r.Seed).To(Equal(uint64(9)))
		Expect(r.Quadrant.Size).To(Equal(2))
	})

	It("is bit-identical for the same seed", func() {
		opts := basin.Options{Size: 4, Samples: 4, Workers: 4, Seed: seedPtr(1234)}
		a, err := basin.RenderQuadrant(params, opts)
		Expect(err).NotTo(HaveOccurred())
		b, err := basin.RenderQuadrant(params, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Quadrant.Cells).To(Equal(b.Quadrant.Cells))
	})

	It("returns one partial per worker, each normalized", func() {
		partials, err := basin.RenderPartials(params, basin.Options{Size: 3, Samples: 4, Workers: 2, Seed: seedPtr(7)})
		Expect(err).NotTo(HaveOccurred())
		Expect(partials).To(HaveLen(2))
		for _, p := range partials {
			for _, v := range p.Cells {
				Expect(v.X + v.Y).To(BeNumerically("<=", 1))
			}
		}
	})

	It("reports every sample through the progress hook", func() {
		var seen atomic.Int64
		opts := basin.Options{
			Size:       3,
			Samples:    5,
			Workers:    2,
			Seed:       seedPtr(11),
			OnProgress: func(n int) { seen.Add(int64(n)) },
		}
		r, err := basin.RenderQuadrant(params, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(seen.Load()).To(Equal(int64(r.Samples * 3 * 3)))
	})

	It("produces the same image with and without a progress hook", func() {
		p := basin.NewProgress(0)
		base := basin.Options{Size: 3, Samples: 2, Workers: 2, Seed: seedPtr(5)}
		withHook := base
		withHook.OnProgress = p.Add

		a, err := basin.RenderQuadrant(params, base)
		Expect(err).NotTo(HaveOccurred())
		b, err := basin.RenderQuadrant(params, withHook)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Quadrant.Cells).To(Equal(b.Quadrant.Cells))
	})

	It("reproduces the size 4 regression fixture", func() {
		p := physics.DefaultParams()
		p.PoleDistance = 0.1

		r, err := basin.RenderQuadrant(p, basin.Options{Size: 4, Samples: 1, Workers: 1, Seed: seedPtr(42)})
		Expect(err).NotTo(HaveOccurred())
		for _, v := range r.Quadrant.Cells {
			Expect(v).To(BeElementOf(dynamo.Zero, dynamo.UnitX, dynamo.UnitY))
		}

		golden := filepath.Join("testdata", "regression_size4_seed42.json")
		if *update {
			data, err := json.MarshalIndent(r.Quadrant, "", "  ")
			Expect(err).NotTo(HaveOccurred())
			Expect(os.MkdirAll("testdata", 0755)).To(Succeed())
			Expect(os.WriteFile(golden, data, 0644)).To(Succeed())
		}

		data, err := os.ReadFile(golden)
		Expect(err).NotTo(HaveOccurred(), "golden fixture missing; regenerate with go test ./internal/basin -update")

		var want basin.Grid
		Expect(json.Unmarshal(data, &want)).To(Succeed())
		Expect(want.Size).To(Equal(4))
		Expect(want.Cells).To(HaveLen(16))
		Expect(r.Quadrant.Cells).To(Equal(want.Cells))

		// these two samples exhaust the step budget
		Expect(r.Quadrant.At(3, 0)).To(Equal(dynamo.Zero))
		Expect(r.Quadrant.At(0, 3)).To(Equal(dynamo.Zero))
	})
})

var _ = Describe("Progress", func() {
	It("tracks concurrent adds", func() {
		p := basin.NewProgress(100)
		done := make(chan struct{})
		for i := 0; i < 4; i++ {
			go func() {
				defer GinkgoRecover()
				for j := 0; j < 5; j++ {
					p.Add(1)
				}
				done <- struct{}{}
			}()
		}
		for i := 0; i < 4; i++ {
			<-done
		}
		Expect(p.Done()).To(Equal(int64(20)))
		Expect(p.Fraction()).To(BeNumerically("~", 0.2, 1e-12))
	})

	It("has no ETA before the first sample", func() {
		_, ok := basin.NewProgress(10).ETA(time.Second)
		Expect(ok).To(BeFalse())
	})

	It("treats an overflowing projection as unknown", func() {
		p := basin.NewProgress(1 << 62)
		p.Add(1)
		_, ok := p.ETA(time.Hour)
		Expect(ok).To(BeFalse())
	})

	It("projects the remaining time linearly", func() {
		p := basin.NewProgress(4)
		p.Add(1)
		eta, ok := p.ETA(time.Second)
		Expect(ok).To(BeTrue())
		Expect(eta).To(Equal(3 * time.Second))
	})
})

var _ = Describe("Stats", func() {
	It("averages vote shares", func() {
		g, _ := basin.NewGrid(2)
		g.Cells[0] = dynamo.UnitX
		g.Cells[1] = dynamo.UnitY
		g.Cells[2] = dynamo.UnitX
		s := basin.Stats(g)
		Expect(s.Pole1).To(BeNumerically("~", 0.5, 1e-12))
		Expect(s.Pole2).To(BeNumerically("~", 0.25, 1e-12))
		Expect(s.Undetermined).To(BeNumerically("~", 0.25, 1e-12))
	})
})
