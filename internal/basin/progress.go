package basin

import (
	"math"
	"sync/atomic"
	"time"
)

// Progress counts processed samples across workers. Add is safe for
// concurrent use and has the shape of Options.OnProgress.
type Progress struct {
	done  atomic.Int64
	total int64
}

func NewProgress(total int64) *Progress {
	return &Progress{total: total}
}

func (p *Progress) Add(n int)    { p.done.Add(int64(n)) }
func (p *Progress) Done() int64  { return p.done.Load() }
func (p *Progress) Total() int64 { return p.total }

func (p *Progress) Fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.Done()) / float64(p.total)
}

// ETA estimates the time left from the elapsed time. ok is false while
// the estimate is unknown, e.g. before the first sample lands or when the
// projection overflows a time.Duration.
func (p *Progress) ETA(elapsed time.Duration) (remaining time.Duration, ok bool) {
	frac := p.Fraction()
	if frac <= 0 {
		return 0, false
	}
	projected := float64(elapsed) / frac
	if math.IsNaN(projected) || math.IsInf(projected, 0) || projected >= math.MaxInt64 {
		return 0, false
	}
	remaining = time.Duration(projected) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
