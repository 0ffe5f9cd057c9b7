package resample

import (
	"sync"
)

// Lazy defers realization of a resampling plan until the result is first
// requested. The plan itself is built eagerly; only the elementwise work
// is postponed. Lazy is safe for concurrent use.
type Lazy struct {
	r     Resampler
	data  []float64
	shape []int
	plan  Plan

	once sync.Once
	out  []float64
	err  error
}

// NewLazy wraps a resampling request for deferred realization by r.
func NewLazy(r Resampler, data []float64, shape []int, plan Plan) *Lazy {
	return &Lazy{r: r, data: data, shape: append([]int(nil), shape...), plan: plan}
}

// Shape returns the output shape the realized grid will have.
func (l *Lazy) Shape() []int { return append([]int(nil), l.plan.OutputShape...) }

// Realize computes the resampled grid, at most once.
func (l *Lazy) Realize() ([]float64, error) {
	l.once.Do(func() {
		l.out, l.err = l.r.Resample(l.data, l.shape, l.plan)
	})
	return l.out, l.err
}
