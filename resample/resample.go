package resample

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrUnsupportedOrder is returned for interpolation orders a resampler
// does not implement.
var ErrUnsupportedOrder = errors.New("resample: unsupported interpolation order")

// Plan is a data-only description of a resampling request. Every pixel of
// the output grid is back-mapped through Matrix into the input grid and
// sampled there; coordinates that fall outside the input are filled with
// zero.
type Plan struct {
	// Matrix is the homogeneous (ndim+1) x (ndim+1) output-to-input map
	// over all array axes, the channel axis passing through as identity.
	Matrix *mat.Dense

	// OutputShape is the per-axis extent of the output grid.
	OutputShape []int

	// Order is the interpolation order: 0 for nearest, 1 for
	// multilinear.
	Order int

	// Prefilter requests spline prefiltering. It must be false for
	// label masks so discrete values survive resampling; the Dense
	// resampler ignores it.
	Prefilter bool
}

func (p Plan) check(shape []int) error {
	ndim := len(shape)
	if len(p.OutputShape) != ndim {
		return fmt.Errorf("resample: output shape has %d axes, input has %d", len(p.OutputShape), ndim)
	}
	r, c := p.Matrix.Dims()
	if r != ndim+1 || c != ndim+1 {
		return fmt.Errorf("resample: plan matrix is %dx%d, want %dx%d", r, c, ndim+1, ndim+1)
	}
	for _, s := range p.OutputShape {
		if s <= 0 {
			return fmt.Errorf("resample: non-positive output extent %d", s)
		}
	}
	return nil
}

// Resampler realizes a resampling plan over a row-major dense grid.
type Resampler interface {
	Resample(data []float64, shape []int, plan Plan) ([]float64, error)
}

// strides returns row-major strides for shape, the last axis varying
// fastest.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = acc
		acc *= shape[i]
	}
	return s
}

func numel(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
