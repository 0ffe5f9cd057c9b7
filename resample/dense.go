package resample

import (
	"math"
)

// Dense is the in-memory Resampler. It walks the output grid, back-maps
// every pixel through the plan matrix and samples the input with nearest
// (order 0) or multilinear (order 1) interpolation.
type Dense struct{}

// NewDense returns the in-memory resampler.
func NewDense() Dense { return Dense{} }

func (Dense) Resample(data []float64, shape []int, plan Plan) ([]float64, error) {
	if err := plan.check(shape); err != nil {
		return nil, err
	}
	if plan.Order != 0 && plan.Order != 1 {
		return nil, ErrUnsupportedOrder
	}
	ndim := len(shape)

	// Flatten the matrix once; the inner loop must not touch mat.Dense.
	linear := make([]float64, ndim*ndim)
	shift := make([]float64, ndim)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			linear[i*ndim+j] = plan.Matrix.At(i, j)
		}
		shift[i] = plan.Matrix.At(i, ndim)
	}

	inStrides := strides(shape)
	out := make([]float64, numel(plan.OutputShape))
	idx := make([]int, ndim)
	src := make([]float64, ndim)
	for o := range out {
		for i := 0; i < ndim; i++ {
			v := shift[i]
			for j := 0; j < ndim; j++ {
				v += linear[i*ndim+j] * float64(idx[j])
			}
			src[i] = v
		}
		if plan.Order == 0 {
			out[o] = sampleNearest(data, shape, inStrides, src)
		} else {
			out[o] = sampleLinear(data, shape, inStrides, src)
		}
		// Row-major increment, last axis fastest.
		for d := ndim - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < plan.OutputShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, nil
}

func sampleNearest(data []float64, shape, strides []int, src []float64) float64 {
	off := 0
	for d, x := range src {
		i := int(math.Floor(x + 0.5))
		if i < 0 || i >= shape[d] {
			return 0
		}
		off += i * strides[d]
	}
	return data[off]
}

// sampleLinear interpolates over the 2^ndim cell corners surrounding src.
// Corners outside the grid contribute zero, which yields the zero fill at
// the boundary.
func sampleLinear(data []float64, shape, strides []int, src []float64) float64 {
	ndim := len(src)
	base := make([]int, ndim)
	frac := make([]float64, ndim)
	for d, x := range src {
		f := math.Floor(x)
		base[d] = int(f)
		frac[d] = x - f
	}
	var acc float64
	for corner := 0; corner < 1<<ndim; corner++ {
		w := 1.0
		off := 0
		inside := true
		for d := 0; d < ndim; d++ {
			i := base[d]
			if corner&(1<<d) != 0 {
				i++
				w *= frac[d]
			} else {
				w *= 1 - frac[d]
			}
			if i < 0 || i >= shape[d] {
				inside = false
				break
			}
			off += i * strides[d]
		}
		if inside && w != 0 {
			acc += w * data[off]
		}
	}
	return acc
}
