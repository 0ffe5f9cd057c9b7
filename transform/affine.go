package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// singularTol is the determinant magnitude below which a linear part is
// treated as singular.
const singularTol = 1e-12

// Affine is an arbitrary affine map between two named axis sets, stored as
// a homogeneous matrix of dimensions (len(outputAxes)+1) x (len(inputAxes)+1).
type Affine struct {
	m          *mat.Dense
	inputAxes  []string
	outputAxes []string
}

// NewAffine creates an affine transform from the row-major homogeneous
// matrix data. The matrix has len(outputAxes)+1 rows and len(inputAxes)+1
// columns; its last row must be (0, ..., 0, 1). NewAffine panics if the
// data length or the last row is wrong.
func NewAffine(data []float64, inputAxes, outputAxes []string) Affine {
	rows, cols := len(outputAxes)+1, len(inputAxes)+1
	if len(data) != rows*cols {
		panic("transform: affine matrix data does not match axes")
	}
	m := mat.NewDense(rows, cols, append([]float64(nil), data...))
	for j := 0; j < cols-1; j++ {
		if m.At(rows-1, j) != 0 {
			panic("transform: affine matrix is not homogeneous")
		}
	}
	if m.At(rows-1, cols-1) != 1 {
		panic("transform: affine matrix is not homogeneous")
	}
	return Affine{
		m:          m,
		inputAxes:  append([]string(nil), inputAxes...),
		outputAxes: append([]string(nil), outputAxes...),
	}
}

// NewRotation2D returns the affine transform rotating the plane spanned by
// axes[0] and axes[1] counter-clockwise by angle radians.
// NewRotation2D panics unless exactly two axes are given.
func NewRotation2D(angle float64, axes []string) Affine {
	if len(axes) != 2 {
		panic("transform: rotation requires exactly two axes")
	}
	sin, cos := math.Sincos(angle)
	return NewAffine([]float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}, axes, axes)
}

// InputAxes returns a copy of the axis names the map consumes.
func (a Affine) InputAxes() []string { return append([]string(nil), a.inputAxes...) }

// OutputAxes returns a copy of the axis names the map produces.
func (a Affine) OutputAxes() []string { return append([]string(nil), a.outputAxes...) }

// Dense returns a copy of the homogeneous matrix over the transform's own
// axes.
func (a Affine) Dense() *mat.Dense { return mat.DenseCopyOf(a.m) }

func (a Affine) Matrix(inputAxes, outputAxes []string) (*mat.Dense, error) {
	for _, ax := range a.inputAxes {
		if axisIndex(inputAxes, ax) < 0 {
			return nil, AxisError{Axis: ax}
		}
	}
	for _, ax := range a.outputAxes {
		if axisIndex(outputAxes, ax) < 0 {
			return nil, AxisError{Axis: ax}
		}
	}
	rows, cols := len(outputAxes)+1, len(inputAxes)+1
	m := mat.NewDense(rows, cols, nil)
	for i, oa := range outputAxes {
		if r := axisIndex(a.outputAxes, oa); r >= 0 {
			for j, ia := range inputAxes {
				if c := axisIndex(a.inputAxes, ia); c >= 0 {
					m.Set(i, j, a.m.At(r, c))
				}
			}
			m.Set(i, cols-1, a.m.At(r, len(a.inputAxes)))
			continue
		}
		// Pass-through for axes the map does not touch.
		if axisIndex(a.inputAxes, oa) >= 0 {
			return nil, AxisError{Axis: oa}
		}
		j := axisIndex(inputAxes, oa)
		if j < 0 {
			return nil, AxisError{Axis: oa}
		}
		m.Set(i, j, 1)
	}
	m.Set(rows-1, cols-1, 1)
	return m, nil
}

func (a Affine) Inverse() (Transform, error) {
	n := len(a.inputAxes)
	if n != len(a.outputAxes) {
		return nil, ErrNonInvertible
	}
	linear := a.m.Slice(0, n, 0, n)
	if math.Abs(mat.Det(linear)) <= singularTol {
		return nil, ErrNonInvertible
	}
	var inv mat.Dense
	if err := inv.Inverse(a.m); err != nil {
		return nil, ErrNonInvertible
	}
	return Affine{
		m:          mat.DenseCopyOf(&inv),
		inputAxes:  append([]string(nil), a.outputAxes...),
		outputAxes: append([]string(nil), a.inputAxes...),
	}, nil
}

func (a Affine) Equal(other Transform) bool {
	o, ok := other.(Affine)
	return ok &&
		equalAxes(a.inputAxes, o.inputAxes) &&
		equalAxes(a.outputAxes, o.outputAxes) &&
		mat.Equal(a.m, o.m)
}

func (a Affine) resultAxes(in []string) []string {
	if equalAxes(a.inputAxes, a.outputAxes) {
		return in
	}
	var out []string
	for _, ax := range in {
		if axisIndex(a.inputAxes, ax) >= 0 && axisIndex(a.outputAxes, ax) < 0 {
			continue
		}
		out = append(out, ax)
	}
	for _, ax := range a.outputAxes {
		if axisIndex(out, ax) < 0 {
			out = append(out, ax)
		}
	}
	return out
}
