package transform

import (
	"gonum.org/v1/gonum/mat"
)

// Transform is an affine map between two named axis sets.
//
// Implementations are immutable: all methods return new values. The set of
// implementations is closed; see the package documentation for the list.
type Transform interface {
	// Matrix materializes the transform as a homogeneous matrix of
	// dimensions (len(outputAxes)+1) x (len(inputAxes)+1), reordering
	// axes as needed. Axes the transform does not mention pass through
	// unchanged. An axis the transform requires that is missing from the
	// requested axes yields an AxisError.
	Matrix(inputAxes, outputAxes []string) (*mat.Dense, error)

	// Inverse returns the inverse transform, or ErrNonInvertible if the
	// linear part is singular.
	Inverse() (Transform, error)

	// Equal reports exact structural equality with other. It is used for
	// transform elision and registry comparisons; callers needing
	// numerical tolerance should compare materialized matrices instead.
	Equal(other Transform) bool

	// resultAxes maps the axis names entering this transform to the axis
	// names leaving it. It also seals the interface.
	resultAxes(in []string) []string
}

func axisIndex(axes []string, a string) int {
	for i, ax := range axes {
		if ax == a {
			return i
		}
	}
	return -1
}

func equalAxes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diagonal builds the homogeneous matrix shared by Identity, Translation
// and Scale: every requested output axis maps from the same-named input
// axis with a per-axis scale and shift.
func diagonal(inputAxes, outputAxes []string, scale func(axis string) float64, shift func(axis string) float64) (*mat.Dense, error) {
	rows, cols := len(outputAxes)+1, len(inputAxes)+1
	m := mat.NewDense(rows, cols, nil)
	for i, ax := range outputAxes {
		j := axisIndex(inputAxes, ax)
		if j < 0 {
			return nil, AxisError{Axis: ax}
		}
		m.Set(i, j, scale(ax))
		m.Set(i, cols-1, shift(ax))
	}
	m.Set(rows-1, cols-1, 1)
	return m, nil
}

// checkOwnAxes verifies that every axis the transform itself names is
// present in both requested axis lists.
func checkOwnAxes(own, inputAxes, outputAxes []string) error {
	for _, ax := range own {
		if axisIndex(inputAxes, ax) < 0 || axisIndex(outputAxes, ax) < 0 {
			return AxisError{Axis: ax}
		}
	}
	return nil
}

// Identity is the transform that leaves coordinates unchanged.
type Identity struct{}

// NewIdentity returns the identity transform.
func NewIdentity() Identity { return Identity{} }

func (Identity) Matrix(inputAxes, outputAxes []string) (*mat.Dense, error) {
	return diagonal(inputAxes, outputAxes,
		func(string) float64 { return 1 },
		func(string) float64 { return 0 })
}

func (Identity) Inverse() (Transform, error) { return Identity{}, nil }

func (Identity) Equal(other Transform) bool {
	_, ok := other.(Identity)
	return ok
}

func (Identity) resultAxes(in []string) []string { return in }

// Translation shifts coordinates by a per-axis offset. Axes not named by
// the translation pass through unchanged.
type Translation struct {
	vector []float64
	axes   []string
}

// NewTranslation creates a translation by vector over the given axes.
// NewTranslation panics if the lengths differ.
func NewTranslation(vector []float64, axes []string) Translation {
	if len(vector) != len(axes) {
		panic("transform: translation vector and axes lengths differ")
	}
	return Translation{
		vector: append([]float64(nil), vector...),
		axes:   append([]string(nil), axes...),
	}
}

// Vector returns a copy of the per-axis offsets.
func (t Translation) Vector() []float64 { return append([]float64(nil), t.vector...) }

// Axes returns a copy of the axis names the translation acts on.
func (t Translation) Axes() []string { return append([]string(nil), t.axes...) }

func (t Translation) Matrix(inputAxes, outputAxes []string) (*mat.Dense, error) {
	if err := checkOwnAxes(t.axes, inputAxes, outputAxes); err != nil {
		return nil, err
	}
	return diagonal(inputAxes, outputAxes,
		func(string) float64 { return 1 },
		func(ax string) float64 {
			if k := axisIndex(t.axes, ax); k >= 0 {
				return t.vector[k]
			}
			return 0
		})
}

func (t Translation) Inverse() (Transform, error) {
	inv := make([]float64, len(t.vector))
	for i, v := range t.vector {
		inv[i] = -v
	}
	return Translation{vector: inv, axes: append([]string(nil), t.axes...)}, nil
}

func (t Translation) Equal(other Transform) bool {
	o, ok := other.(Translation)
	return ok && equalAxes(t.axes, o.axes) && equalFloats(t.vector, o.vector)
}

func (t Translation) resultAxes(in []string) []string { return in }

// Scale multiplies coordinates by a per-axis factor. Axes not named by the
// scale pass through unchanged.
type Scale struct {
	factors []float64
	axes    []string
}

// NewScale creates a scale by factors over the given axes.
// NewScale panics if the lengths differ.
func NewScale(factors []float64, axes []string) Scale {
	if len(factors) != len(axes) {
		panic("transform: scale factors and axes lengths differ")
	}
	return Scale{
		factors: append([]float64(nil), factors...),
		axes:    append([]string(nil), axes...),
	}
}

// Factors returns a copy of the per-axis factors.
func (s Scale) Factors() []float64 { return append([]float64(nil), s.factors...) }

// Axes returns a copy of the axis names the scale acts on.
func (s Scale) Axes() []string { return append([]string(nil), s.axes...) }

func (s Scale) Matrix(inputAxes, outputAxes []string) (*mat.Dense, error) {
	if err := checkOwnAxes(s.axes, inputAxes, outputAxes); err != nil {
		return nil, err
	}
	return diagonal(inputAxes, outputAxes,
		func(ax string) float64 {
			if k := axisIndex(s.axes, ax); k >= 0 {
				return s.factors[k]
			}
			return 1
		},
		func(string) float64 { return 0 })
}

func (s Scale) Inverse() (Transform, error) {
	inv := make([]float64, len(s.factors))
	for i, f := range s.factors {
		if f == 0 {
			return nil, ErrNonInvertible
		}
		inv[i] = 1 / f
	}
	return Scale{factors: inv, axes: append([]string(nil), s.axes...)}, nil
}

func (s Scale) Equal(other Transform) bool {
	o, ok := other.(Scale)
	return ok && equalAxes(s.axes, o.axes) && equalFloats(s.factors, o.factors)
}

func (s Scale) resultAxes(in []string) []string { return in }
