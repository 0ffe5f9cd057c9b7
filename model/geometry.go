package model

import "math"

// Extent is an N-dimensional axis-aligned bounding box.
type Extent struct {
	Min, Max []float64
}

// NewExtent creates an empty extent of the given dimensionality. An empty
// extent contains no points; expanding it with the first point makes it
// degenerate at that point.
func NewExtent(dim int) Extent {
	e := Extent{
		Min: make([]float64, dim),
		Max: make([]float64, dim),
	}
	for i := 0; i < dim; i++ {
		e.Min[i] = math.Inf(1)
		e.Max[i] = math.Inf(-1)
	}
	return e
}

// Dim returns the dimensionality of the extent.
func (e Extent) Dim() int { return len(e.Min) }

// IsEmpty reports whether the extent contains no points.
func (e Extent) IsEmpty() bool {
	for i := range e.Min {
		if e.Min[i] > e.Max[i] {
			return true
		}
	}
	return false
}

// Expand grows the extent to include the point p.
// Expand panics if the dimensionalities differ.
func (e *Extent) Expand(p []float64) {
	if len(p) != len(e.Min) {
		panic("model: point dimension does not match extent")
	}
	for i, v := range p {
		e.Min[i] = math.Min(e.Min[i], v)
		e.Max[i] = math.Max(e.Max[i], v)
	}
}

// Size returns the per-axis side lengths of the extent, or zeros if it is
// empty.
func (e Extent) Size() []float64 {
	out := make([]float64, len(e.Min))
	if e.IsEmpty() {
		return out
	}
	for i := range out {
		out[i] = e.Max[i] - e.Min[i]
	}
	return out
}

// Union returns the smallest extent containing both e and other.
func (e Extent) Union(other Extent) Extent {
	out := NewExtent(e.Dim())
	for i := range out.Min {
		out.Min[i] = math.Min(e.Min[i], other.Min[i])
		out.Max[i] = math.Max(e.Max[i], other.Max[i])
	}
	return out
}

// Contains reports whether p lies inside the extent (inclusive).
func (e Extent) Contains(p []float64) bool {
	for i, v := range p {
		if v < e.Min[i] || v > e.Max[i] {
			return false
		}
	}
	return true
}
