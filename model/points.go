package model

import (
	"fmt"
	"sort"
)

// PointTable is a row-major coordinate table with one row per point and
// one column per spatial axis, plus optional named scalar attribute
// columns (such as "radius") that transformations leave untouched.
type PointTable struct {
	coords []float64 // n x dim, row-major
	n, dim int
	axes   []string
	attrs  map[string][]float64
	reg    *Registry
}

// NewPointTable creates a table of n points from the row-major coords
// buffer. If axes is nil the conventional point axes for the
// dimensionality are inferred ((x, y, z) truncated from the right).
func NewPointTable(coords []float64, n int, axes []string) (*PointTable, error) {
	if n < 0 {
		return nil, fmt.Errorf("model: negative point count")
	}
	if n == 0 {
		return nil, ValidationError{Kind: KindPoints, Reason: "table has no points"}
	}
	if len(coords)%n != 0 {
		return nil, ValidationError{Kind: KindPoints, Reason: "coordinate buffer not divisible by point count"}
	}
	dim := len(coords) / n
	if axes == nil {
		axes = InferPointAxes(dim)
		if axes == nil {
			return nil, fmt.Errorf("model: cannot infer axes for %d dimensions", dim)
		}
	}
	if len(axes) != dim {
		return nil, ValidationError{Kind: KindPoints, Reason: "axis count does not match dimensionality"}
	}
	return &PointTable{
		coords: coords,
		n:      n,
		dim:    dim,
		axes:   append([]string(nil), axes...),
		attrs:  make(map[string][]float64),
		reg:    NewDefaultRegistry(DefaultCoordinateSystem),
	}, nil
}

// Kind returns KindPoints.
func (p *PointTable) Kind() Kind { return KindPoints }

// AxesNames returns the ordered spatial axis names of the columns.
func (p *PointTable) AxesNames() []string { return append([]string(nil), p.axes...) }

// Transformations returns the table's coordinate-system registry.
func (p *PointTable) Transformations() *Registry { return p.reg }

// Len returns the number of points.
func (p *PointTable) Len() int { return p.n }

// Dim returns the number of spatial columns.
func (p *PointTable) Dim() int { return p.dim }

// Coords returns the backing row-major coordinate buffer. The buffer is
// shared, not copied; callers must treat it as read-only.
func (p *PointTable) Coords() []float64 { return p.coords }

// At returns a copy of the coordinates of point i.
func (p *PointTable) At(i int) []float64 {
	return append([]float64(nil), p.coords[i*p.dim:(i+1)*p.dim]...)
}

// SetAttr attaches a named scalar column. The column length must equal the
// point count.
func (p *PointTable) SetAttr(name string, values []float64) error {
	if len(values) != p.n {
		return ValidationError{Kind: KindPoints, Reason: fmt.Sprintf("attribute %q length does not match point count", name)}
	}
	p.attrs[name] = values
	return nil
}

// Attr returns the named scalar column, if present.
func (p *PointTable) Attr(name string) ([]float64, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// AttrNames returns the attached attribute column names in sorted order.
func (p *PointTable) AttrNames() []string {
	names := make([]string, 0, len(p.attrs))
	for n := range p.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p *PointTable) validate() error {
	if len(p.coords) != p.n*p.dim {
		return ValidationError{Kind: KindPoints, Reason: "coordinate buffer does not match point count"}
	}
	for name, col := range p.attrs {
		if len(col) != p.n {
			return ValidationError{Kind: KindPoints, Reason: fmt.Sprintf("attribute %q length does not match point count", name)}
		}
	}
	return nil
}
