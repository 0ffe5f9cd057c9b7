package model

import (
	"fmt"
	"math"

	"github.com/tsawler/spatialign/transform"
)

// RasterKind distinguishes continuous image data from categorical label
// masks. Label masks carry no channel axis and must only be resampled with
// interpolation that preserves their discrete values.
type RasterKind int

const (
	RasterImage RasterKind = iota
	RasterLabels
)

func (k RasterKind) String() string {
	if k == RasterLabels {
		return "Labels"
	}
	return "Image"
}

// Raster is a dense N-dimensional grid with named axes. Pixel data is
// stored row-major in C order, the last axis varying fastest.
type Raster struct {
	data  []float64
	shape []int
	axes  []string
	kind  RasterKind
	reg   *Registry
}

// NewImage creates an image raster. If axes is nil the conventional raster
// axes for the dimensionality are inferred ((c, y, x) truncated from the
// left). The fresh raster carries a single Identity registry entry under
// DefaultCoordinateSystem.
func NewImage(data []float64, shape []int, axes []string) (*Raster, error) {
	return newRaster(data, shape, axes, RasterImage)
}

// NewLabels creates a label-mask raster. Label masks must not carry a
// channel axis.
func NewLabels(data []float64, shape []int, axes []string) (*Raster, error) {
	return newRaster(data, shape, axes, RasterLabels)
}

func newRaster(data []float64, shape []int, axes []string, kind RasterKind) (*Raster, error) {
	if len(shape) == 0 {
		return nil, fmt.Errorf("model: raster needs at least one axis")
	}
	if axes == nil {
		axes = InferRasterAxes(len(shape))
		if axes == nil {
			return nil, fmt.Errorf("model: cannot infer axes for %d dimensions", len(shape))
		}
	}
	r := &Raster{
		data:  data,
		shape: append([]int(nil), shape...),
		axes:  append([]string(nil), axes...),
		kind:  kind,
		reg:   NewDefaultRegistry(DefaultCoordinateSystem),
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Kind returns KindRaster.
func (r *Raster) Kind() Kind { return KindRaster }

// RasterKind reports whether the raster is an image or a label mask.
func (r *Raster) RasterKind() RasterKind { return r.kind }

// AxesNames returns the ordered axis names.
func (r *Raster) AxesNames() []string { return append([]string(nil), r.axes...) }

// Shape returns the per-axis extents.
func (r *Raster) Shape() []int { return append([]int(nil), r.shape...) }

// Data returns the backing pixel buffer. The buffer is shared, not copied;
// callers must treat it as read-only.
func (r *Raster) Data() []float64 { return r.data }

// Transformations returns the raster's coordinate-system registry.
func (r *Raster) Transformations() *Registry { return r.reg }

// SpatialShape returns the extents of the spatial axes only.
func (r *Raster) SpatialShape() []int {
	var out []int
	for i, a := range r.axes {
		if a != ChannelAxis {
			out = append(out, r.shape[i])
		}
	}
	return out
}

// Channels returns the extent of the channel axis, or 1 if there is none.
func (r *Raster) Channels() int {
	for i, a := range r.axes {
		if a == ChannelAxis {
			return r.shape[i]
		}
	}
	return 1
}

// SpatialExtent returns the bounding box of the raster's spatial grid,
// from the origin to the spatial shape.
func (r *Raster) SpatialExtent() Extent {
	shape := r.SpatialShape()
	e := NewExtent(len(shape))
	zero := make([]float64, len(shape))
	far := make([]float64, len(shape))
	for i, s := range shape {
		far[i] = float64(s)
	}
	e.Expand(zero)
	e.Expand(far)
	return e
}

func (r *Raster) validate() error {
	n := 1
	for _, s := range r.shape {
		if s <= 0 {
			return ValidationError{Kind: KindRaster, Reason: "non-positive axis extent"}
		}
		n *= s
	}
	if len(r.data) != n {
		return ValidationError{
			Kind:   KindRaster,
			Reason: fmt.Sprintf("data length %d does not match shape %v", len(r.data), r.shape),
		}
	}
	if len(r.axes) != len(r.shape) {
		return ValidationError{Kind: KindRaster, Reason: "axis count does not match shape"}
	}
	seen := map[string]bool{}
	for _, a := range r.axes {
		if seen[a] {
			return ValidationError{Kind: KindRaster, Reason: fmt.Sprintf("duplicate axis %q", a)}
		}
		seen[a] = true
	}
	if r.kind == RasterLabels {
		if HasChannel(r.axes) {
			return ValidationError{Kind: KindRaster, Reason: "label mask must not have a channel axis"}
		}
		for _, v := range r.data {
			if v != math.Trunc(v) {
				return ValidationError{Kind: KindRaster, Reason: "label mask values must be integral"}
			}
		}
	}
	return nil
}

// Multiscale is an ordered pyramid of rasters. Level 0 is the full
// resolution; each further level is a downsampled rendition of the same
// content carrying its own intrinsic scale relative to level 0 in its
// per-level registry.
type Multiscale struct {
	levels []*Raster
	reg    *Registry
}

// NewMultiscale assembles a pyramid from levels, which must share axes and
// raster kind and be ordered from full resolution downward. Per-level
// registries are rewritten with each level's intrinsic scale relative to
// level 0; the pyramid itself carries a single Identity registry entry
// under DefaultCoordinateSystem.
func NewMultiscale(levels []*Raster) (*Multiscale, error) {
	if len(levels) == 0 {
		return nil, ValidationError{Kind: KindMultiscale, Reason: "pyramid has no levels"}
	}
	base := levels[0]
	for i, lv := range levels[1:] {
		if !equalStrings(lv.axes, base.axes) {
			return nil, ValidationError{Kind: KindMultiscale, Reason: "levels have differing axes"}
		}
		if lv.kind != base.kind {
			return nil, ValidationError{Kind: KindMultiscale, Reason: "levels have differing raster kinds"}
		}
		for j, s := range lv.SpatialShape() {
			if s > base.SpatialShape()[j] {
				return nil, ValidationError{
					Kind:   KindMultiscale,
					Reason: fmt.Sprintf("level %d larger than level 0", i+1),
				}
			}
		}
	}
	m := &Multiscale{
		levels: append([]*Raster(nil), levels...),
		reg:    NewDefaultRegistry(DefaultCoordinateSystem),
	}
	m.AssignLevelScales(DefaultCoordinateSystem)
	return m, nil
}

// Kind returns KindMultiscale.
func (m *Multiscale) Kind() Kind { return KindMultiscale }

// AxesNames returns the ordered axis names shared by all levels.
func (m *Multiscale) AxesNames() []string { return m.levels[0].AxesNames() }

// Transformations returns the pyramid-level registry.
func (m *Multiscale) Transformations() *Registry { return m.reg }

// Levels returns the pyramid levels from full resolution downward. The
// slice is a copy; the rasters are shared.
func (m *Multiscale) Levels() []*Raster { return append([]*Raster(nil), m.levels...) }

// Level returns pyramid level i.
func (m *Multiscale) Level(i int) *Raster { return m.levels[i] }

// NumLevels returns the number of pyramid levels.
func (m *Multiscale) NumLevels() int { return len(m.levels) }

// AssignLevelScales rewrites every level's registry with its intrinsic
// scale relative to level 0, keyed by cs: Identity for level 0 and a Scale
// of the spatial shape ratios for deeper levels.
func (m *Multiscale) AssignLevelScales(cs string) {
	base := m.levels[0]
	spatial := SpatialAxes(base.axes)
	for i, lv := range m.levels {
		lv.reg = NewRegistry()
		if i == 0 {
			lv.reg.Set(cs, transform.Identity{})
			continue
		}
		factors := make([]float64, len(spatial))
		for j, s := range lv.SpatialShape() {
			factors[j] = float64(base.SpatialShape()[j]) / float64(s)
		}
		lv.reg.Set(cs, transform.NewScale(factors, spatial))
	}
}

// LevelScale returns level i's intrinsic scale relative to level 0, read
// from the level's sole registry entry. The entry name does not matter;
// AssignLevelScales may have keyed it under any coordinate-system name.
// Identity entries yield a unit scale; Sequence entries yield their first
// Scale step.
func (m *Multiscale) LevelScale(i int) (transform.Scale, error) {
	reg := m.levels[i].reg
	names := reg.Names()
	if len(names) != 1 {
		return transform.Scale{}, fmt.Errorf("model: level %d registry has %d entries, want 1", i, len(names))
	}
	t, err := reg.Get(names[0])
	if err != nil {
		return transform.Scale{}, err
	}
	spatial := SpatialAxes(m.levels[i].axes)
	s, ok := findScale(t)
	if !ok {
		return transform.Scale{}, fmt.Errorf("model: no scale recorded for level %d", i)
	}
	if len(s.Axes()) == 0 {
		unit := make([]float64, len(spatial))
		for j := range unit {
			unit[j] = 1
		}
		return transform.NewScale(unit, spatial), nil
	}
	return s, nil
}

// findScale walks a transform looking for a Scale step. Identity counts as
// the unit scale, reported as a zero-axis Scale.
func findScale(t transform.Transform) (transform.Scale, bool) {
	switch tt := t.(type) {
	case transform.Scale:
		return tt, true
	case transform.Identity:
		return transform.Scale{}, true
	case transform.Sequence:
		for _, st := range tt.Steps() {
			if s, ok := findScale(st); ok {
				return s, true
			}
		}
	}
	return transform.Scale{}, false
}

func equalStrings(a, b []string) bool {
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
