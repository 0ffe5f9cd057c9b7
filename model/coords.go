package model

import (
	"errors"
	"fmt"
)

// DefaultCoordinateSystem is the reserved coordinate-system name assigned
// to freshly constructed entities.
const DefaultCoordinateSystem = "global"

// ChannelAxis is the conventional name of the non-spatial channel axis of
// raster data.
const ChannelAxis = "c"

// AxisKind distinguishes spatial axes from channel-like axes.
type AxisKind int

const (
	AxisSpace AxisKind = iota
	AxisChannel
)

func (k AxisKind) String() string {
	switch k {
	case AxisSpace:
		return "space"
	case AxisChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Axis is a named, tagged axis of a coordinate system.
type Axis struct {
	Name string
	Kind AxisKind
}

// CoordinateSystem is a named frame of reference with an ordered axis list.
// Identity is by name; two systems with the same name must carry identical
// axes.
type CoordinateSystem struct {
	Name string
	Axes []Axis
}

// AxesNames returns the ordered axis names of the system.
func (c CoordinateSystem) AxesNames() []string {
	names := make([]string, len(c.Axes))
	for i, a := range c.Axes {
		names[i] = a.Name
	}
	return names
}

// Equal reports whether two coordinate systems have the same name and
// identical axes.
func (c CoordinateSystem) Equal(other CoordinateSystem) bool {
	if c.Name != other.Name || len(c.Axes) != len(other.Axes) {
		return false
	}
	for i := range c.Axes {
		if c.Axes[i] != other.Axes[i] {
			return false
		}
	}
	return true
}

// ErrSystemConflict is returned when a coordinate system is registered
// under a name already bound to different axes.
var ErrSystemConflict = errors.New("model: coordinate system name bound to different axes")

// SystemSet is a registration table of coordinate systems keyed by name.
type SystemSet struct {
	byName map[string]CoordinateSystem
}

// NewSystemSet creates an empty system set.
func NewSystemSet() *SystemSet {
	return &SystemSet{byName: make(map[string]CoordinateSystem)}
}

// Register adds cs to the set. Registering the same system twice is a
// no-op; registering a different system under an existing name fails with
// ErrSystemConflict.
func (s *SystemSet) Register(cs CoordinateSystem) error {
	if existing, ok := s.byName[cs.Name]; ok {
		if !existing.Equal(cs) {
			return fmt.Errorf("%w: %q", ErrSystemConflict, cs.Name)
		}
		return nil
	}
	s.byName[cs.Name] = cs
	return nil
}

// Clone returns an independent copy of the set.
func (s *SystemSet) Clone() *SystemSet {
	out := NewSystemSet()
	for n, cs := range s.byName {
		out.byName[n] = cs
	}
	return out
}

// Get returns the system registered under name.
func (s *SystemSet) Get(name string) (CoordinateSystem, bool) {
	cs, ok := s.byName[name]
	return cs, ok
}

// SpatialAxes returns axes with the channel axis removed.
func SpatialAxes(axes []string) []string {
	var out []string
	for _, a := range axes {
		if a != ChannelAxis {
			out = append(out, a)
		}
	}
	return out
}

// HasChannel reports whether axes contains the channel axis.
func HasChannel(axes []string) bool {
	for _, a := range axes {
		if a == ChannelAxis {
			return true
		}
	}
	return false
}

// InferRasterAxes returns the conventional raster axis names for an array
// of the given dimensionality: (x), (y, x), or (c, y, x).
func InferRasterAxes(ndim int) []string {
	all := []string{ChannelAxis, "y", "x"}
	if ndim < 1 || ndim > len(all) {
		return nil
	}
	return append([]string(nil), all[len(all)-ndim:]...)
}

// InferPointAxes returns the conventional point axis names for the given
// spatial dimensionality: (x), (x, y), or (x, y, z).
func InferPointAxes(dim int) []string {
	all := []string{"x", "y", "z"}
	if dim < 1 || dim > len(all) {
		return nil
	}
	return append([]string(nil), all[:dim]...)
}
