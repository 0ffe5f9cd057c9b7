package model

import (
	"fmt"
)

// GeometryKind identifies the geometry variants a ShapeCollection holds.
type GeometryKind int

const (
	GeometryPoint GeometryKind = iota
	GeometryPolygon
)

func (k GeometryKind) String() string {
	if k == GeometryPolygon {
		return "Polygon"
	}
	return "Point"
}

// Geometry is a single vector geometry: either a point with an optional
// scalar radius (a circle) or a set of polygon rings. Vertices are stored
// flat per ring, dim coordinates per vertex.
type Geometry struct {
	kind      GeometryKind
	rings     [][]float64
	radius    float64
	hasRadius bool
}

// NewPointGeometry creates a point geometry at the given coordinates.
func NewPointGeometry(coords []float64) Geometry {
	return Geometry{
		kind:  GeometryPoint,
		rings: [][]float64{append([]float64(nil), coords...)},
	}
}

// NewCircleGeometry creates a point geometry carrying a scalar radius.
func NewCircleGeometry(coords []float64, radius float64) Geometry {
	g := NewPointGeometry(coords)
	g.radius = radius
	g.hasRadius = true
	return g
}

// NewPolygonGeometry creates a polygon from its rings. The first ring is
// the exterior; any further rings are holes. Each ring is a flat vertex
// buffer.
func NewPolygonGeometry(rings [][]float64) Geometry {
	cp := make([][]float64, len(rings))
	for i, r := range rings {
		cp[i] = append([]float64(nil), r...)
	}
	return Geometry{kind: GeometryPolygon, rings: cp}
}

// GeometryKind returns the geometry variant.
func (g Geometry) GeometryKind() GeometryKind { return g.kind }

// Rings returns copies of the vertex rings.
func (g Geometry) Rings() [][]float64 {
	out := make([][]float64, len(g.rings))
	for i, r := range g.rings {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

// Radius returns the scalar radius of a circle geometry and whether one is
// attached.
func (g Geometry) Radius() (float64, bool) { return g.radius, g.hasRadius }

// ShapeCollection is a set of 2D or 3D vector geometries sharing the same
// dimensionality and coordinate-system registry.
type ShapeCollection struct {
	dim   int
	geoms []Geometry
	reg   *Registry
}

// NewShapeCollection creates a collection of geometries with the given
// spatial dimensionality (2 or 3).
func NewShapeCollection(dim int, geoms []Geometry) (*ShapeCollection, error) {
	if dim != 2 && dim != 3 {
		return nil, ValidationError{Kind: KindShapes, Reason: fmt.Sprintf("unsupported dimensionality %d", dim)}
	}
	if len(geoms) == 0 {
		return nil, ValidationError{Kind: KindShapes, Reason: "collection has no geometries"}
	}
	s := &ShapeCollection{
		dim:   dim,
		geoms: append([]Geometry(nil), geoms...),
		reg:   NewDefaultRegistry(DefaultCoordinateSystem),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Kind returns KindShapes.
func (s *ShapeCollection) Kind() Kind { return KindShapes }

// AxesNames returns the conventional point axes for the collection's
// dimensionality.
func (s *ShapeCollection) AxesNames() []string { return InferPointAxes(s.dim) }

// Transformations returns the collection's coordinate-system registry.
func (s *ShapeCollection) Transformations() *Registry { return s.reg }

// Dim returns the spatial dimensionality of the geometries.
func (s *ShapeCollection) Dim() int { return s.dim }

// Len returns the number of geometries.
func (s *ShapeCollection) Len() int { return len(s.geoms) }

// Geometries returns a copy of the geometry list.
func (s *ShapeCollection) Geometries() []Geometry {
	return append([]Geometry(nil), s.geoms...)
}

// Geometry returns geometry i.
func (s *ShapeCollection) Geometry(i int) Geometry { return s.geoms[i] }

// Extent returns the bounding box of all vertices in the collection.
func (s *ShapeCollection) Extent() Extent {
	e := NewExtent(s.dim)
	for _, g := range s.geoms {
		for _, ring := range g.rings {
			for v := 0; v+s.dim <= len(ring); v += s.dim {
				e.Expand(ring[v : v+s.dim])
			}
		}
	}
	return e
}

func (s *ShapeCollection) validate() error {
	for i, g := range s.geoms {
		if len(g.rings) == 0 {
			return ValidationError{Kind: KindShapes, Reason: fmt.Sprintf("geometry %d has no vertices", i)}
		}
		for _, ring := range g.rings {
			if len(ring) == 0 || len(ring)%s.dim != 0 {
				return ValidationError{Kind: KindShapes, Reason: fmt.Sprintf("geometry %d ring not divisible by dimensionality", i)}
			}
		}
		if g.kind == GeometryPoint && len(g.rings[0]) != s.dim {
			return ValidationError{Kind: KindShapes, Reason: fmt.Sprintf("point geometry %d must have exactly one vertex", i)}
		}
		if g.hasRadius && g.radius < 0 {
			return ValidationError{Kind: KindShapes, Reason: fmt.Sprintf("geometry %d has negative radius", i)}
		}
	}
	return nil
}
