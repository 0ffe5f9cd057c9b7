package spatialign

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

// applyShapes transforms every ring vertex of every geometry. Circle radii
// scale by the eigenvalue magnitude of the linear part; when the map is
// anisotropic the mean magnitude is used as a best-effort approximation
// and a warning is emitted.
func (e *Engine) applyShapes(s *model.ShapeCollection, t transform.Transform, wc *warningCollector) (*model.ShapeCollection, error) {
	axes := s.AxesNames()
	matrix, err := t.Matrix(axes, axes)
	if err != nil {
		return nil, err
	}
	dim := s.Dim()

	radiusScale := 1.0
	radiusScaleSet := false

	geoms := make([]model.Geometry, s.Len())
	for i := 0; i < s.Len(); i++ {
		g := s.Geometry(i)
		rings := g.Rings()
		for _, ring := range rings {
			for v := 0; v+dim <= len(ring); v += dim {
				mapped := transform.MapPoint(matrix, ring[v:v+dim])
				copy(ring[v:v+dim], mapped)
			}
		}
		switch g.GeometryKind() {
		case model.GeometryPoint:
			if r, ok := g.Radius(); ok {
				if !radiusScaleSet {
					radiusScale, err = e.radiusScale(matrix, dim, wc)
					if err != nil {
						return nil, err
					}
					radiusScaleSet = true
				}
				geoms[i] = model.NewCircleGeometry(rings[0], r*radiusScale)
			} else {
				geoms[i] = model.NewPointGeometry(rings[0])
			}
		default:
			geoms[i] = model.NewPolygonGeometry(rings)
		}
	}

	out, err := model.NewShapeCollection(dim, geoms)
	if err != nil {
		return nil, err
	}
	out.Transformations().Reset(e.cfg.DefaultCoordinateSystem)
	return out, nil
}

// radiusScale derives the scalar factor for circle radii from the
// eigenvalue magnitudes of the transform's linear block.
func (e *Engine) radiusScale(matrix *mat.Dense, dim int, wc *warningCollector) (float64, error) {
	linear := mat.DenseCopyOf(matrix.Slice(0, dim, 0, dim))
	var eig mat.Eigen
	if !eig.Factorize(linear, mat.EigenNone) {
		return 0, ErrFactorizationFailed
	}
	values := eig.Values(nil)
	modules := make([]float64, len(values))
	for i, v := range values {
		modules[i] = cmplx.Abs(v)
	}
	if !allClose(modules) {
		wc.warnf("transformation is not isotropic; scaling radii by the mean eigenvalue magnitude")
		var sum float64
		for _, m := range modules {
			sum += m
		}
		return sum / float64(len(modules)), nil
	}
	return modules[0], nil
}

// allClose mirrors the numpy default tolerances (rtol 1e-5, atol 1e-8)
// when comparing eigenvalue magnitudes against the first.
func allClose(vals []float64) bool {
	for _, v := range vals[1:] {
		if math.Abs(v-vals[0]) > 1e-8+1e-5*math.Abs(vals[0]) {
			return false
		}
	}
	return true
}
