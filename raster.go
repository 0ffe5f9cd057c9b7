package spatialign

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/resample"
	"github.com/tsawler/spatialign/transform"
)

// rasterResult carries a transformed grid and the positional + half-pixel
// correction it acquired.
type rasterResult struct {
	data        []float64
	shape       []int
	translation transform.Transform
}

// transformRasterData applies t to a dense grid. It maps the 2^d corners
// of the spatial extent to find the output bounding box, back-maps every
// output pixel through Sequence(minTranslation, t.Inverse()) to sample the
// input, and returns the translation correcting the new grid's position,
// including the half-pixel offset introduced by the change in pixel size.
func (e *Engine) transformRasterData(data []float64, shape []int, axes []string, t transform.Transform, order int) (rasterResult, error) {
	ndim := len(axes)
	spatial := model.SpatialAxes(axes)
	d := len(spatial)

	matrix, err := t.Matrix(axes, axes)
	if err != nil {
		return rasterResult{}, err
	}

	var spatialIdx []int
	for i, ax := range axes {
		if ax != model.ChannelAxis {
			spatialIdx = append(spatialIdx, i)
		}
	}
	spatialShape := make([]int, d)
	for k, i := range spatialIdx {
		spatialShape[k] = shape[i]
	}

	// Corners of the spatial extent as homogeneous points; channel
	// coordinates stay zero.
	corners := mat.NewDense(1<<d, ndim, nil)
	for c := 0; c < 1<<d; c++ {
		for k, i := range spatialIdx {
			if c&(1<<(d-1-k)) != 0 {
				corners.Set(c, i, float64(spatialShape[k]))
			}
		}
	}
	mapped := transform.ApplyMatrix(matrix, corners)

	ext := model.NewExtent(ndim)
	row := make([]float64, ndim)
	for c := 0; c < 1<<d; c++ {
		mat.Row(row, c, mapped)
		ext.Expand(row)
	}

	outShape := make([]int, ndim)
	size := ext.Size()
	for i, ax := range axes {
		if ax == model.ChannelAxis {
			outShape[i] = shape[i]
			continue
		}
		outShape[i] = ceilSize(size[i])
		if outShape[i] <= 0 {
			outShape[i] = 1
		}
	}

	minTranslation := transform.NewTranslation(ext.Min, axes)
	inv, err := t.Inverse()
	if err != nil {
		return rasterResult{}, err
	}
	backMap, err := transform.NewSequence(minTranslation, inv).Matrix(axes, axes)
	if err != nil {
		return rasterResult{}, err
	}

	out, err := e.cfg.Resampler.Resample(data, shape, resample.Plan{
		Matrix:      backMap,
		OutputShape: outShape,
		Order:       order,
		Prefilter:   false,
	})
	if err != nil {
		return rasterResult{}, err
	}

	// Half-pixel correction: the ratio of new to old spatial extent is
	// the new pixel size; shifting by -size/2 + 0.5 lines the new pixel
	// centers up with the continuous-space transform.
	offsets := make([]float64, d)
	for k, i := range spatialIdx {
		ps := float64(outShape[i]) / float64(spatialShape[k])
		offsets[k] = -ps/2 + 0.5
	}
	pixelOffset := transform.NewTranslation(offsets, spatial)

	return rasterResult{
		data:        out,
		shape:       outShape,
		translation: elide(pixelOffset, minTranslation),
	}, nil
}

// ceilSize rounds an extent up to an integer, snapping values within
// floating noise of an integer first so that axis-aligned transforms keep
// exact extents.
func ceilSize(v float64) int {
	r := math.Round(v)
	if math.Abs(v-r) < 1e-9 {
		return int(r)
	}
	return int(math.Ceil(v))
}

// elide drops no-op translations from a correction sequence, returning the
// simplest structurally equal transform.
func elide(steps ...transform.Transform) transform.Transform {
	var keep []transform.Transform
	for _, st := range steps {
		if isNoop(st) {
			continue
		}
		keep = append(keep, st)
	}
	switch len(keep) {
	case 0:
		return transform.Identity{}
	case 1:
		return keep[0]
	default:
		return transform.NewSequence(keep...)
	}
}

func isNoop(t transform.Transform) bool {
	switch tt := t.(type) {
	case transform.Identity:
		return true
	case transform.Translation:
		for _, v := range tt.Vector() {
			if v != 0 {
				return false
			}
		}
		return true
	}
	return false
}

// applyRaster transforms a single raster, producing a fresh entity whose
// registry holds the placeholder default entry until adjustment.
func (e *Engine) applyRaster(r *model.Raster, t transform.Transform) (*model.Raster, transform.Transform, error) {
	order := e.cfg.Order
	if r.RasterKind() == model.RasterLabels {
		order = 0
	}
	res, err := e.transformRasterData(r.Data(), r.Shape(), r.AxesNames(), t, order)
	if err != nil {
		return nil, nil, err
	}
	var out *model.Raster
	if r.RasterKind() == model.RasterLabels {
		out, err = model.NewLabels(res.data, res.shape, r.AxesNames())
	} else {
		out, err = model.NewImage(res.data, res.shape, r.AxesNames())
	}
	if err != nil {
		return nil, nil, err
	}
	out.Transformations().Reset(e.cfg.DefaultCoordinateSystem)
	return out, res.translation, nil
}

// applyMultiscale transforms every pyramid level, rescaling the transform
// by each level's intrinsic scale so all levels stay aligned to the same
// physical map. The returned translation comes from level 0; deeper
// levels are consistent by construction of the composed transform.
func (e *Engine) applyMultiscale(m *model.Multiscale, t transform.Transform) (*model.Multiscale, transform.Transform, error) {
	order := e.cfg.Order
	if m.Level(0).RasterKind() == model.RasterLabels {
		order = 0
	}
	axes := m.AxesNames()
	labels := m.Level(0).RasterKind() == model.RasterLabels

	var rasterTranslation transform.Transform
	levels := make([]*model.Raster, m.NumLevels())
	for i := 0; i < m.NumLevels(); i++ {
		composed := t
		if i > 0 {
			scale, err := m.LevelScale(i)
			if err != nil {
				return nil, nil, err
			}
			scaleInv, err := scale.Inverse()
			if err != nil {
				return nil, nil, err
			}
			composed = transform.NewSequence(scale, t, scaleInv)
		}
		lv := m.Level(i)
		res, err := e.transformRasterData(lv.Data(), lv.Shape(), axes, composed, order)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			rasterTranslation = res.translation
		}
		if labels {
			levels[i], err = model.NewLabels(res.data, res.shape, axes)
		} else {
			levels[i], err = model.NewImage(res.data, res.shape, axes)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	out, err := model.NewMultiscale(levels)
	if err != nil {
		return nil, nil, err
	}
	// Placeholder registry on the pyramid; the adjuster rewrites it and
	// the per-level scales are reassigned afterwards.
	out.Transformations().Reset(e.cfg.DefaultCoordinateSystem)
	return out, rasterTranslation, nil
}
