package spatialign

import (
	"fmt"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

// Apply transforms an entity and returns a new, fully re-anchored entity.
// The input entity is never mutated.
//
// The request is resolved against the entity's registry first (see
// Request), the data is transformed according to the entity's structural
// kind, the registry of the result is rewritten, and the result is
// validated before being returned. Warnings report non-fatal issues such
// as anisotropic radius scaling.
func (e *Engine) Apply(el model.Element, req Request) (model.Element, []Warning, error) {
	wc := &warningCollector{logger: e.cfg.Logger}
	out, err := e.apply(el, req, wc)
	if err != nil {
		return nil, wc.warnings, err
	}
	return out, wc.warnings, nil
}

func (e *Engine) apply(el model.Element, req Request, wc *warningCollector) (model.Element, error) {
	t, target, err := e.resolve(el, req, wc)
	if err != nil {
		return nil, err
	}
	old := el.Transformations().All()

	var out model.Element
	var rasterTranslation transform.Transform
	switch v := el.(type) {
	case *model.Raster:
		fresh, rt, err := e.applyRaster(v, t)
		if err != nil {
			return nil, err
		}
		out, rasterTranslation = fresh, rt
	case *model.Multiscale:
		fresh, rt, err := e.applyMultiscale(v, t)
		if err != nil {
			return nil, err
		}
		out, rasterTranslation = fresh, rt
	case *model.PointTable:
		fresh, err := e.applyPoints(v, t)
		if err != nil {
			return nil, err
		}
		out = fresh
	case *model.ShapeCollection:
		fresh, err := e.applyShapes(v, t, wc)
		if err != nil {
			return nil, err
		}
		out = fresh
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEntity, el)
	}

	if err := e.adjust(out, old, t, rasterTranslation, target, req.MaintainPositioning); err != nil {
		return nil, err
	}
	if ms, ok := out.(*model.Multiscale); ok {
		ms.AssignLevelScales(e.cfg.DefaultCoordinateSystem)
	}
	if err := model.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
