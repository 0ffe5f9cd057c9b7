package spatialign

import (
	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

// deprecatedExplicitMsg steers callers off the transitional shim that
// accepts an explicit transform without a named target system.
const deprecatedExplicitMsg = "passing Transformation without ToCoordinateSystem is deprecated; " +
	"name the coordinate system instead"

// resolve determines the single transform to apply and, when positioning
// is not maintained, the target coordinate system the result will be
// anchored in. An entity may be anchored in many coordinate systems at
// once; the request must disambiguate which anchoring is active.
func (e *Engine) resolve(el model.Element, req Request, wc *warningCollector) (transform.Transform, string, error) {
	reg := el.Transformations()

	if !req.MaintainPositioning {
		if req.Transformation == nil && req.ToCoordinateSystem != "" {
			t, err := reg.Get(req.ToCoordinateSystem)
			if err != nil {
				return nil, "", err
			}
			return t, req.ToCoordinateSystem, nil
		}
		// Transitional shim: an explicit transform is accepted only
		// when it is unambiguous, i.e. the registry holds exactly one
		// entry and it equals the supplied transform.
		if req.Transformation != nil && req.ToCoordinateSystem == "" && reg.Len() == 1 {
			name := reg.Names()[0]
			t, err := reg.Get(name)
			if err != nil {
				return nil, "", err
			}
			if req.Transformation.Equal(t) {
				wc.warnf(deprecatedExplicitMsg)
				return t, name, nil
			}
		}
		return nil, "", ErrAmbiguousTransform
	}

	if (req.Transformation == nil) == (req.ToCoordinateSystem == "") {
		return nil, "", ErrInvalidRequest
	}
	if req.Transformation != nil {
		return req.Transformation, "", nil
	}
	t, err := reg.Get(req.ToCoordinateSystem)
	if err != nil {
		return nil, "", err
	}
	return t, "", nil
}
