// Package spatialign applies affine transformations to heterogeneous
// spatial data layers - images, label masks, point tables, and vector
// geometries - while keeping their coordinate-system bookkeeping correct.
//
// Basic usage:
//
//	engine := spatialign.New()
//	out, warnings, err := engine.Apply(img, spatialign.Request{
//	    ToCoordinateSystem: "physical",
//	})
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", spatialign.FormatWarnings(warnings))
//	}
//
// Every entity carries a registry mapping coordinate-system names to the
// affine transform anchoring it there. Apply resolves which transform to
// use from the request, transforms the underlying data, and derives a
// fresh registry for the result: with MaintainPositioning the prior
// anchorings are all preserved by prepending a correcting transform,
// without it the result is anchored in the single target system only.
//
// Input entities are never mutated; Apply is safe to call concurrently on
// shared inputs.
package spatialign

import (
	"github.com/tsawler/spatialign/model"
)

// New returns an Engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// Apply transforms an entity using a default-configured engine. See
// Engine.Apply.
func Apply(el model.Element, req Request) (model.Element, []Warning, error) {
	return New().Apply(el, req)
}
