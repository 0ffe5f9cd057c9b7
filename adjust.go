package spatialign

import (
	"fmt"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/transform"
)

// adjust rewrites the registry of a freshly transformed entity so its
// anchoring in downstream coordinate systems stays correct.
//
// The fresh registry must hold exactly one Identity entry for the default
// coordinate system; the transformers establish this placeholder before
// adjustment, so a violation is a bug, not bad input.
func (e *Engine) adjust(fresh model.Element, old map[string]transform.Transform, applied transform.Transform, rasterTranslation transform.Transform, targetSystem string, maintainPositioning bool) error {
	isRaster := fresh.Kind() == model.KindRaster || fresh.Kind() == model.KindMultiscale

	var toPrepend transform.Transform
	if isRaster {
		if rasterTranslation == nil {
			return fmt.Errorf("%w: raster adjustment without raster translation", ErrRegistryInvariant)
		}
		if maintainPositioning {
			inv, err := applied.Inverse()
			if err != nil {
				return err
			}
			toPrepend = transform.NewSequence(rasterTranslation, inv)
		} else {
			toPrepend = rasterTranslation
		}
	} else {
		if rasterTranslation != nil {
			return fmt.Errorf("%w: non-raster adjustment with raster translation", ErrRegistryInvariant)
		}
		if maintainPositioning {
			inv, err := applied.Inverse()
			if err != nil {
				return err
			}
			toPrepend = inv
		} else {
			toPrepend = transform.Identity{}
		}
	}

	reg := fresh.Transformations()
	if reg.Len() != 1 {
		return fmt.Errorf("%w: registry has %d entries", ErrRegistryInvariant, reg.Len())
	}
	placeholder, err := reg.Get(e.cfg.DefaultCoordinateSystem)
	if err != nil {
		return fmt.Errorf("%w: missing default entry", ErrRegistryInvariant)
	}
	if !placeholder.Equal(transform.Identity{}) {
		return fmt.Errorf("%w: default entry is not identity", ErrRegistryInvariant)
	}
	reg.Remove(e.cfg.DefaultCoordinateSystem)

	if maintainPositioning {
		for cs, oldT := range old {
			reg.Set(cs, transform.NewSequence(toPrepend, oldT))
		}
		return nil
	}
	if targetSystem == "" {
		targetSystem = e.cfg.DefaultCoordinateSystem
	}
	reg.Set(targetSystem, toPrepend)
	return nil
}
