package model

import "fmt"

// ValidationError reports a structural invariant violated by an entity.
type ValidationError struct {
	Kind   Kind
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("model: invalid %s: %s", e.Kind, e.Reason)
}

// Validate checks the structural invariants of an entity, returning a
// ValidationError on violation. The transformation engine validates every
// entity it produces before handing it back to the caller.
func Validate(e Element) error {
	switch v := e.(type) {
	case *Raster:
		return v.validate()
	case *Multiscale:
		for i, lv := range v.levels {
			if err := lv.validate(); err != nil {
				return fmt.Errorf("model: level %d: %w", i, err)
			}
		}
		return nil
	case *PointTable:
		return v.validate()
	case *ShapeCollection:
		return v.validate()
	default:
		return ValidationError{Kind: KindUnknown, Reason: fmt.Sprintf("unsupported entity type %T", e)}
	}
}
