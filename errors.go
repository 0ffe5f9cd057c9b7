package spatialign

import "errors"

// ErrAmbiguousTransform is returned when, without MaintainPositioning, the
// request does not identify a single registry entry to apply: the target
// coordinate system is missing, or an explicit transform was supplied for
// an entity anchored in more than one system.
var ErrAmbiguousTransform = errors.New(
	"spatialign: ambiguous request: set ToCoordinateSystem to name the transformation to apply")

// ErrInvalidRequest is returned when MaintainPositioning is set and not
// exactly one of Transformation and ToCoordinateSystem is given.
var ErrInvalidRequest = errors.New(
	"spatialign: exactly one of Transformation and ToCoordinateSystem must be set")

// ErrRegistryInvariant reports an internal precondition violation: a
// freshly transformed entity's registry must hold a single Identity entry
// for the default coordinate system before adjustment. It indicates a bug,
// not bad user input.
var ErrRegistryInvariant = errors.New(
	"spatialign: fresh entity registry must hold a single default identity entry")

// ErrUnsupportedEntity is returned when Apply receives an entity kind the
// engine does not know.
var ErrUnsupportedEntity = errors.New("spatialign: unsupported entity kind")

// ErrFactorizationFailed is returned when the eigenvalue factorization
// needed for radius scaling does not converge.
var ErrFactorizationFailed = errors.New("spatialign: eigenvalue factorization failed")
