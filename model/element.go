package model

// Kind identifies the structural kind of a spatial entity.
type Kind int

const (
	KindUnknown Kind = iota
	KindRaster
	KindMultiscale
	KindPoints
	KindShapes
)

func (k Kind) String() string {
	switch k {
	case KindRaster:
		return "Raster"
	case KindMultiscale:
		return "Multiscale"
	case KindPoints:
		return "Points"
	case KindShapes:
		return "Shapes"
	default:
		return "Unknown"
	}
}

// Element is the interface implemented by all spatial entities.
type Element interface {
	// Kind returns the structural kind tag used for dispatch.
	Kind() Kind
	// AxesNames returns the ordered axis names of the entity's data.
	AxesNames() []string
	// Transformations returns the entity's coordinate-system registry.
	Transformations() *Registry
}

// GetModel returns the structural kind of an element. It exists as the
// named counterpart of the schema collaborator's model lookup.
func GetModel(e Element) Kind { return e.Kind() }

// AxesNames returns the ordered axis names of an element.
func AxesNames(e Element) []string { return e.AxesNames() }
