package spatialign

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tsawler/spatialign/model"
	"github.com/tsawler/spatialign/resample"
	"github.com/tsawler/spatialign/transform"
)

// Config holds the collaborators and defaults of an Engine.
type Config struct {
	// DefaultCoordinateSystem is the reserved coordinate-system name the
	// engine anchors transformed entities under when the request names
	// no target. Entities constructed by the model package always start
	// anchored under model.DefaultCoordinateSystem.
	DefaultCoordinateSystem string

	// Resampler realizes raster resampling plans. Defaults to the
	// in-memory resample.Dense.
	Resampler resample.Resampler

	// Order is the interpolation order used for image rasters. Label
	// masks are always resampled with order 0 so mask values survive.
	Order int

	// Logger receives warnings and debug output.
	Logger *log.Logger
}

// DefaultConfig returns the default engine configuration: the reserved
// "global" coordinate system, the in-memory resampler, nearest-neighbor
// interpolation, and a warn-level stderr logger.
func DefaultConfig() Config {
	return Config{
		DefaultCoordinateSystem: model.DefaultCoordinateSystem,
		Resampler:               resample.NewDense(),
		Order:                   0,
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			Level: log.WarnLevel,
		}),
	}
}

// Engine applies affine transformations to spatial entities. An Engine is
// immutable after construction and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewWithConfig returns an Engine using cfg, filling unset collaborators
// from DefaultConfig.
func NewWithConfig(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.DefaultCoordinateSystem == "" {
		cfg.DefaultCoordinateSystem = def.DefaultCoordinateSystem
	}
	if cfg.Resampler == nil {
		cfg.Resampler = def.Resampler
	}
	if cfg.Logger == nil {
		cfg.Logger = def.Logger
	}
	return &Engine{cfg: cfg}
}

// Request describes which transformation to apply and how the result
// should be re-anchored.
type Request struct {
	// Transformation applies an explicit transform. With
	// MaintainPositioning set, exactly one of Transformation and
	// ToCoordinateSystem must be given. Without it, naming
	// ToCoordinateSystem is the supported form; passing an explicit
	// Transformation is deprecated and accepted only when the entity's
	// registry holds exactly one entry equal to it.
	Transformation transform.Transform

	// ToCoordinateSystem names the registry entry to apply. The name
	// must be present in the entity's registry.
	ToCoordinateSystem string

	// MaintainPositioning preserves every prior coordinate-system
	// anchoring of the entity by prepending a correcting transform,
	// instead of discarding them in favor of the single target system.
	MaintainPositioning bool
}
