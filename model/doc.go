// Package model defines the spatial entities the alignment engine operates
// on, together with their coordinate-system bookkeeping.
//
// # Entities
//
// All spatial data implements the [Element] interface. The concrete kinds
// are:
//
//   - [Raster] - a dense N-dimensional grid (image or label mask)
//   - [Multiscale] - an ordered pyramid of progressively downsampled rasters
//   - [PointTable] - a row-major coordinate table, one row per point
//   - [ShapeCollection] - vector geometries (circles and polygon rings)
//
// Each entity owns exactly one [Registry] mapping coordinate-system names
// to the transform anchoring the entity in that system. Freshly
// constructed entities carry a single Identity entry for
// [DefaultCoordinateSystem].
//
// # Coordinate systems
//
// A [CoordinateSystem] is a named, ordered list of axes, each tagged as
// spatial or channel-like. A [SystemSet] enforces that two registrations
// under the same name carry identical axes.
//
// # Validation
//
// [Validate] checks the structural invariants of an entity and returns a
// [ValidationError] on violation. It is the schema collaborator consumed
// by the transformation engine after every transform.
package model
