// Package transform implements affine transformations between named axis
// sets.
//
// A [Transform] maps coordinates from an ordered list of input axes to an
// ordered list of output axes. The concrete variants form a closed set:
//
//   - [Identity] - the no-op transform
//   - [Translation] - a per-axis offset
//   - [Scale] - a per-axis scale factor
//   - [Affine] - an arbitrary homogeneous matrix between two axis sets
//   - [Sequence] - an ordered composition of transforms
//
// Every variant can materialize itself as a homogeneous matrix over a
// caller-chosen axis ordering via Matrix, permuting and passing through
// axes as needed. Axes the transform does not mention pass through
// unchanged; axes the transform requires but the caller did not provide
// produce an [AxisError].
//
// Transforms are immutable value types. Composition never mutates its
// operands, and Inverse returns a new value, failing with
// [ErrNonInvertible] when the linear part is singular.
package transform
