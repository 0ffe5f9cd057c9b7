// Package resample realizes affine resampling plans over dense
// N-dimensional grids.
//
// The transformation engine never computes pixels itself: it builds a
// data-only [Plan] (back-mapping matrix, output shape, interpolation
// order) and hands it to a [Resampler]. The [Dense] implementation
// computes eagerly in memory; [Lazy] wraps any Resampler to defer the
// elementwise work until the result is first needed, the way a chunked
// array backend would.
package resample
