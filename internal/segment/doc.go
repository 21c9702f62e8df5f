// Package segment groups 4-connected pixels of similar color into regions
// and recolors each region.
//
// # Pipeline
//
// Segment runs the full transform:
//
//  1. Prefilter: none, the raw Gaussian or the Sobel gradient magnitude
//     (see package filter).
//  2. Grid: NewGrid builds one Node per pixel in a flat arena. Neighbor and
//     parent links are indices; None marks a missing neighbor at the edges.
//  3. Unions: Segmenter visits nodes row-major and tries to merge each with
//     its up, down, left and right neighbors under the Metric and epsilon.
//  4. Coloring: Colorer discovers roots in row-major order and gives each
//     component either black (fewer than MinComponentSize pixels counted so
//     far) or a random color drawn from its *rand.Rand.
//
// # Similarity
//
// The default metric, RedChannel, refuses any merge whose first pixel has
// red below RedGate and measures distance as sqrt(3·Δr²), using only the
// red channel. EuclideanRGB and Lab are alternate metrics that look at all
// three channels; they are opt-in and never substituted silently.
//
// # Size Rule
//
// With PartialCount (the default) the black-or-color decision for a root is
// made against the number of member pixels seen before the root itself in
// row-major order, not the final component size. A component whose root is
// its first pixel therefore always renders black. FinalSize uses the
// component's eventual size instead.
//
// # Concurrency
//
// A Forest is not safe for concurrent use; Find compresses paths and so
// mutates the forest even on reads.
package segment
