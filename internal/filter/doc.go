// Package filter implements the spatial prefilters applied before
// segmentation: generic 2D convolution over an odd square kernel, the raw
// 5x5 Gaussian kernel and the Sobel gradient-magnitude operator.
//
// # Border Policy
//
// Every filter leaves a margin of k/2 pixels (k being the kernel size)
// bit-identical to the source. No clamping, wrapping or reflection of the
// sampling window takes place; only pixels whose full window lies inside the
// image are recomputed.
//
// # Channels
//
// Red, green and blue are filtered independently. Alpha is always copied
// from the source pixel at the same position.
//
// # Concurrency
//
// Output rows are computed in parallel bands. Each output pixel reads only
// the immutable source, so the result does not depend on scheduling.
package filter
