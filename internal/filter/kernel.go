package filter

import (
	"errors"
	"fmt"
)

// ErrKernelShape is returned by NewKernel for empty, non-square or
// even-sized weight matrices.
var ErrKernelShape = errors.New("filter: kernel must be a non-empty odd square matrix")

// Kernel is an immutable square matrix of convolution weights with an odd
// side length.
type Kernel struct {
	size    int
	weights []float64
}

// NewKernel copies rows into a new kernel.
func NewKernel(rows [][]float64) (Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: got %d rows", ErrKernelShape, n)
	}
	weights := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Kernel{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrKernelShape, i, len(row), n)
		}
		weights = append(weights, row...)
	}
	return Kernel{size: n, weights: weights}, nil
}

// mustKernel is used for the fixed kernels defined in this package.
func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// Size returns the side length.
func (k Kernel) Size() int { return k.size }

// Radius returns size/2, the width of the untouched border.
func (k Kernel) Radius() int { return k.size / 2 }

// At returns the weight at (row, col), both in [0, Size()).
func (k Kernel) At(row, col int) float64 { return k.weights[row*k.size+col] }

// Sum returns the total of all weights.
func (k Kernel) Sum() float64 {
	var s float64
	for _, w := range k.weights {
		s += w
	}
	return s
}
