package filter

import (
	"math"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// gaussianSpread is the s in exp(-(i²+j²)/s) / (π·s).
const gaussianSpread = 2.0

// GaussianKernel returns the 5x5 kernel whose cell (i, j), i, j in [-2, 2],
// is the continuous density exp(-(i²+j²)/s) / (π·s) with s = 2.
//
// The kernel is not normalized: its weights sum to about 0.9818, so a
// uniform image comes out slightly darker.
func GaussianKernel() Kernel {
	rows := make([][]float64, 5)
	for i := -2; i <= 2; i++ {
		rows[i+2] = make([]float64, 5)
		for j := -2; j <= 2; j++ {
			d2 := float64(i*i + j*j)
			rows[i+2][j+2] = math.Exp(-d2/gaussianSpread) / (math.Pi * gaussianSpread)
		}
	}
	return mustKernel(rows)
}

// Gaussian smooths src with GaussianKernel.
func Gaussian(src *pixel.Buffer) *pixel.Buffer {
	return Convolve(src, GaussianKernel())
}
