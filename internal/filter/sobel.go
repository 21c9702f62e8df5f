package filter

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

var (
	sobelX = mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY = mustKernel([][]float64{
		{1, 2, 1},
		{0, 0, 0},
		{-1, -2, -1},
	})
)

// SobelX returns the horizontal gradient kernel.
func SobelX() Kernel { return sobelX }

// SobelY returns the vertical gradient kernel. Positive weights are on the
// top row.
func SobelY() Kernel { return sobelY }

// Sobel replaces every interior pixel with its gradient magnitude.
//
// Each window sample is the truncated mean (r+g+b)/3. The magnitude
// round(sqrt(gx² + gy²)) is clamped to 255 and written to r, g and b;
// alpha is copied. The one-pixel border is left unchanged.
func Sobel(src *pixel.Buffer) *pixel.Buffer {
	dst := src.Clone()
	w, h := src.Width, src.Height
	if w <= 2 || h <= 2 {
		return dst
	}

	parallel.Line(h-2, func(start, end int) {
		for y := start + 1; y < end+1; y++ {
			for x := 1; x < w-1; x++ {
				var sumX, sumY float64
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						i := src.Offset(x+dx, y+dy)
						gray := (int(src.Pix[i]) + int(src.Pix[i+1]) + int(src.Pix[i+2])) / 3
						sumX += sobelX.At(dy+1, dx+1) * float64(gray)
						sumY += sobelY.At(dy+1, dx+1) * float64(gray)
					}
				}
				m := toByte(math.Sqrt(sumX*sumX + sumY*sumY))
				o := dst.Offset(x, y)
				dst.Pix[o] = m
				dst.Pix[o+1] = m
				dst.Pix[o+2] = m
			}
		}
	})

	return dst
}
