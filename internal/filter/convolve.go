package filter

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// Convolve applies k to the red, green and blue channels of src and returns
// a new buffer of the same size.
//
// Interior pixels receive the kernel-weighted sum of their window, rounded
// to the nearest integer; sums outside [0, 255] saturate at the byte bounds.
// Pixels closer than k.Radius() to any edge are copied unmodified, as is
// alpha everywhere. The weights are used as given, without normalization.
func Convolve(src *pixel.Buffer, k Kernel) *pixel.Buffer {
	dst := src.Clone()
	r := k.Radius()
	w, h := src.Width, src.Height
	if w <= 2*r || h <= 2*r {
		return dst
	}

	parallel.Line(h-2*r, func(start, end int) {
		for y := start + r; y < end+r; y++ {
			for x := r; x < w-r; x++ {
				var red, green, blue float64
				for dy := -r; dy <= r; dy++ {
					for dx := -r; dx <= r; dx++ {
						i := src.Offset(x+dx, y+dy)
						wt := k.At(dy+r, dx+r)
						red += float64(src.Pix[i]) * wt
						green += float64(src.Pix[i+1]) * wt
						blue += float64(src.Pix[i+2]) * wt
					}
				}
				o := dst.Offset(x, y)
				dst.Pix[o] = toByte(red)
				dst.Pix[o+1] = toByte(green)
				dst.Pix[o+2] = toByte(blue)
			}
		}
	})

	return dst
}

// toByte rounds half away from zero and saturates to [0, 255].
func toByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
