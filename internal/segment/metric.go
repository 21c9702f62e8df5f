package segment

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is the RGBA sample carried by a node.
type Color struct {
	R, G, B, A uint8
}

// RedGate is the red level below which RedChannel refuses to merge.
const RedGate = 40

// Metric decides which neighbors may be merged.
//
// Admit is checked first, on the node initiating the union only. When it
// reports false no merge happens regardless of distance. Distance is then
// compared strictly against epsilon.
type Metric interface {
	Admit(a Color) bool
	Distance(a, b Color) float64
}

// RedChannel is the reference metric. Near-black pixels (red < RedGate)
// never start a merge, and the distance is sqrt(3·(a.R-b.R)²): the red
// difference scaled as if all three channels differed by the same amount.
// Green and blue are ignored.
type RedChannel struct{}

func (RedChannel) Admit(a Color) bool { return a.R >= RedGate }

func (RedChannel) Distance(a, b Color) float64 {
	dr := float64(int(a.R) - int(b.R))
	return math.Sqrt(3 * dr * dr)
}

// EuclideanRGB is an alternate metric using the full RGB distance. Pixels
// with red below MinRed are refused; the zero value admits everything.
type EuclideanRGB struct {
	MinRed uint8
}

func (m EuclideanRGB) Admit(a Color) bool { return a.R >= m.MinRed }

func (EuclideanRGB) Distance(a, b Color) float64 {
	dr := float64(int(a.R) - int(b.R))
	dg := float64(int(a.G) - int(b.G))
	db := float64(int(a.B) - int(b.B))
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Lab is an alternate, perceptual metric: the CIE76 ΔE between the two
// colors in CIE L*a*b* (D65), multiplied by 100 so that epsilon values are
// of the same order as for the RGB metrics. Pixels with red below MinRed
// are refused; the zero value admits everything.
type Lab struct {
	MinRed uint8
}

func (m Lab) Admit(a Color) bool { return a.R >= m.MinRed }

func (Lab) Distance(a, b Color) float64 {
	return toColorful(a).DistanceLab(toColorful(b)) * 100
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseMetric maps a configuration name to a metric: "red" (or empty),
// "rgb" or "lab".
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "", "red":
		return RedChannel{}, nil
	case "rgb":
		return EuclideanRGB{}, nil
	case "lab":
		return Lab{}, nil
	default:
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
}
