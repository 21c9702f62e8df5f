package segment

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/ironsheep/image-segment-mcp/internal/filter"
	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// Prefilter names the pass applied before the grid is built.
type Prefilter string

const (
	PrefilterNone     Prefilter = "none"
	PrefilterGaussian Prefilter = "gaussian"
	PrefilterSobel    Prefilter = "sobel"
)

// ParsePrefilter accepts "none" (or empty), "gaussian" and "sobel".
func ParsePrefilter(name string) (Prefilter, error) {
	switch Prefilter(name) {
	case "", PrefilterNone:
		return PrefilterNone, nil
	case PrefilterGaussian, PrefilterSobel:
		return Prefilter(name), nil
	default:
		return "", fmt.Errorf("unknown prefilter: %s", name)
	}
}

// Apply runs the prefilter and returns a new buffer. PrefilterNone returns
// src itself.
func (p Prefilter) Apply(src *pixel.Buffer) (*pixel.Buffer, error) {
	switch p {
	case "", PrefilterNone:
		return src, nil
	case PrefilterGaussian:
		return filter.Gaussian(src), nil
	case PrefilterSobel:
		return filter.Sobel(src), nil
	default:
		return nil, fmt.Errorf("unknown prefilter: %s", string(p))
	}
}

// ErrEpsilon is returned for a NaN similarity threshold.
var ErrEpsilon = errors.New("segment: epsilon must be a number")

// Options configures Segment. The zero value runs without prefilter, with
// the RedChannel metric, the PartialCount rule and a clock-seeded source,
// and merges nothing (epsilon 0).
type Options struct {
	Epsilon     float64
	Prefilter   Prefilter
	Metric      Metric
	SizeRule    SizeRule
	LegacyWrite bool
	Rand        *rand.Rand
}

// Result is the output of Segment.
type Result struct {
	Pixels *pixel.Buffer
	Stats

	// Merges is the number of successful unions.
	Merges int `json:"merges"`
}

// Segment prefilters src, groups similar neighbors and returns the
// recolored raster. src is not modified.
func Segment(src *pixel.Buffer, opts Options) (*Result, error) {
	if math.IsNaN(opts.Epsilon) {
		return nil, ErrEpsilon
	}

	filtered, err := opts.Prefilter.Apply(src)
	if err != nil {
		return nil, err
	}
	Logger().Debug("prefilter applied", "prefilter", string(opts.Prefilter),
		"width", src.Width, "height", src.Height)

	forest := NewGrid(filtered, opts.Metric)
	merges := Segmenter{Epsilon: opts.Epsilon}.Run(forest)

	colorer := Colorer{Rand: opts.Rand, Rule: opts.SizeRule, LegacyWrite: opts.LegacyWrite}
	out, st := colorer.Color(forest)

	Logger().Info("segmentation complete",
		"epsilon", opts.Epsilon, "merges", merges,
		"components", st.Components, "suppressed", st.Suppressed, "largest", st.Largest)

	return &Result{Pixels: out, Stats: st, Merges: merges}, nil
}
