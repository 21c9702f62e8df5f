package segment

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// MinComponentSize is the pixel count below which a component is drawn
// black.
const MinComponentSize = 3

// SizeRule selects which count the black-or-color decision looks at.
type SizeRule int

const (
	// PartialCount compares the number of member pixels visited before
	// the root in row-major order.
	PartialCount SizeRule = iota

	// FinalSize compares the full component size.
	FinalSize
)

func (r SizeRule) String() string {
	switch r {
	case PartialCount:
		return "partial"
	case FinalSize:
		return "final"
	default:
		return fmt.Sprintf("SizeRule(%d)", int(r))
	}
}

// ParseSizeRule maps "partial" (or empty) and "final" to a SizeRule.
func ParseSizeRule(name string) (SizeRule, error) {
	switch name {
	case "", "partial":
		return PartialCount, nil
	case "final":
		return FinalSize, nil
	default:
		return 0, fmt.Errorf("unknown size rule: %s", name)
	}
}

// Stats summarizes a coloring pass.
type Stats struct {
	// Components is the number of roots discovered.
	Components int `json:"components"`

	// Suppressed is how many of them were drawn black.
	Suppressed int `json:"suppressed_components"`

	// Largest is the pixel count of the biggest component.
	Largest int `json:"largest_component"`
}

// Colorer assigns a final color to every component of a forest.
type Colorer struct {
	// Rand supplies the component colors. If nil, a source seeded from the
	// wall clock is created for the call.
	Rand *rand.Rand

	Rule SizeRule

	// LegacyWrite emits each pixel during the discovery pass itself. Pixels
	// visited before their root then keep the root's sample as it was prior
	// to recoloring. By default every pixel is written afterwards with its
	// root's final color.
	LegacyWrite bool
}

// Color recolors the roots of f and renders the result at full opacity.
//
// Roots are discovered in row-major order; at the root's own index its
// color is fixed, black when the applicable count is below
// MinComponentSize and otherwise three uniform bytes (red, green, blue)
// from c.Rand. The roots' samples in f are overwritten.
func (c *Colorer) Color(f *Forest) (*pixel.Buffer, Stats) {
	rng := c.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	n := len(f.Nodes)
	out := &pixel.Buffer{Width: f.Width, Height: f.Height, Pix: make([]uint8, n*4)}

	var final []int
	if c.Rule == FinalSize {
		final = f.Sizes()
	}

	var st Stats
	seen := make([]int, n)
	roots := make([]int, n)
	for i := 0; i < n; i++ {
		p := f.Find(i)
		roots[i] = p
		if p == i {
			size := seen[i]
			if final != nil {
				size = final[i]
			}
			root := &f.Nodes[i]
			if size < MinComponentSize {
				root.R, root.G, root.B = 0, 0, 0
				st.Suppressed++
			} else {
				root.R = uint8(rng.IntN(256))
				root.G = uint8(rng.IntN(256))
				root.B = uint8(rng.IntN(256))
			}
			Logger().Debug("component colored",
				"root", i, "counted", size, "rule", c.Rule.String(),
				"r", root.R, "g", root.G, "b", root.B)
			st.Components++
		}
		if c.LegacyWrite {
			writeRoot(out, i, &f.Nodes[p])
		}
		seen[p]++
	}

	if !c.LegacyWrite {
		for i, p := range roots {
			writeRoot(out, i, &f.Nodes[p])
		}
	}

	for _, s := range seen {
		if s > st.Largest {
			st.Largest = s
		}
	}

	return out, st
}

func writeRoot(out *pixel.Buffer, i int, root *Node) {
	o := i * 4
	out.Pix[o] = root.R
	out.Pix[o+1] = root.G
	out.Pix[o+2] = root.B
	out.Pix[o+3] = 255
}
