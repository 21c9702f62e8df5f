package segment

import "github.com/ironsheep/image-segment-mcp/internal/pixel"

// None marks an absent neighbor.
const None = -1

// Node is one pixel of the grid. Neighbor and parent fields are indices
// into Forest.Nodes.
type Node struct {
	Color

	Up, Down, Left, Right int

	Parent int
	Rank   int
}

// Forest is a disjoint-set forest with one node per pixel, laid out
// row-major.
type Forest struct {
	Width  int
	Height int
	Nodes  []Node
	Metric Metric
}

// NewGrid creates a self-parented node for every pixel of buf and links it
// to its 4-connected neighbors. A nil metric selects RedChannel.
func NewGrid(buf *pixel.Buffer, m Metric) *Forest {
	if m == nil {
		m = RedChannel{}
	}
	w, h := buf.Width, buf.Height
	nodes := make([]Node, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			p := buf.Pix[i*4 : i*4+4]
			n := &nodes[i]
			n.Color = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
			n.Up, n.Down, n.Left, n.Right = None, None, None, None
			if y > 0 {
				n.Up = i - w
			}
			if y < h-1 {
				n.Down = i + w
			}
			if x > 0 {
				n.Left = i - 1
			}
			if x < w-1 {
				n.Right = i + 1
			}
			n.Parent = i
		}
	}

	return &Forest{Width: w, Height: h, Nodes: nodes, Metric: m}
}

// Len returns the number of nodes.
func (f *Forest) Len() int { return len(f.Nodes) }

// Find returns the root of i and points every node on the way directly at
// it.
func (f *Forest) Find(i int) int {
	root := i
	for f.Nodes[root].Parent != root {
		root = f.Nodes[root].Parent
	}
	for i != root {
		next := f.Nodes[i].Parent
		f.Nodes[i].Parent = root
		i = next
	}
	return root
}

// Union merges the sets of a and b when the metric admits a and the
// distance between the two samples is below epsilon. The root of lower
// rank goes under the other; on a tie a's root goes under b's, whose rank
// grows by one. Union reports whether a merge happened.
func (f *Forest) Union(a, b int, epsilon float64) bool {
	ca := f.Nodes[a].Color
	if !f.Metric.Admit(ca) {
		return false
	}
	pa, pb := f.Find(a), f.Find(b)
	d := f.Metric.Distance(ca, f.Nodes[b].Color)
	if pa == pb || !(d < epsilon) {
		return false
	}

	ra, rb := &f.Nodes[pa], &f.Nodes[pb]
	if ra.Rank > rb.Rank {
		rb.Parent = pa
		return true
	}
	ra.Parent = pb
	if ra.Rank == rb.Rank {
		rb.Rank++
	}
	return true
}

// Sizes returns the number of pixels in each component, indexed by root.
// Entries for non-root indices are zero.
func (f *Forest) Sizes() []int {
	sizes := make([]int, len(f.Nodes))
	for i := range f.Nodes {
		sizes[f.Find(i)]++
	}
	return sizes
}

// Components returns the number of roots.
func (f *Forest) Components() int {
	n := 0
	for i := range f.Nodes {
		if f.Nodes[i].Parent == i {
			n++
		}
	}
	return n
}
