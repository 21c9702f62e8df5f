package segment

// Segmenter merges neighboring nodes whose colors are closer than Epsilon.
type Segmenter struct {
	Epsilon float64
}

// Run visits every node in row-major order and attempts a union with each
// present neighbor in the order up, down, left, right. It returns the
// number of successful merges.
func (s Segmenter) Run(f *Forest) int {
	merges := 0
	for i := range f.Nodes {
		n := &f.Nodes[i]
		for _, j := range [4]int{n.Up, n.Down, n.Left, n.Right} {
			if j != None && f.Union(i, j, s.Epsilon) {
				merges++
			}
		}
	}
	return merges
}
