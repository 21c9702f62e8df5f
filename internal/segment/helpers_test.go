package segment

import (
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

func uniformBuffer(t *testing.T, w, h int, c Color) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, 0)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	b.Fill(c.R, c.G, c.B, c.A)
	return b
}

// levelsBuffer returns noise quantized to a few red levels so that
// segmentation yields a mix of small and large components.
func levelsBuffer(t *testing.T, w, h int, seed uint64) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, 0)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	levels := []uint8{20, 60, 120, 200}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := levels[rng.IntN(len(levels))]
			b.Set(x, y, v, v/2, 255-v, 255)
		}
	}
	return b
}

func fixedRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 7))
}

func pixelAt(b *pixel.Buffer, i int) [4]uint8 {
	return [4]uint8{b.Pix[i*4], b.Pix[i*4+1], b.Pix[i*4+2], b.Pix[i*4+3]}
}
