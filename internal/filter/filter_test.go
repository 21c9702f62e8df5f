package filter

import (
	"bytes"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// noiseBuffer returns a w×h buffer filled with reproducible random bytes.
func noiseBuffer(t *testing.T, w, h int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, 0)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range b.Pix {
		b.Pix[i] = uint8(rng.IntN(256))
	}
	return b
}

func uniformBuffer(t *testing.T, w, h int, r, g, bl, a uint8) *pixel.Buffer {
	t.Helper()
	b, err := pixel.New(w, h, 0)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	b.Fill(r, g, bl, a)
	return b
}

func TestBorderInvariant(t *testing.T) {
	tests := []struct {
		name   string
		radius int
		apply  func(*pixel.Buffer) *pixel.Buffer
	}{
		{"gaussian 5x5", 2, Gaussian},
		{"sobel 3x3", 1, Sobel},
		{"box 3x3", 1, func(b *pixel.Buffer) *pixel.Buffer {
			k, _ := NewKernel([][]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
			return Convolve(b, k)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := noiseBuffer(t, 13, 9)
			orig := src.Clone()
			out := tt.apply(src)

			if !bytes.Equal(src.Pix, orig.Pix) {
				t.Fatal("filter mutated its source")
			}
			for y := 0; y < src.Height; y++ {
				for x := 0; x < src.Width; x++ {
					inBorder := x < tt.radius || y < tt.radius ||
						x >= src.Width-tt.radius || y >= src.Height-tt.radius
					i := src.Offset(x, y)
					if inBorder && !bytes.Equal(out.Pix[i:i+4], src.Pix[i:i+4]) {
						t.Errorf("border pixel (%d,%d) changed: got %v, want %v", x, y, out.Pix[i:i+4], src.Pix[i:i+4])
					}
					if out.Pix[i+3] != src.Pix[i+3] {
						t.Errorf("alpha at (%d,%d) changed: got %d, want %d", x, y, out.Pix[i+3], src.Pix[i+3])
					}
				}
			}
		})
	}
}

func TestConvolve_SmallerThanKernel(t *testing.T) {
	src := noiseBuffer(t, 4, 4)
	out := Gaussian(src)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("image smaller than the 5x5 window should be copied unchanged")
	}
}

func TestConvolve_Identity(t *testing.T) {
	k, _ := NewKernel([][]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0}})
	src := noiseBuffer(t, 8, 8)
	out := Convolve(src, k)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("identity kernel should reproduce the source")
	}
}

func TestConvolve_Saturates(t *testing.T) {
	k, _ := NewKernel([][]float64{{0, 0, 0}, {0, 2, 0}, {0, 0, -3}})
	src := uniformBuffer(t, 3, 3, 200, 0, 10, 255)
	out := Convolve(src, k)

	r, g, b, _ := out.RGBA(1, 1)
	// red: 400-600 = -200, green: 0, blue: 20-30 = -10
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("negative sums: got (%d,%d,%d), want (0,0,0)", r, g, b)
	}

	k, _ = NewKernel([][]float64{{0, 0, 0}, {0, 3, 0}, {0, 0, 0}})
	out = Convolve(src, k)
	r, _, b, _ = out.RGBA(1, 1)
	if r != 255 || b != 30 {
		t.Errorf("overflowing sums: got r=%d b=%d, want 255 and 30", r, b)
	}
}

func TestConvolve_Rounds(t *testing.T) {
	// Four corner weights of 1/16 pass a quarter of the value.
	k, _ := NewKernel([][]float64{{0.0625, 0, 0.0625}, {0, 0, 0}, {0.0625, 0, 0.0625}})
	src := uniformBuffer(t, 3, 3, 10, 30, 2, 255)
	out := Convolve(src, k)

	r, g, b, _ := out.RGBA(1, 1)
	// 10*0.25 = 2.5 -> 3, 30*0.25 = 7.5 -> 8, 2*0.25 = 0.5 -> 1
	if r != 3 || g != 8 || b != 1 {
		t.Errorf("rounding: got (%d,%d,%d), want (3,8,1)", r, g, b)
	}
}

func TestGaussian_UniformImage(t *testing.T) {
	const v = 200
	src := uniformBuffer(t, 9, 9, v, v, v, 77)
	out := Gaussian(src)

	want := uint8(math.Round(v * GaussianKernel().Sum()))
	if want != 196 {
		t.Fatalf("expected interior value: got %d, want 196", want)
	}

	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			r, g, b, a := out.RGBA(x, y)
			if r != want || g != want || b != want {
				t.Errorf("interior (%d,%d): got (%d,%d,%d), want %d", x, y, r, g, b, want)
			}
			if r == v {
				t.Errorf("interior (%d,%d) unchanged; kernel must not be normalized", x, y)
			}
			if a != 77 {
				t.Errorf("alpha (%d,%d): got %d, want 77", x, y, a)
			}
		}
	}
}

func TestGaussian_Spreads(t *testing.T) {
	src := uniformBuffer(t, 9, 9, 0, 0, 0, 255)
	src.Set(4, 4, 255, 255, 255, 255)
	out := Gaussian(src)

	center, _, _, _ := out.RGBA(4, 4)
	if center >= 255 {
		t.Error("bright spot should be reduced after blur")
	}
	for _, p := range [][2]int{{3, 4}, {5, 4}, {4, 3}, {4, 5}} {
		if r, _, _, _ := out.RGBA(p[0], p[1]); r == 0 {
			t.Errorf("neighbor (%d,%d) received no brightness", p[0], p[1])
		}
	}
}

func TestSobel_UniformImage(t *testing.T) {
	src := uniformBuffer(t, 7, 6, 90, 140, 200, 255)
	out := Sobel(src)

	for y := 1; y < 5; y++ {
		for x := 1; x < 6; x++ {
			r, g, b, a := out.RGBA(x, y)
			if r != 0 || g != 0 || b != 0 || a != 255 {
				t.Errorf("interior (%d,%d): got (%d,%d,%d,%d), want (0,0,0,255)", x, y, r, g, b, a)
			}
		}
	}
}

func TestSobel_VerticalStep(t *testing.T) {
	// Right side averages (30+30+32)/3 = 30 after truncation.
	src := uniformBuffer(t, 5, 3, 0, 0, 0, 255)
	for y := 0; y < 3; y++ {
		for x := 3; x < 5; x++ {
			src.Set(x, y, 30, 30, 32, 255)
		}
	}
	out := Sobel(src)

	want := map[int]uint8{1: 0, 2: 120, 3: 120}
	for x, w := range want {
		r, g, b, _ := out.RGBA(x, 1)
		if r != w || g != w || b != w {
			t.Errorf("magnitude at x=%d: got (%d,%d,%d), want %d", x, r, g, b, w)
		}
	}
}

func TestSobel_HorizontalStepClamps(t *testing.T) {
	src := uniformBuffer(t, 3, 4, 0, 0, 0, 255)
	for x := 0; x < 3; x++ {
		src.Set(x, 0, 255, 255, 255, 255)
		src.Set(x, 1, 255, 255, 255, 255)
	}
	out := Sobel(src)

	// Row 2 sees 255 on top and 0 below: |4*255| clamps to 255.
	if r, _, _, _ := out.RGBA(1, 2); r != 255 {
		t.Errorf("clamped magnitude: got %d, want 255", r)
	}
	// Row 1 sees 255 on top and 0 below as well.
	if r, _, _, _ := out.RGBA(1, 1); r != 255 {
		t.Errorf("magnitude at row 1: got %d, want 255", r)
	}
}
