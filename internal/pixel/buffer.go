// Package pixel holds the flat RGBA raster shared by the filters, the
// segmenter and the codec.
package pixel

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxPixels bounds the raster size accepted by New and FromImage
// when no explicit limit is given (64 Mi pixels, 256 MiB of RGBA).
const DefaultMaxPixels = 64 << 20

var (
	// ErrTooLarge is returned when a raster would exceed the pixel limit.
	ErrTooLarge = errors.New("pixel: image too large")

	// ErrSize is returned for negative dimensions or a pixel slice whose
	// length does not match width*height*4.
	ErrSize = errors.New("pixel: inconsistent buffer size")
)

// Buffer is a straight-alpha RGBA raster stored row-major.
// Pixel (x, y) occupies Pix[(y*Width+x)*4 : (y*Width+x)*4+4].
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed buffer of w×h pixels. maxPixels <= 0 selects
// DefaultMaxPixels.
func New(w, h, maxPixels int) (*Buffer, error) {
	if err := CheckSize(w, h, maxPixels); err != nil {
		return nil, err
	}
	return &Buffer{Width: w, Height: h, Pix: make([]uint8, w*h*4)}, nil
}

// FromPix wraps an existing RGBA slice without copying it.
func FromPix(w, h int, pix []uint8) (*Buffer, error) {
	if w < 0 || h < 0 || len(pix) != w*h*4 {
		return nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrSize, w, h, len(pix))
	}
	return &Buffer{Width: w, Height: h, Pix: pix}, nil
}

// FromImage converts any decoded image into a buffer. The result is a copy
// in straight (non-premultiplied) alpha with its origin at (0, 0).
func FromImage(img image.Image, maxPixels int) (*Buffer, error) {
	b := img.Bounds()
	if err := CheckSize(b.Dx(), b.Dy(), maxPixels); err != nil {
		return nil, err
	}
	n := imaging.Clone(img)
	return &Buffer{Width: b.Dx(), Height: b.Dy(), Pix: n.Pix}, nil
}

// CheckSize reports whether a w×h raster is acceptable under maxPixels,
// without allocating it.
func CheckSize(w, h, maxPixels int) error {
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	if w != 0 && h > maxPixels/w {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, w, h, maxPixels)
	}
	return nil
}

// Len returns the number of pixels.
func (b *Buffer) Len() int { return b.Width * b.Height }

// Offset returns the index of the red byte of pixel (x, y).
func (b *Buffer) Offset(x, y int) int { return (y*b.Width + x) * 4 }

// RGBA returns the four channels of pixel (x, y).
func (b *Buffer) RGBA(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the four channels of pixel (x, y).
func (b *Buffer) Set(x, y int, r, g, bl, a uint8) {
	i := b.Offset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
}

// Fill sets every pixel to the same value.
func (b *Buffer) Fill(r, g, bl, a uint8) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = r, g, bl, a
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// NRGBA exposes the buffer as an image without copying. Writes through the
// returned image modify the buffer.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
