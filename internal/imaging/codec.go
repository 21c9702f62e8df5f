package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// encoders covers the extensions disintegration/imaging cannot save.
var encoders = map[string]func(io.Writer, image.Image) error{
	".webp": func(w io.Writer, img image.Image) error {
		return nativewebp.Encode(w, img, nil)
	},
	".tga": tga.Encode,
}

// Encode writes buf to path in the format implied by its extension.
func Encode(path string, buf *pixel.Buffer) error {
	img := buf.NRGBA()

	enc, ok := encoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to encode %s: %w", path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	err = enc(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// EncodePNGBase64 returns buf as a base64-encoded PNG.
func EncodePNGBase64(buf *pixel.Buffer) (string, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, buf.NRGBA()); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b.Bytes()), nil
}

// Scale resizes buf by factor with Lanczos resampling. A factor of 1, or
// one that is not positive, returns buf itself; NaN is an error. Each
// dimension is at least one pixel, and the result must fit in maxPixels.
func Scale(buf *pixel.Buffer, factor float64, maxPixels int) (*pixel.Buffer, error) {
	if factor == 1.0 || factor <= 0 || buf.Len() == 0 {
		return buf, nil
	}
	if math.IsNaN(factor) {
		return nil, fmt.Errorf("invalid scale factor %v", factor)
	}
	fw, fh := float64(buf.Width)*factor, float64(buf.Height)*factor
	if fw > math.MaxInt32 || fh > math.MaxInt32 {
		return nil, fmt.Errorf("%w: scale %v of %dx%d", pixel.ErrTooLarge, factor, buf.Width, buf.Height)
	}
	w := max(1, int(fw))
	h := max(1, int(fh))
	if err := pixel.CheckSize(w, h, maxPixels); err != nil {
		return nil, err
	}

	n := imaging.Resize(buf.NRGBA(), w, h, imaging.Lanczos)
	return pixel.FromPix(w, h, n.Pix)
}
