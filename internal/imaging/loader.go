package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
)

// DecodeError reports an input that is missing or cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type (
	decodeFunc func(io.Reader) (image.Image, error)
	configFunc func(io.Reader) (image.Config, error)
)

// format describes one supported input encoding.
type format struct {
	name   string
	decode decodeFunc
	config configFunc
}

// formats is keyed by lower-case extension. TGA has no magic number, so
// every format is dispatched explicitly rather than through image.Decode.
var formats = map[string]format{
	".png":  {"png", png.Decode, png.DecodeConfig},
	".jpg":  {"jpeg", jpeg.Decode, jpeg.DecodeConfig},
	".jpeg": {"jpeg", jpeg.Decode, jpeg.DecodeConfig},
	".gif":  {"gif", gif.Decode, gif.DecodeConfig},
	".bmp":  {"bmp", bmp.Decode, bmp.DecodeConfig},
	".tif":  {"tiff", tiff.Decode, tiff.DecodeConfig},
	".tiff": {"tiff", tiff.Decode, tiff.DecodeConfig},
	".webp": {"webp", webp.Decode, webp.DecodeConfig},
	".tga":  {"tga", tga.Decode, tga.DecodeConfig},
}

// sniffed handles extensions outside formats.
var sniffed = format{name: "unknown", decode: sniffDecode, config: sniffConfig}

func sniffDecode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

func sniffConfig(r io.Reader) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(r)
	return cfg, err
}

func formatOf(path string) format {
	if f, ok := formats[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return sniffed
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := formatOf(path).decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// CheckFile reads only the header of the image at path and reports
// pixel.ErrTooLarge when its dimensions exceed maxPixels. Unreadable
// headers are *DecodeError.
func CheckFile(path string, maxPixels int) error {
	f, err := os.Open(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, err := formatOf(path).config(f)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if err := pixel.CheckSize(cfg.Width, cfg.Height, maxPixels); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode reads the image at path into a pixel buffer. The size limit is
// checked against the header before the pixel data is decoded.
// maxPixels <= 0 selects pixel.DefaultMaxPixels.
func Decode(path string, maxPixels int) (*pixel.Buffer, error) {
	if err := CheckFile(path, maxPixels); err != nil {
		return nil, err
	}
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(img, maxPixels)
}

// ImageCache provides thread-safe caching of decoded images so repeated
// tool calls on the same file skip disk reads.
//
// Images are keyed by the exact path string. Cached images stay in memory
// until Evict or Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding it on first use.
// Failures are *DecodeError and are not cached.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadBuffer returns a fresh pixel buffer for the image at path. The buffer
// is a copy; mutating it does not affect the cache. Uncached files are
// checked against maxPixels before they are decoded.
func (c *ImageCache) LoadBuffer(path string, maxPixels int) (*pixel.Buffer, error) {
	c.mu.RLock()
	_, cached := c.images[path]
	c.mu.RUnlock()

	if !cached {
		if err := CheckFile(path, maxPixels); err != nil {
			return nil, err
		}
	}
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(img, maxPixels)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the image cached under path, if any.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff", "webp", "tga" or "unknown".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha reports whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
//
// Color depth and alpha are taken from the decoded Go image type:
// *image.RGBA64, *image.NRGBA64 and *image.Gray16 are 16-bit, and the RGBA
// and NRGBA variants have alpha.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := formatOf(path).name

	hasAlpha := false
	colorDepth := "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of the image at path.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
