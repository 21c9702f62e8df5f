// Package config resolves segmentation settings from a JSON file and
// command-line flags.
package config

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-segment-mcp/internal/pixel"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// Defaults applied by Resolve.
const (
	DefaultEpsilon   = 48.0
	DefaultPrefilter = "sobel"
	DefaultMetric    = "red"
	DefaultSizeRule  = "partial"
	DefaultScale     = 1.0
)

// Config holds all segmentation settings.
type Config struct {
	// Epsilon is the similarity threshold. nil means unset; 0 is valid and
	// merges nothing.
	Epsilon   *float64 `json:"epsilon"`
	Prefilter string   `json:"prefilter"`
	Metric    string   `json:"metric"`
	SizeRule  string   `json:"size_rule"`

	// Seed drives component colors. 0 seeds from the wall clock.
	Seed        uint64 `json:"seed"`
	LegacyWrite bool   `json:"legacy_write"`

	MaxPixels int     `json:"max_pixels"`
	Scale     float64 `json:"scale"`
	Output    string  `json:"output"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Pointer fields are nil when the flag was not given.
type Flags struct {
	Input       string
	Output      string
	Epsilon     *float64
	Prefilter   string
	Metric      string
	SizeRule    string
	Seed        uint64
	LegacyWrite *bool
	MaxPixels   int
	Scale       float64
}

// Resolve applies flags over the file settings and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Epsilon != nil {
		e := *flags.Epsilon
		c.Epsilon = &e
	}
	if flags.Prefilter != "" {
		c.Prefilter = flags.Prefilter
	}
	if flags.Metric != "" {
		c.Metric = flags.Metric
	}
	if flags.SizeRule != "" {
		c.SizeRule = flags.SizeRule
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.LegacyWrite != nil {
		c.LegacyWrite = *flags.LegacyWrite
	}
	if flags.MaxPixels > 0 {
		c.MaxPixels = flags.MaxPixels
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}

	if c.Epsilon == nil {
		e := DefaultEpsilon
		c.Epsilon = &e
	}
	if c.Prefilter == "" {
		c.Prefilter = DefaultPrefilter
	}
	if c.Metric == "" {
		c.Metric = DefaultMetric
	}
	if c.SizeRule == "" {
		c.SizeRule = DefaultSizeRule
	}
	if c.MaxPixels <= 0 {
		c.MaxPixels = pixel.DefaultMaxPixels
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.Output == "" && flags.Input != "" {
		c.Output = DefaultOutput(flags.Input)
	}
}

// DefaultOutput derives the output path for input: "photo.jpg" becomes
// "photo-segmented.png" in the same directory.
func DefaultOutput(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "-segmented.png"
}

// Options converts the settings into segment.Options. Names are validated
// here so a bad config fails before any image is decoded.
func (c Config) Options() (segment.Options, error) {
	pre, err := segment.ParsePrefilter(c.Prefilter)
	if err != nil {
		return segment.Options{}, fmt.Errorf("config: %w", err)
	}
	metric, err := segment.ParseMetric(c.Metric)
	if err != nil {
		return segment.Options{}, fmt.Errorf("config: %w", err)
	}
	rule, err := segment.ParseSizeRule(c.SizeRule)
	if err != nil {
		return segment.Options{}, fmt.Errorf("config: %w", err)
	}

	eps := DefaultEpsilon
	if c.Epsilon != nil {
		eps = *c.Epsilon
	}

	opts := segment.Options{
		Epsilon:     eps,
		Prefilter:   pre,
		Metric:      metric,
		SizeRule:    rule,
		LegacyWrite: c.LegacyWrite,
	}
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(c.Seed, c.Seed))
	}
	return opts, nil
}
