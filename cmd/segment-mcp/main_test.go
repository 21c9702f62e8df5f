package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-segment-mcp/internal/config"
)

func writePNG(t *testing.T, dir string, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(dir, "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create input: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode input: %v", err)
	}
	return path
}

func TestRunSegment(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, 4, 4, color.NRGBA{200, 200, 200, 255})

	var stdout, stderr bytes.Buffer
	code := runSegment([]string{"-prefilter", "none", "-epsilon", "1", "-seed", "3", input}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	want := filepath.Join(dir, "input-segmented.png")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default output not written: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "1 components") {
		t.Errorf("summary: got %q", stdout.String())
	}
}

func TestRunSegment_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, 6, 6, color.NRGBA{90, 40, 40, 255})
	output := filepath.Join(dir, "out.webp")

	var stdout, stderr bytes.Buffer
	if code := runSegment([]string{"-o", output, input}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunSegment_MissingInput(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := runSegment([]string{filepath.Join(dir, "missing.png")}, &stdout, &stderr)
	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Could not load image") {
		t.Errorf("diagnostic: got %q", stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "missing-segmented.png")); !os.IsNotExist(err) {
		t.Error("no output should be written when decoding fails")
	}
}

func TestRunSegment_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, 2},
		{"two inputs", []string{"a.png", "b.png"}, 2},
		{"bad flag", []string{"-nope", "a.png"}, 2},
		{"help", []string{"-h"}, 0},
		{"bad metric", []string{"-metric", "hsv", "a.png"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := runSegment(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("exit code: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"metric": "lab"}`), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := loadConfig(path, config.Flags{})
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Metric != "lab" || cfg.Prefilter != "sobel" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json"), config.Flags{}); err == nil {
		t.Error("loadConfig should fail for a missing file")
	}
}
