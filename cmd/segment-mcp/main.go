package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/image-segment-mcp/internal/config"
	"github.com/ironsheep/image-segment-mcp/internal/imaging"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
	"github.com/ironsheep/image-segment-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("segment-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp(os.Stdout)
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("SEGMENT_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Segment MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		segment.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if len(os.Args) > 1 && os.Args[1] == "segment" {
		os.Exit(runSegment(os.Args[2:], os.Stdout, os.Stderr))
	}

	cfg, err := loadConfig(os.Getenv("SEGMENT_MCP_CONFIG"), config.Flags{})
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "segment-mcp - MCP server for image segmentation")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  segment-mcp [options]                  Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  segment-mcp segment [flags] <input>    Segment one image and write the result")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'segment-mcp segment -h' for the segment flags.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  SEGMENT_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Fprintln(w, "  SEGMENT_MCP_CONFIG=<path>      JSON config with server defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client.")
}

// loadConfig reads path when set and resolves it against flags.
func loadConfig(path string, flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// runSegment implements the segment subcommand and returns the exit code.
func runSegment(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("segment", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flags      config.Flags
		configPath string
		epsilon    float64
		legacy     bool
	)
	fs.StringVar(&configPath, "config", "", "JSON config file")
	fs.StringVar(&flags.Output, "o", "", "output path (default <input>-segmented.png)")
	fs.Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "similarity threshold")
	fs.StringVar(&flags.Prefilter, "prefilter", "", "none, gaussian or sobel (default sobel)")
	fs.StringVar(&flags.Metric, "metric", "", "red, rgb or lab (default red)")
	fs.StringVar(&flags.SizeRule, "size-rule", "", "partial or final (default partial)")
	fs.Uint64Var(&flags.Seed, "seed", 0, "color seed; 0 uses the clock")
	fs.BoolVar(&legacy, "legacy-write", false, "write pixels during discovery")
	fs.IntVar(&flags.MaxPixels, "max-pixels", 0, "largest accepted image in pixels")
	fs.Float64Var(&flags.Scale, "scale", 0, "resize factor applied before segmenting")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: segment-mcp segment [flags] <input>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	flags.Input = fs.Arg(0)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "epsilon":
			flags.Epsilon = &epsilon
		case "legacy-write":
			flags.LegacyWrite = &legacy
		}
	})

	cfg, err := loadConfig(configPath, flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	buf, err := imaging.Decode(flags.Input, cfg.MaxPixels)
	if err != nil {
		var de *imaging.DecodeError
		if errors.As(err, &de) {
			fmt.Fprintf(stderr, "Could not load image %s: %v\n", de.Path, de.Err)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	if buf, err = imaging.Scale(buf, cfg.Scale, cfg.MaxPixels); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	res, err := segment.Segment(buf, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := imaging.Encode(cfg.Output, res.Pixels); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "%d components (%d suppressed, largest %d px) written to %s\n",
		res.Components, res.Suppressed, res.Largest, cfg.Output)
	return 0
}
