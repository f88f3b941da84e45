package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strconv"

	"github.com/mitchellh/go-homedir"

	"github.com/cellux/gradnoise/noise"
)

const (
	DefaultCols     = 3
	DefaultRows     = 3
	DefaultCellSize = 100.0
	DefaultShift    = 100.0
	DefaultPalette  = "blue"
	DefaultLogLevel = "info"
)

var palettes = []string{"blue", "gray"}

// Config holds everything the shells need to build and present a field.
type Config struct {
	Cols     int
	Rows     int
	CellSize float64
	// Seed is only meaningful when HasSeed is set.
	Seed    uint64
	HasSeed bool
	Shift   float64
	Palette string
	Workers int
	Grid    bool
	Vectors bool
	// Scale upsamples the exported PNG by an integer factor.
	Scale    int
	LogLevel string
	PNGPath  string
	HTTPAddr string
}

// Parse reads flags from args (without the program name).
func Parse(args []string, output io.Writer) (Config, error) {
	cfg := Config{}
	fs := flag.NewFlagSet("gradnoise", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Cols, "cols", DefaultCols, "number of lattice cells in x")
	fs.IntVar(&cfg.Rows, "rows", DefaultRows, "number of lattice cells in y")
	fs.Float64Var(&cfg.CellSize, "cell-size", DefaultCellSize, "pixels per lattice cell")
	fs.Func("seed", "uint64 seed (default: derived from the clock)", func(s string) error {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("seed must be an unsigned 64-bit integer: %w", err)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
		return nil
	})
	fs.Float64Var(&cfg.Shift, "shift", DefaultShift, "viewer margin around the field, in pixels")
	fs.StringVar(&cfg.Palette, "palette", DefaultPalette, "heat map palette: blue or gray")
	fs.IntVar(&cfg.Workers, "workers", runtime.GOMAXPROCS(0), "goroutines used to evaluate the field")
	fs.BoolVar(&cfg.Grid, "grid", true, "draw lattice grid lines")
	fs.BoolVar(&cfg.Vectors, "vectors", true, "draw gradient arrows")
	fs.IntVar(&cfg.Scale, "scale", 1, "PNG upsampling factor")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.PNGPath, "png", "", "write the field to this PNG file and exit")
	fs.StringVar(&cfg.HTTPAddr, "http", "", "serve the HTTP API on this address")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.PNGPath != "" {
		path, err := homedir.Expand(cfg.PNGPath)
		if err != nil {
			return Config{}, err
		}
		cfg.PNGPath = path
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the geometry and the option values.
func (cfg Config) Validate() error {
	if cfg.Cols < 1 || cfg.Rows < 1 {
		return fmt.Errorf("grid %dx%d: %w", cfg.Cols, cfg.Rows, noise.ErrInvalidDimensions)
	}
	if !(cfg.CellSize > 0) {
		return fmt.Errorf("cell size %v: %w", cfg.CellSize, noise.ErrInvalidDimensions)
	}
	if cfg.Shift < 0 {
		return fmt.Errorf("shift must not be negative, got %v", cfg.Shift)
	}
	if !slices.Contains(palettes, cfg.Palette) {
		return fmt.Errorf("unknown palette: %s", cfg.Palette)
	}
	if cfg.Scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", cfg.Scale)
	}
	if _, err := ResolveLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.PNGPath != "" && cfg.HTTPAddr != "" {
		return errors.New("-png and -http are mutually exclusive")
	}
	return nil
}

// ResolvedSeed returns the configured seed, or a clock-derived one.
func (cfg Config) ResolvedSeed() uint64 {
	if cfg.HasSeed {
		return cfg.Seed
	}
	return noise.TimeSeed()
}
