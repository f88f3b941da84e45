package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cellux/gradnoise/internal/api"
	"github.com/cellux/gradnoise/internal/config"
	"github.com/cellux/gradnoise/internal/render"
	"github.com/cellux/gradnoise/noise"
)

func run(cfg config.Config) error {
	seed := cfg.ResolvedSeed()
	logger.Info("seed", "seed", seed)
	l, err := noise.NewLattice(cfg.Cols, cfg.Rows, seed)
	if err != nil {
		return err
	}
	f, err := noise.NewField(l, cfg.CellSize)
	if err != nil {
		return err
	}
	f.SetWorkers(cfg.Workers)
	palette, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		return err
	}
	opts := render.Options{
		Palette: palette,
		Grid:    cfg.Grid,
		Vectors: cfg.Vectors,
		Scale:   cfg.Scale,
	}

	switch {
	case cfg.PNGPath != "":
		start := time.Now()
		values := f.EvaluateAll()
		logger.Debug("field evaluated", "width", f.Width(), "height", f.Height(), "elapsed", time.Since(start))
		if err := render.SavePNG(cfg.PNGPath, f, values, opts); err != nil {
			return err
		}
		logger.Info("saved", "path", cfg.PNGPath)
		return nil
	case cfg.HTTPAddr != "":
		return api.NewServer(f, opts, cfg.Workers, logger).ListenAndServe(cfg.HTTPAddr)
	default:
		app, err := CreateApp(cfg, f)
		if err != nil {
			return err
		}
		width, height := app.WindowSize()
		return WithGL("gradnoise", width, height, app)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("%v\n", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("%v\n", err)
	}
}
