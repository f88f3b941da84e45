package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/cellux/gradnoise/internal/config"
)

var logger *slog.Logger

// InitLogger installs a stderr text logger at level as the process default
// and routes the rendering library's diagnostics through it.
func InitLogger(level string) error {
	l, err := config.NewLogger(os.Stderr, level)
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)
	gg.SetLogger(l)
	return nil
}
