package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/resolve"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	resolver *resolve.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. The resolver is
// seeded from the current process environment; tests inject their own via
// WithBaseEnv.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		resolver: resolve.New(os.Environ()),
	}
}

// WithBaseEnv replaces the resolver's base environment. Primarily for
// tests that need resolution to be independent of the host environment.
func (a *App) WithBaseEnv(base []string) *App {
	a.resolver = resolve.New(base)
	return a
}
