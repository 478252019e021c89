package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/edaflow/internal/ctxlog"
	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/registry"
)

// Loader turns a project description on disk into a design. The HCL and
// YAML loaders both satisfy it; the entrypoint picks one by file extension.
type Loader interface {
	Load(ctx context.Context, path string) (*edam.Design, error)
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	design   *edam.Design
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, loader Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreTools
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All tool adapters registered.", "count", len(modules))

	var design *edam.Design
	if cfg.ProjectPath != "" {
		var err error
		design, err = loader.Load(ctx, cfg.ProjectPath)
		if err != nil {
			// A failure to load the project is a fatal startup error.
			panic(fmt.Errorf("failed to load project: %w", err))
		}
		logger.Debug("Project description loaded.", "design", design.Name)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		design:   design,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Design returns the loaded design. This is primarily for testing.
func (a *App) Design() *edam.Design {
	return a.design
}
