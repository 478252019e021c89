package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/edaflow/internal/app"
	"github.com/vk/edaflow/internal/cli"
	"github.com/vk/edaflow/internal/hcl"
	"github.com/vk/edaflow/internal/yaml"
)

// main is the entrypoint for the edaflow application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical startup errors; recover here so the user
	// gets a clean exit message instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	edaflowApp := app.NewApp(outW, appConfig, loaderFor(appConfig.ProjectPath))
	return edaflowApp.Run(context.Background())
}

// loaderFor picks the project loader by file extension: .yml/.yaml files go
// through the Edalize-style YAML loader, everything else through HCL.
func loaderFor(path string) app.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.NewLoader()
	}
	return hcl.NewLoader()
}
