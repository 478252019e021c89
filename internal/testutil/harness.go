// Package testutil provides the shared harness for system tests: it writes
// project files into a temporary directory, runs a full app configure pass
// against them, and hands back the log output and generated artifacts.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/edaflow/internal/app"
	"github.com/vk/edaflow/internal/hcl"
	"github.com/vk/edaflow/internal/yaml"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of one full configure run.
type HarnessResult struct {
	WorkRoot  string
	LogOutput string
	Err       error
	App       *app.App
}

// RunConfigureTest writes the given project files into a temporary directory,
// runs the full app against projectFile (one of the map keys, or "" for the
// directory itself), and collects the results. Startup panics are recovered
// into the result's Err.
func RunConfigureTest(t *testing.T, files map[string]string, projectFile string, mutate ...func(*app.Config)) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project")
	workRoot := filepath.Join(tmpDir, "work")
	require.NoError(t, os.Mkdir(projectDir, 0755))
	require.NoError(t, os.Mkdir(workRoot, 0755))

	for name, content := range files {
		filePath := filepath.Join(projectDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	projectPath := projectDir
	if projectFile != "" {
		projectPath = filepath.Join(projectDir, projectFile)
	}

	appConfig, err := app.NewConfig(app.Config{
		ProjectPath: projectPath,
		WorkRoot:    workRoot,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)
	for _, m := range mutate {
		m(appConfig)
	}

	logBuffer := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(logBuffer, appConfig, loaderFor(projectPath))
	}()

	if panicErr != nil {
		return &HarnessResult{
			WorkRoot:  workRoot,
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(context.Background())
	return &HarnessResult{
		WorkRoot:  workRoot,
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}

// loaderFor mirrors the entrypoint's loader selection so harness runs see
// the same behavior as the binary.
func loaderFor(path string) app.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.NewLoader()
	}
	return hcl.NewLoader()
}
