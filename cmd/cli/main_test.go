package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/edaflow/internal/cli"
	"github.com/vk/edaflow/internal/hcl"
	"github.com/vk/edaflow/internal/yaml"
)

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A project file with a syntax error is guaranteed to panic during the
	// loading phase inside app.NewApp().
	invalidHCL := `
project "broken" {
  toplevel =
`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "project.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600))

	args := []string{filePath}
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, args)

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "application startup panicked")
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"-log-level", "verbose", "p.hcl"})

	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestRun_ConfiguresYAMLProject(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	projectPath := filepath.Join(tempDir, "blinky.eda.yml")
	project := `name: blinky
toplevel: top
tool: surelog
files:
  - name: top.v
    file_type: verilogSource
`
	require.NoError(t, os.WriteFile(projectPath, []byte(project), 0600))
	workRoot := filepath.Join(tempDir, "work")

	// --- Act ---
	err := run(&bytes.Buffer{}, []string{"-work-root", workRoot, projectPath})

	// --- Assert ---
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(workRoot, "surelog.mk"))
}

func TestLoaderFor_SelectsByExtension(t *testing.T) {
	t.Parallel()

	_, isYAML := loaderFor("proj/blinky.eda.yml").(*yaml.Loader)
	require.True(t, isYAML)

	_, isYAML = loaderFor("BLINKY.EDA.YAML").(*yaml.Loader)
	require.True(t, isYAML)

	_, isHCL := loaderFor("proj/blinky.hcl").(*hcl.Loader)
	require.True(t, isHCL)

	// Directories carry no extension and default to HCL.
	_, isHCL = loaderFor("proj").(*hcl.Loader)
	require.True(t, isHCL)
}
