package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/tools/yosys"
)

// stubLoader hands back a canned design or error, standing in for the real
// project file loaders.
type stubLoader struct {
	design *edam.Design
	err    error
}

func (s *stubLoader) Load(_ context.Context, _ string) (*edam.Design, error) {
	return s.design, s.err
}

func surelogDesign() *edam.Design {
	return &edam.Design{
		Name:     "blinky",
		Toplevel: "top",
		Tool:     "surelog",
		Files: []edam.FileRef{
			{Name: "top.v", FileType: "verilogSource"},
		},
	}
}

func newTestConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	validated, err := NewConfig(cfg)
	require.NoError(t, err)
	return validated
}

func TestNewConfig_RequiresProjectUnlessDocMode(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{DocTool: "yosys"})
	require.NoError(t, err)
	require.Equal(t, "build", cfg.WorkRoot)

	cfg, err = NewConfig(Config{ProjectPath: "p.hcl", WorkRoot: "out"})
	require.NoError(t, err)
	require.Equal(t, "out", cfg.WorkRoot)
}

func TestNewApp_PanicsOnLoadFailure(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, Config{ProjectPath: "broken.hcl"})
	loader := &stubLoader{err: errors.New("boom")}

	require.Panics(t, func() {
		NewApp(&bytes.Buffer{}, cfg, loader)
	})
}

func TestRun_ConfiguresProjectTool(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	workRoot := t.TempDir()
	cfg := newTestConfig(t, Config{ProjectPath: "p.hcl", WorkRoot: workRoot})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: surelogDesign()})

	// --- Act ---
	require.NoError(t, app.Run(context.Background()))

	// --- Assert ---
	require.FileExists(t, filepath.Join(workRoot, "surelog.mk"))
}

func TestRun_ToolFlagOverridesProjectTool(t *testing.T) {
	t.Parallel()

	workRoot := t.TempDir()
	design := surelogDesign()
	design.Tool = "symbiflow"

	cfg := newTestConfig(t, Config{ProjectPath: "p.hcl", WorkRoot: workRoot, Tool: "surelog"})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: design})

	require.NoError(t, app.Run(context.Background()))
	require.FileExists(t, filepath.Join(workRoot, "surelog.mk"))
}

func TestRun_UnknownToolListsKnownOnes(t *testing.T) {
	t.Parallel()

	design := surelogDesign()
	design.Tool = "vivado"
	cfg := newTestConfig(t, Config{ProjectPath: "p.hcl", WorkRoot: t.TempDir()})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: design})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown tool "vivado"`)
	require.Contains(t, err.Error(), "symbiflow")
}

func TestRun_NoToolSelected(t *testing.T) {
	t.Parallel()

	design := surelogDesign()
	design.Tool = ""
	cfg := newTestConfig(t, Config{ProjectPath: "p.hcl", WorkRoot: t.TempDir()})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: design})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no tool selected")
}

func TestRun_DocToolPrintsEveryOption(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var out bytes.Buffer
	cfg := newTestConfig(t, Config{DocTool: "yosys"})
	app := NewApp(&out, cfg, &stubLoader{})

	// --- Act ---
	require.NoError(t, app.Run(context.Background()))

	// --- Assert ---
	printed := out.String()
	require.Contains(t, printed, "Open source synthesis tool")
	for _, name := range yosys.Doc().OptionNames() {
		require.Contains(t, printed, name)
	}
}

func TestRun_DocToolUnknown(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, Config{DocTool: "vivado"})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown tool "vivado"`)
}

func TestRun_ToolArgsValidatedByAdapter(t *testing.T) {
	t.Parallel()

	design := surelogDesign()
	design.Tool = "yosys"
	cfg := newTestConfig(t, Config{
		ProjectPath: "p.hcl",
		WorkRoot:    t.TempDir(),
		ToolArgs:    []string{"-frobnicate"},
	})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: design})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command line option -frobnicate")
}

func TestRun_ToolArgsRejectedWithoutChecker(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t, Config{
		ProjectPath: "p.hcl",
		WorkRoot:    t.TempDir(),
		ToolArgs:    []string{"-v"},
	})
	app := NewApp(&bytes.Buffer{}, cfg, &stubLoader{design: surelogDesign()})

	err := app.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "accepts no extra command line arguments")
}
