package system

import (
	"strings"
	"testing"

	"github.com/vk/edaflow/internal/app"
	"github.com/vk/edaflow/internal/testutil"
)

const minimalProjectHCL = `
	project "minimal" {
		toplevel = "top"
		tool     = "yosys"
	}

	file "top.v" {
		file_type = "verilogSource"
	}
`

// Test for: -doc prints the tool's option surface
func TestCLI_DocModeListsToolOptions(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"minimal.hcl": minimalProjectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "minimal.hcl", func(c *app.Config) {
		c.DocTool = "symbiflow"
	})

	// --- Assert ---
	if result.Err != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", result.Err)
	}
	for _, want := range []string{
		"symbiflow",
		"Options:",
		"builddir",
		"vendor",
		"fasm2bels",
		"environment_script",
		"Place and Route tool",
	} {
		if !strings.Contains(result.LogOutput, want) {
			t.Errorf("doc output is missing %q:\n%s", want, result.LogOutput)
		}
	}
	// Doc mode must not configure anything.
	if names := result.ArtifactNames(t); len(names) != 0 {
		t.Errorf("doc mode generated artifacts: %v", names)
	}
}

// Test for: -doc on an unknown tool lists the known ones
func TestCLI_DocModeRejectsUnknownTool(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"minimal.hcl": minimalProjectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "minimal.hcl", func(c *app.Config) {
		c.DocTool = "vivado"
	})

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("expected an error for an unknown tool, got none")
	}
	if !strings.Contains(result.Err.Error(), `unknown tool "vivado"`) {
		t.Errorf("unexpected error: %v", result.Err)
	}
	if !strings.Contains(result.Err.Error(), "symbiflow") {
		t.Errorf("error does not list the known tools: %v", result.Err)
	}
}

// Test for: leftover flags are validated against the tool's options
func TestCLI_RejectsUnknownToolArgument(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"minimal.hcl": minimalProjectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "minimal.hcl", func(c *app.Config) {
		c.ToolArgs = []string{"-frobnicate"}
	})

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("expected an error for an unknown tool argument, got none")
	}
	if !strings.Contains(result.Err.Error(), "unknown command line option -frobnicate") {
		t.Errorf("unexpected error: %v", result.Err)
	}
	if names := result.ArtifactNames(t); len(names) != 0 {
		t.Errorf("rejected run generated artifacts: %v", names)
	}
}

// Test for: known leftover flags pass the check and the flow configures
func TestCLI_AcceptsKnownToolArguments(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"minimal.hcl": minimalProjectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "minimal.hcl", func(c *app.Config) {
		c.ToolArgs = []string{"-arch", "ice40"}
	})

	// --- Assert ---
	if result.Err != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", result.Err)
	}
	script := result.Artifact(t, "minimal.tcl")
	if !strings.Contains(script, "read_verilog {top.v}") {
		t.Errorf("accepted run did not configure the flow:\n%s", script)
	}
}

// Test for: tools without an argument checker refuse leftovers outright
func TestCLI_ToolWithoutCheckerRefusesArguments(t *testing.T) {
	// --- Arrange ---
	projectHCL := `
		project "minimal" {
			toplevel = "top"
			tool     = "surelog"
		}

		file "top.v" {
			file_type = "verilogSource"
		}
	`
	files := map[string]string{"minimal.hcl": projectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "minimal.hcl", func(c *app.Config) {
		c.ToolArgs = []string{"-whatever"}
	})

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("expected an error, got none")
	}
	if !strings.Contains(result.Err.Error(), "tool surelog accepts no extra command line arguments") {
		t.Errorf("unexpected error: %v", result.Err)
	}
}
