package system

import (
	"strings"
	"testing"

	"github.com/vk/edaflow/internal/testutil"
)

// Test for: read command ordering
func TestYosys_ScriptKeepsFilesetOrder(t *testing.T) {
	// --- Arrange ---
	projectHCL := `
		project "ordering" {
			toplevel = "top"
			tool     = "yosys"
		}

		file "cpu.v" {
			file_type = "verilogSource"
		}

		file "alu.sv" {
			file_type = "systemVerilogSource-2017"
		}

		file "setup.tcl" {
			file_type = "tclSource"
		}
	`
	files := map[string]string{"ordering.hcl": projectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "ordering.hcl")

	// --- Assert ---
	if result.Err != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", result.Err)
	}
	script := result.Artifact(t, "ordering.tcl")

	cpu := strings.Index(script, "read_verilog {cpu.v}")
	alu := strings.Index(script, "read_verilog -sv {alu.sv}")
	tcl := strings.Index(script, "source {setup.tcl}")
	if cpu < 0 || alu < 0 || tcl < 0 {
		t.Fatalf("script is missing a read command:\n%s", script)
	}
	if !(cpu < alu && alu < tcl) {
		t.Errorf("read commands do not follow file declaration order:\n%s", script)
	}

	makefile := result.Artifact(t, "Makefile")
	if !strings.Contains(makefile, "all: ordering.blif") {
		t.Errorf("standalone Makefile is missing the default target:\n%s", makefile)
	}
	if !strings.Contains(makefile, "yosys -l yosys.log -p 'tcl ordering.tcl'") {
		t.Errorf("Makefile does not invoke yosys on the generated script:\n%s", makefile)
	}
}

// Test for: defines and toplevel parameters in the script
func TestYosys_ParametersReachTheScript(t *testing.T) {
	// --- Arrange ---
	projectHCL := `
		project "params" {
			toplevel = "top"
			tool     = "yosys"
		}

		file "top.v" {
			file_type = "verilogSource"
		}

		parameter "WIDTH" {
			param_type = "vlogdefine"
			default    = 8
		}

		parameter "DEPTH" {
			param_type = "vlogparam"
			default    = 16
		}
	`
	files := map[string]string{"params.hcl": projectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "params.hcl")

	// --- Assert ---
	if result.Err != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", result.Err)
	}
	script := result.Artifact(t, "params.tcl")

	if !strings.Contains(script, "set defines {{WIDTH 8}}") {
		t.Errorf("vlogdefine did not render into the defines list:\n%s", script)
	}
	if !strings.Contains(script, `chparam -set DEPTH 16 \$abstract\top`) {
		t.Errorf("vlogparam did not render as a chparam command:\n%s", script)
	}
}

// Test for: the surelog frontend hand-off
func TestYosys_SurelogFrontendDelegatesElaboration(t *testing.T) {
	// --- Arrange ---
	projectHCL := `
		project "soc" {
			toplevel = "soc_top"
			tool     = "yosys"
		}

		file "soc.sv" {
			file_type = "systemVerilogSource"
		}

		parameter "WIDTH" {
			param_type = "vlogparam"
			default    = 8
		}

		tool_options "yosys" {
			yosys_synth_options = ["frontend=surelog", "-abc9"]
		}
	`
	files := map[string]string{"soc.hcl": projectHCL}

	// --- Act ---
	result := testutil.RunConfigureTest(t, files, "soc.hcl")

	// --- Assert ---
	if result.Err != nil {
		t.Fatalf("app.Run() returned an unexpected error: %v", result.Err)
	}
	script := result.Artifact(t, "soc.tcl")

	if !strings.Contains(script, "plugin -i systemverilog") {
		t.Errorf("script does not load the systemverilog plugin:\n%s", script)
	}
	if !strings.Contains(script, "read_uhdm") {
		t.Errorf("script does not read the UHDM database:\n%s", script)
	}
	if strings.Contains(script, "read_verilog") {
		t.Errorf("script still reads raw sources although Surelog elaborates them:\n%s", script)
	}
	// Parameter ownership moves to the Surelog step, so the script must not
	// set it a second time.
	if strings.Contains(script, "chparam") {
		t.Errorf("script re-applies a parameter owned by the Surelog step:\n%s", script)
	}
	if !strings.Contains(script, "synth_xilinx -abc9 -top soc_top") {
		t.Errorf("frontend selector leaked into the synth options:\n%s", script)
	}

	surelogMk := result.Artifact(t, "surelog.mk")
	if !strings.Contains(surelogMk, "-PWIDTH=8") {
		t.Errorf("surelog.mk does not carry the transferred parameter:\n%s", surelogMk)
	}
	if !strings.Contains(surelogMk, "surelog -top soc_top -parse") {
		t.Errorf("surelog.mk does not elaborate the design toplevel:\n%s", surelogMk)
	}
}
