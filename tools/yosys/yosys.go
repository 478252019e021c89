// Package yosys emits a TCL synthesis script and driving Makefile for the
// Yosys synthesis tool. When the surelog frontend is selected, the adapter
// delegates elaboration to a nested Surelog adapter and reads the resulting
// UHDM database instead of the raw sources.
package yosys

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/edatool"
	"github.com/vk/edaflow/internal/registry"
	"github.com/vk/edaflow/tools/surelog"
)

const toolName = "yosys"

// surelogFrontendFlag in yosys_synth_options switches elaboration to Surelog.
const surelogFrontendFlag = "frontend=surelog"

// Adapter drives Yosys configuration for one design.
type Adapter struct {
	*edatool.Tool

	// vlogparams is this adapter's view of the design's Verilog parameters.
	// When elaboration is delegated to Surelog, ownership of the parameters
	// transfers to the nested step and this view becomes empty.
	vlogparams []edam.Parameter
	subTool    bool
}

// New builds a Yosys adapter for the design.
func New(design *edam.Design, workRoot string, logger *slog.Logger) (*Adapter, error) {
	base, err := edatool.New(toolName, design, workRoot, logger)
	if err != nil {
		return nil, err
	}
	subTool, err := base.Options.Bool("yosys_as_subtool", false)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		Tool:       base,
		vlogparams: base.Vlogparams(),
		subTool:    subTool,
	}, nil
}

// Configure renders the synthesis script and its driving Makefile. As a
// sub-tool the Makefile is named <design>.mk so that several generated
// Makefiles can coexist in one work root; standalone it is the plain
// Makefile the user invokes directly.
func (a *Adapter) Configure(ctx context.Context) error {
	readOptions, err := a.Options.StringList("yosys_read_options")
	if err != nil {
		return err
	}
	synthOptions, err := a.Options.StringList("yosys_synth_options")
	if err != nil {
		return err
	}

	useSurelog := false
	kept := synthOptions[:0]
	for _, opt := range synthOptions {
		if opt == surelogFrontendFlag {
			useSurelog = true
			continue
		}
		kept = append(kept, opt)
	}
	synthOptions = kept

	var fileTable []string
	if useSurelog {
		uhdmPath, err := a.configureSurelogFrontend(ctx)
		if err != nil {
			return err
		}
		fileTable = append(fileTable, readCommand("read_uhdm", readOptions, uhdmPath))
	} else {
		srcFiles, _ := a.FilesetFiles(false)
		for _, f := range srcFiles {
			var cmd string
			switch f.Kind() {
			case edam.KindVerilog:
				cmd = "read_verilog"
			case edam.KindSystemVerilog:
				cmd = "read_verilog -sv"
			case edam.KindTCL:
				cmd = "source"
			default:
				continue
			}
			fileTable = append(fileTable, readCommand(cmd, readOptions, f.Name))
		}
	}

	// Defines render as a TCL list of {name value} pairs.
	var definePairs []string
	for _, d := range a.Vlogdefines() {
		definePairs = append(definePairs, fmt.Sprintf("{%s %s}", d.Name, edatool.ParamValueStr(d.Value, "")))
	}

	var paramLines []string
	for _, p := range a.vlogparams {
		paramLines = append(paramLines,
			fmt.Sprintf(`chparam -set %s %s \$abstract\%s`, p.Name, edatool.ParamValueStr(p.Value, `"`), a.Toplevel))
	}

	arch, err := a.Options.String("arch", "xilinx")
	if err != nil {
		return err
	}
	outputFormat, err := a.Options.String("output_format", "blif")
	if err != nil {
		return err
	}
	scriptName, err := a.Options.String("script_name", a.Name+".tcl")
	if err != nil {
		return err
	}
	defaultMakefile := "Makefile"
	if a.subTool {
		defaultMakefile = a.Name + ".mk"
	}
	makefileName, err := a.Options.String("makefile_name", defaultMakefile)
	if err != nil {
		return err
	}
	additionalCommands, err := a.Options.StringList("yosys_additional_commands")
	if err != nil {
		return err
	}

	writeCommand := "write_" + outputFormat
	if outputFormat == "edif" && arch == "xilinx" {
		writeCommand += " -pvector bra"
	}

	data := templateData{
		Name:               a.Name,
		Top:                a.Toplevel,
		UseSurelog:         useSurelog,
		VerilogDefines:     "{" + strings.Join(definePairs, " ") + "}",
		VerilogParams:      paramLines,
		FileTable:          fileTable,
		SynthCommand:       "synth_" + arch,
		SynthOptions:       strings.Join(synthOptions, " "),
		AdditionalCommands: additionalCommands,
		WriteCommand:       writeCommand,
		Output:             a.Name + "." + outputFormat,
		ScriptName:         scriptName,
		SubTool:            a.subTool,
	}

	a.Logger.Debug("Rendering Yosys artifacts.",
		"script", scriptName, "makefile", makefileName, "surelog_frontend", useSurelog)

	if err := a.Renderer.Render(scriptTpl, scriptName, data); err != nil {
		return err
	}
	return a.Renderer.Render(makefileTpl, makefileName, data)
}

// configureSurelogFrontend builds and configures the nested Surelog adapter,
// takes over its UHDM output location and transfers parameter ownership to
// the nested step. It returns the absolute path of the UHDM database.
func (a *Adapter) configureSurelogFrontend(ctx context.Context) (string, error) {
	libraryFiles, err := a.Options.StringList("library_files")
	if err != nil {
		return "", err
	}

	child := &edam.Design{
		Name:       a.Name,
		Toplevel:   a.Toplevel,
		Files:      slices.Clone(a.Design.Files),
		Parameters: slices.Clone(a.Design.Parameters),
		ToolOptions: map[string]edam.Options{
			"surelog": {
				"library_files": edam.StringListVal(libraryFiles),
			},
		},
	}

	sub, err := surelog.New(child, a.Renderer.WorkRoot(), a.Logger)
	if err != nil {
		return "", err
	}
	if err := sub.Configure(ctx); err != nil {
		return "", fmt.Errorf("surelog frontend: %w", err)
	}

	// The Verilog parameters are consumed by the Surelog step; this
	// adapter's view is empty from here on.
	a.vlogparams = nil

	return a.AbsWorkPath(a.Toplevel + ".uhdm")
}

// CheckArgs validates leftover command line flags against the declared
// option set. As a sub-tool the check is skipped entirely; the parent flow
// owns parameter validation.
func (a *Adapter) CheckArgs(args []string) error {
	if a.subTool {
		return nil
	}

	known := make(map[string]struct{})
	for _, name := range Doc().OptionNames() {
		known[name] = struct{}{}
	}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if _, ok := known[name]; !ok {
			return fmt.Errorf("unknown command line option %s", arg)
		}
	}
	return nil
}

// readCommand assembles one file-read line of the TCL script. The file path
// is brace-quoted so TCL keeps it verbatim.
func readCommand(cmd string, readOptions []string, path string) string {
	parts := append([]string{cmd}, readOptions...)
	parts = append(parts, "{"+path+"}")
	return strings.Join(parts, " ")
}

// Doc publishes the static option descriptor for the CLI help generator.
// CheckArgs validates against the same set.
func Doc() *registry.ToolDoc {
	return &registry.ToolDoc{
		Description: "Open source synthesis tool targeting many different FPGAs",
		Members: []registry.OptionDoc{
			{Name: "arch", Type: "String", Desc: "Target architecture. Legal values are *xilinx*, *ice40* and *ecp5*"},
			{Name: "output_format", Type: "String", Desc: "Output file format. Legal values are *json*, *edif*, *blif*"},
			{Name: "yosys_as_subtool", Type: "bool", Desc: "Determines if Yosys is run as a part of bigger toolchain, or as a standalone tool"},
			{Name: "makefile_name", Type: "String", Desc: "Generated makefile name, defaults to $name.mk"},
			{Name: "script_name", Type: "String", Desc: "Generated tcl script filename, defaults to $name.tcl"},
		},
		Lists: []registry.OptionDoc{
			{Name: "yosys_read_options", Type: "String", Desc: "Additional options for the read_* command (e.g. read_verilog or read_uhdm)"},
			{Name: "yosys_synth_options", Type: "String", Desc: "Additional options for the synth command"},
			{Name: "yosys_additional_commands", Type: "String", Desc: "Additional commands for the yosys script"},
			{Name: "library_files", Type: "String", Desc: "List of the library files for Surelog"},
		},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the yosys adapter factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(toolName, Doc(), func(design *edam.Design, workRoot string, logger *slog.Logger) (registry.Adapter, error) {
		return New(design, workRoot, logger)
	})
}
