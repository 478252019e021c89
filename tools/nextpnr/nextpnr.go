// Package nextpnr emits the place and route Makefile for the nextpnr tool
// family. The adapter always nests a Yosys adapter for synthesis, configured
// to write the JSON netlist nextpnr consumes, and then selects the
// constraint file and output target matching the requested architecture.
package nextpnr

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/edatool"
	"github.com/vk/edaflow/internal/registry"
	"github.com/vk/edaflow/tools/yosys"
	"github.com/zclconf/go-cty/cty"
)

const toolName = "nextpnr"

// archTarget describes the per-architecture shape of the flow: which
// constraint kind feeds the router and what artifact it produces.
type archTarget struct {
	constraintKind edam.Kind
	constraintFlag string
	targetExt      string
}

// archTargets is the closed set of architectures the adapter understands.
var archTargets = map[string]archTarget{
	"xilinx": {constraintKind: edam.KindXDC, constraintFlag: "--xdc", targetExt: "fasm"},
	"ice40":  {constraintKind: edam.KindPCF, constraintFlag: "--pcf", targetExt: "asc"},
	"ecp5":   {constraintKind: edam.KindLPF, constraintFlag: "--lpf", targetExt: "cfg"},
}

// Adapter drives nextpnr configuration for one design.
type Adapter struct {
	*edatool.Tool
	subTool bool
}

// New builds a nextpnr adapter for the design.
func New(design *edam.Design, workRoot string, logger *slog.Logger) (*Adapter, error) {
	base, err := edatool.New(toolName, design, workRoot, logger)
	if err != nil {
		return nil, err
	}
	subTool, err := base.Options.Bool("nextpnr_as_subtool", false)
	if err != nil {
		return nil, err
	}
	return &Adapter{Tool: base, subTool: subTool}, nil
}

// Configure nests a Yosys synthesis step and renders the place and route
// Makefile. As a sub-tool it is named <design>-nextpnr.mk, collision-free
// next to the nested Yosys <design>.mk; standalone it is the plain Makefile.
func (a *Adapter) Configure(ctx context.Context) error {
	arch, err := a.Options.String("arch", "xilinx")
	if err != nil {
		return err
	}
	target, ok := archTargets[arch]
	if !ok {
		return fmt.Errorf("unsupported nextpnr arch %q (supported: ecp5, ice40, xilinx)", arch)
	}

	if err := a.configureYosys(ctx, arch); err != nil {
		return err
	}

	implOptions, err := a.Options.StringList("nextpnr_impl_options")
	if err != nil {
		return err
	}

	// Last matching constraint file wins, as with the other single-valued
	// auxiliary files.
	var constraint string
	srcFiles, _ := a.FilesetFiles(false)
	for _, f := range srcFiles {
		if f.Kind() == target.constraintKind {
			constraint = f.Name
		}
	}
	if constraint == "" {
		a.Logger.Warn("No constraint file in the file set; the router will run unconstrained.",
			"arch", arch, "expected_kind", target.constraintKind.String())
	}

	makefileName := "Makefile"
	if a.subTool {
		makefileName = a.Name + "-nextpnr.mk"
	}

	data := makefileData{
		Name:        a.Name,
		Arch:        arch,
		TargetExt:   target.targetExt,
		Constraint:  constraint,
		ImplOptions: strings.Join(implOptions, " "),
		SubTool:     a.subTool,
	}
	if constraint != "" {
		data.ConstraintFlag = target.constraintFlag + " " + constraint
	}

	a.Logger.Debug("Rendering nextpnr makefile.", "makefile", makefileName, "arch", arch)
	return a.Renderer.Render(makefileTpl, makefileName, data)
}

// configureYosys builds the fresh design for the nested Yosys step and runs
// its configuration. The nested instance always writes a JSON netlist and is
// marked as a sub-tool so its Makefile name stays out of this adapter's way.
func (a *Adapter) configureYosys(ctx context.Context, arch string) error {
	synthOptions, err := a.Options.StringList("yosys_synth_options")
	if err != nil {
		return err
	}
	additionalCommands, err := a.Options.StringList("yosys_additional_commands")
	if err != nil {
		return err
	}

	child := &edam.Design{
		Name:       a.Name,
		Toplevel:   a.Toplevel,
		Files:      slices.Clone(a.Design.Files),
		Parameters: slices.Clone(a.Design.Parameters),
		ToolOptions: map[string]edam.Options{
			"yosys": {
				"arch":                      cty.StringVal(arch),
				"output_format":             cty.StringVal("json"),
				"yosys_as_subtool":          cty.True,
				"yosys_synth_options":       edam.StringListVal(synthOptions),
				"yosys_additional_commands": edam.StringListVal(additionalCommands),
			},
		},
	}

	sub, err := yosys.New(child, a.Renderer.WorkRoot(), a.Logger)
	if err != nil {
		return err
	}
	if err := sub.Configure(ctx); err != nil {
		return fmt.Errorf("nested yosys: %w", err)
	}
	return nil
}

// Doc publishes the static option descriptor. The nested Yosys options are
// part of this tool's surface too, so its descriptor is merged in.
func Doc() *registry.ToolDoc {
	doc := &registry.ToolDoc{
		Description: "A portable FPGA place and route tool",
		Members: []registry.OptionDoc{
			{Name: "arch", Type: "String", Desc: "Target architecture. Legal values are *xilinx*, *ice40* and *ecp5*"},
			{Name: "nextpnr_as_subtool", Type: "bool", Desc: "Determines if nextpnr is run as a part of bigger toolchain, or as a standalone tool"},
		},
		Lists: []registry.OptionDoc{
			{Name: "nextpnr_impl_options", Type: "String", Desc: "Additional options for the nextpnr command"},
		},
	}

	seen := make(map[string]struct{})
	for _, name := range doc.OptionNames() {
		seen[name] = struct{}{}
	}
	yosysDoc := yosys.Doc()
	for _, m := range yosysDoc.Members {
		if _, ok := seen[m.Name]; !ok {
			doc.Members = append(doc.Members, m)
		}
	}
	for _, l := range yosysDoc.Lists {
		if _, ok := seen[l.Name]; !ok {
			doc.Lists = append(doc.Lists, l)
		}
	}
	return doc
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the nextpnr adapter factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(toolName, Doc(), func(design *edam.Design, workRoot string, logger *slog.Logger) (registry.Adapter, error) {
		return New(design, workRoot, logger)
	})
}
