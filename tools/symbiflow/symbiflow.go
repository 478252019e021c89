// Package symbiflow is the multi-vendor place and route orchestrator. It
// resolves vendor, part and package into a bitstream device identifier,
// selects between the native VPR flow and the nextpnr flow, configures the
// nested adapter chain for the latter, and emits the driving Makefile plus
// the optional fasm2bels reverse-annotation scripts.
//
// A design can add, besides the Verilog sources: unmanaged timing
// constraints (SDC), pin constraints (PCF), placement constraints (xdc),
// opaque user files copied into the build directory, and the pre-built
// routing graph, VPR grid and capnp schema files that let VPR skip its
// early stages.
package symbiflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/edatool"
	"github.com/vk/edaflow/internal/fsutil"
	"github.com/vk/edaflow/internal/registry"
	"github.com/vk/edaflow/tools/nextpnr"
	"github.com/zclconf/go-cty/cty"
)

const toolName = "symbiflow"

// Adapter drives Symbiflow configuration for one design.
type Adapter struct {
	*edatool.Tool
}

// New builds a Symbiflow adapter for the design.
func New(design *edam.Design, workRoot string, logger *slog.Logger) (*Adapter, error) {
	base, err := edatool.New(toolName, design, workRoot, logger)
	if err != nil {
		return nil, err
	}
	return &Adapter{Tool: base}, nil
}

// Configure selects the place and route pipeline. Anything other than
// "nextpnr" runs the native VPR flow.
func (a *Adapter) Configure(ctx context.Context) error {
	pnr, err := a.Options.String("pnr", "vpr")
	if err != nil {
		return err
	}
	if pnr == "nextpnr" {
		return a.configureNextpnr(ctx)
	}
	return a.configureVPR(ctx)
}

// deviceParams is the derived device identity shared by the Makefile
// templates. Partname is the user-visible part+package string; DevicePart is
// the part used for device-database lookups, which can differ from the part
// the partname was built from.
type deviceParams struct {
	BitstreamDevice string
	Partname        string
	DevicePart      string
	DeviceSuffix    string
	ToolchainPrefix string
}

// Device returns the device-database identifier.
func (d deviceParams) Device() string {
	return d.DevicePart + "_" + d.DeviceSuffix
}

// bitstreamDeviceFor maps a part number prefix to its silicon family. An
// unknown prefix is an explicit error; a bitstream device can never be left
// unresolved.
func bitstreamDeviceFor(part string) (string, error) {
	switch {
	case strings.HasPrefix(part, "xc7a"):
		return "artix7", nil
	case strings.HasPrefix(part, "xc7z"):
		return "zynq7", nil
	case strings.HasPrefix(part, "xc7k"):
		return "kintex7", nil
	}
	return "", fmt.Errorf("cannot derive bitstream device from part %q: unknown part prefix", part)
}

// deriveDeviceParams resolves the vendor-specific device identity.
func deriveDeviceParams(vendor, part, pkg string) (deviceParams, error) {
	switch vendor {
	case "xilinx":
		bitstreamDevice, err := bitstreamDeviceFor(part)
		if err != nil {
			return deviceParams{}, err
		}
		devicePart := part
		// xc7a35t silicon is a capped xc7a50t die; the device database only
		// knows the 50t, while the partname keeps the original.
		if part == "xc7a35t" {
			devicePart = "xc7a50t"
		}
		return deviceParams{
			BitstreamDevice: bitstreamDevice,
			Partname:        part + pkg,
			DevicePart:      devicePart,
			DeviceSuffix:    "test",
			ToolchainPrefix: "symbiflow_",
		}, nil
	case "quicklogic":
		// Quicklogic toolchain releases carry no command prefix.
		return deviceParams{
			BitstreamDevice: part + "_wlcsp",
			Partname:        pkg,
			DevicePart:      part,
			DeviceSuffix:    "wlcsp",
			ToolchainPrefix: "",
		}, nil
	case "":
		return deviceParams{}, errors.New(`missing required "vendor" tool option`)
	}
	return deviceParams{}, fmt.Errorf("unsupported vendor %q (supported: quicklogic, xilinx)", vendor)
}

// requiredOption reads a string option that must be present and non-empty.
func (a *Adapter) requiredOption(name string) (string, error) {
	v, err := a.Options.String(name, "")
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", fmt.Errorf("missing required %q tool option", name)
	}
	return v, nil
}

// auxFiles are the single-valued auxiliary inputs: for each, the last
// matching file in the set wins.
type auxFiles struct {
	Pins        string // PCF
	Placement   string // xdc
	RRGraph     string
	VPRGrid     string
	CapnpSchema string
}

func classifyAux(files []edam.FileRef) auxFiles {
	var aux auxFiles
	for _, f := range files {
		switch f.Kind() {
		case edam.KindPCF:
			aux.Pins = f.Name
		case edam.KindXDC:
			aux.Placement = f.Name
		case edam.KindRRGraph:
			aux.RRGraph = f.Name
		case edam.KindVPRGrid:
			aux.VPRGrid = f.Name
		case edam.KindCapnpSchema:
			aux.CapnpSchema = f.Name
		}
	}
	return aux
}

// configureNextpnr runs the Symbiflow → Nextpnr → Yosys chain: the device
// identity is resolved first (any failure aborts before artifacts exist),
// then the nested nextpnr adapter is configured with a fresh design, and
// finally the driving Makefile ties the generated sub-Makefiles together.
func (a *Adapter) configureNextpnr(ctx context.Context) error {
	part, err := a.requiredOption("part")
	if err != nil {
		return err
	}
	pkg, err := a.requiredOption("package")
	if err != nil {
		return err
	}
	partname := part + pkg

	bitstreamDevice, err := bitstreamDeviceFor(part)
	if err != nil {
		return err
	}

	if err := a.configureNestedNextpnr(ctx); err != nil {
		return err
	}

	builddir, err := a.Options.String("builddir", "build")
	if err != nil {
		return err
	}
	environmentScript, err := a.Options.String("environment_script", "")
	if err != nil {
		return err
	}

	srcFiles, _ := a.FilesetFiles(true)
	aux := classifyAux(srcFiles)

	f2b, err := a.fasm2belsInputs()
	if err != nil {
		return err
	}
	if f2b.Enabled {
		if err := a.renderFasm2bels(a.Name, partname, aux.Placement, aux, f2b); err != nil {
			return err
		}
	}

	data := nextpnrMakefileData{
		Top:               a.Name,
		Partname:          partname,
		BitstreamDevice:   bitstreamDevice,
		Builddir:          builddir,
		EnvironmentScript: environmentScript,
		Fasm2Bels:         f2b.Enabled,
		DBRoot:            f2b.DBRoot,
		RRGraph:           aux.RRGraph,
		VPRGrid:           aux.VPRGrid,
		CapnpSchema:       aux.CapnpSchema,
	}

	a.Logger.Debug("Rendering Symbiflow nextpnr makefile.", "partname", partname, "bitstream_device", bitstreamDevice)
	return a.Renderer.Render(nextpnrMakefileTpl, "Makefile", data)
}

// configureNestedNextpnr builds the fresh design for the nested nextpnr
// adapter. The chain is marked all the way down: nextpnr runs as a sub-tool
// of this flow and itself runs Yosys as a sub-tool.
func (a *Adapter) configureNestedNextpnr(ctx context.Context) error {
	yosysSynthOptions, err := a.Options.StringList("yosys_synth_options")
	if err != nil {
		return err
	}
	yosysAdditionalCommands, err := a.Options.StringList("yosys_additional_commands")
	if err != nil {
		return err
	}
	implOptions, err := a.Options.StringList("options")
	if err != nil {
		return err
	}

	child := &edam.Design{
		Name:       a.Name,
		Toplevel:   a.Toplevel,
		Files:      slices.Clone(a.Design.Files),
		Parameters: slices.Clone(a.Design.Parameters),
		ToolOptions: map[string]edam.Options{
			"nextpnr": {
				"arch":                      cty.StringVal("xilinx"),
				"yosys_synth_options":       edam.StringListVal(yosysSynthOptions),
				"yosys_additional_commands": edam.StringListVal(yosysAdditionalCommands),
				"nextpnr_impl_options":      edam.StringListVal(implOptions),
				"nextpnr_as_subtool":        cty.True,
			},
		},
	}

	sub, err := nextpnr.New(child, a.Renderer.WorkRoot(), a.Logger)
	if err != nil {
		return err
	}
	if err := sub.Configure(ctx); err != nil {
		return fmt.Errorf("nested nextpnr: %w", err)
	}
	return nil
}

// configureVPR runs the native VPR flow: classify sources and constraints,
// copy opaque user files into the build directory, resolve the vendor
// device identity and render the driving Makefile.
func (a *Adapter) configureVPR(ctx context.Context) error {
	srcFiles, _ := a.FilesetFiles(true)

	for _, f := range srcFiles {
		if f.Kind() == edam.KindVHDL {
			return fmt.Errorf("VHDL file %s is not supported in the Yosys-based VPR flow", f.Name)
		}
	}

	part, err := a.requiredOption("part")
	if err != nil {
		return err
	}
	pkg, err := a.requiredOption("package")
	if err != nil {
		return err
	}
	vendor, err := a.Options.String("vendor", "")
	if err != nil {
		return err
	}

	dev, err := deriveDeviceParams(vendor, part, pkg)
	if err != nil {
		return err
	}

	var sources, timing, pins, placement, userFiles []string
	var aux auxFiles
	for _, f := range srcFiles {
		switch f.Kind() {
		case edam.KindVerilog:
			sources = append(sources, f.Name)
		case edam.KindSDC:
			timing = append(timing, f.Name)
		case edam.KindPCF:
			pins = append(pins, f.Name)
		case edam.KindXDC:
			placement = append(placement, f.Name)
		case edam.KindUser:
			userFiles = append(userFiles, f.Name)
		case edam.KindRRGraph:
			aux.RRGraph = f.Name
		case edam.KindVPRGrid:
			aux.VPRGrid = f.Name
		case edam.KindCapnpSchema:
			aux.CapnpSchema = f.Name
		}
	}

	builddir, err := a.Options.String("builddir", "build")
	if err != nil {
		return err
	}

	// Opaque user files are staged into the build directory up front; the
	// generated Makefile references them relative to it.
	for _, uf := range userFiles {
		if err := fsutil.CopyFile(uf, filepath.Join(a.Renderer.WorkRoot(), builddir)); err != nil {
			return fmt.Errorf("failed to stage user file: %w", err)
		}
	}

	vprOptions, err := a.Options.String("options", "")
	if err != nil {
		return err
	}
	seed, err := a.Options.String("seed", "")
	if err != nil {
		return err
	}
	environmentScript, err := a.Options.String("environment_script", "")
	if err != nil {
		return err
	}

	f2b, err := a.fasm2belsInputs()
	if err != nil {
		return err
	}
	if f2b.Enabled {
		if err := a.renderFasm2bels(a.Toplevel, dev.Partname, strings.Join(placement, " "), aux, f2b); err != nil {
			return err
		}
	}

	data := vprMakefileData{
		Top:               a.Toplevel,
		Sources:           strings.Join(sources, " "),
		Partname:          dev.Partname,
		Device:            dev.Device(),
		BitstreamDevice:   dev.BitstreamDevice,
		ToolchainPrefix:   dev.ToolchainPrefix,
		SDC:               strings.Join(timing, " "),
		PCF:               strings.Join(pins, " "),
		XDC:               strings.Join(placement, " "),
		Builddir:          builddir,
		Options:           vprOptions,
		Seed:              seed,
		EnvironmentScript: environmentScript,
		Fasm2Bels:         f2b.Enabled,
		DBRoot:            f2b.DBRoot,
		RRGraph:           aux.RRGraph,
		VPRGrid:           aux.VPRGrid,
		CapnpSchema:       aux.CapnpSchema,
	}

	a.Logger.Debug("Rendering Symbiflow VPR makefile.",
		"partname", dev.Partname, "device", dev.Device(), "bitstream_device", dev.BitstreamDevice)
	return a.Renderer.Render(vprMakefileTpl, "Makefile", data)
}

// Doc publishes the static option descriptor for the CLI help generator.
func Doc() *registry.ToolDoc {
	return &registry.ToolDoc{
		Description: "The Symbiflow backend executes Yosys synthesis and VPR or nextpnr place and route. It can target multiple different FPGA vendors",
		Members: []registry.OptionDoc{
			{Name: "package", Type: "String", Desc: "FPGA chip package (e.g. clg400-1)"},
			{Name: "part", Type: "String", Desc: "FPGA part type (e.g. xc7a50t)"},
			{Name: "builddir", Type: "String", Desc: `Directory where all the intermediate files will be stored (default "build")`},
			{Name: "vendor", Type: "String", Desc: "Target architecture. Currently only \"xilinx\" and \"quicklogic\" are supported"},
			{Name: "pnr", Type: "String", Desc: "Place and Route tool. Currently only \"vpr\" and \"nextpnr\" are supported"},
			{Name: "options", Type: "String", Desc: "Tool options. If not used, default options for the tool will be used"},
			{Name: "fasm2bels", Type: "Boolean", Desc: "Value to state whether fasm2bels is to be used."},
			{Name: "dbroot", Type: "String", Desc: "Path to the database root (needed by fasm2bels)."},
			{Name: "clocks", Type: "dict", Desc: "Clocks to be added for having tools correctly handling timing based routing."},
			{Name: "seed", Type: "String", Desc: "Seed assigned to the PnR tool."},
			{Name: "environment_script", Type: "String", Desc: "Optional bash script that will be sourced before each build step."},
		},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the symbiflow adapter factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(toolName, Doc(), func(design *edam.Design, workRoot string, logger *slog.Logger) (registry.Adapter, error) {
		return New(design, workRoot, logger)
	})
}
