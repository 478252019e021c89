// Package surelog emits the Makefile driving the Surelog parser/elaborator
// over a design's Verilog and SystemVerilog sources. Surelog is always a
// leaf: it never nests another adapter, and it is typically configured by
// the Yosys adapter when the surelog frontend is selected.
package surelog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/edatool"
	"github.com/vk/edaflow/internal/registry"
)

const toolName = "surelog"

// MakefileName is the artifact emitted by Configure. The name is a contract:
// parent flows include it from their own Makefiles.
const MakefileName = "surelog.mk"

// Adapter drives Surelog configuration for one design.
type Adapter struct {
	*edatool.Tool
}

// New builds a Surelog adapter for the design.
func New(design *edam.Design, workRoot string, logger *slog.Logger) (*Adapter, error) {
	base, err := edatool.New(toolName, design, workRoot, logger)
	if err != nil {
		return nil, err
	}
	return &Adapter{Tool: base}, nil
}

// Configure assembles the Surelog command fragments and renders surelog.mk.
// An empty source list is a degenerate but valid case; the Makefile is still
// emitted.
func (a *Adapter) Configure(ctx context.Context) error {
	srcFiles, incdirs := a.FilesetFiles(false)

	var fileList []string
	for _, f := range srcFiles {
		switch f.Kind() {
		case edam.KindVerilog, edam.KindSystemVerilog:
			fileList = append(fileList, f.Name)
		}
	}

	libraryFiles, err := a.Options.StringList("library_files")
	if err != nil {
		return err
	}
	var libraryCmd strings.Builder
	for _, lf := range libraryFiles {
		libraryCmd.WriteString(" -v " + lf)
	}

	var paramsCmd strings.Builder
	for _, p := range a.Vlogparams() {
		fmt.Fprintf(&paramsCmd, " -P%s=%s", p.Name, edatool.ParamValueStr(p.Value, ""))
	}

	// The +define prefix token is emitted only when at least one define exists.
	var definesCmd string
	if defines := a.Vlogdefines(); len(defines) > 0 {
		var b strings.Builder
		b.WriteString("+define")
		for _, d := range defines {
			fmt.Fprintf(&b, "+%s=%s", d.Name, edatool.ParamValueStr(d.Value, ""))
		}
		definesCmd = b.String()
	}

	var includeCmd strings.Builder
	for _, dir := range incdirs {
		includeCmd.WriteString(" -I" + dir)
	}

	data := makefileData{
		Name:           a.Name,
		Top:            a.Toplevel,
		Sources:        strings.Join(fileList, " "),
		LibraryCommand: libraryCmd.String(),
		ParamsCommand:  paramsCmd.String(),
		DefinesCommand: definesCmd,
		IncludeCommand: includeCmd.String(),
	}

	a.Logger.Debug("Rendering Surelog makefile.", "sources", len(fileList), "incdirs", len(incdirs))
	return a.Renderer.Render(makefileTpl, MakefileName, data)
}

// Doc publishes the static option descriptor for the CLI help generator.
func Doc() *registry.ToolDoc {
	return &registry.ToolDoc{
		Description: "Surelog SystemVerilog parser and elaborator, producing a UHDM database",
		Lists: []registry.OptionDoc{
			{Name: "library_files", Type: "String", Desc: "List of the library files for Surelog"},
		},
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the surelog adapter factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterTool(toolName, Doc(), func(design *edam.Design, workRoot string, logger *slog.Logger) (registry.Adapter, error) {
		return New(design, workRoot, logger)
	})
}
