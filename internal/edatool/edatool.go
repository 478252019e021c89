package edatool

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/render"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Tool is the common state of a tool adapter for one configure run. It is
// built fresh per adapter instance; nothing here is shared between a parent
// adapter and the children it configures.
type Tool struct {
	Name     string
	Toplevel string
	Design   *edam.Design
	Options  edam.Options
	Renderer *render.Renderer
	Logger   *slog.Logger
}

// New builds the adapter base for the named tool. The tool's option mapping
// is picked out of the design's tool_options; a design carrying no options
// for this tool is valid and yields defaults on every read.
func New(tool string, design *edam.Design, workRoot string, logger *slog.Logger) (*Tool, error) {
	if design == nil {
		return nil, errors.New("design must not be nil")
	}
	if design.Name == "" {
		return nil, errors.New("design name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := render.New(workRoot)
	if err != nil {
		return nil, err
	}

	return &Tool{
		Name:     design.Name,
		Toplevel: design.Toplevel,
		Design:   design,
		Options:  design.Options(tool),
		Renderer: renderer,
		Logger:   logger.With("tool", tool, "design", design.Name),
	}, nil
}

// FilesetFiles returns the design's source files and include directories.
func (t *Tool) FilesetFiles(forceSlash bool) ([]edam.FileRef, []string) {
	return t.Design.FilesetFiles(forceSlash)
}

// Vlogparams returns the design's Verilog toplevel parameters in
// declaration order.
func (t *Tool) Vlogparams() []edam.Parameter {
	return t.Design.ParametersOf(edam.VlogParam)
}

// Vlogdefines returns the design's Verilog defines in declaration order.
func (t *Tool) Vlogdefines() []edam.Parameter {
	return t.Design.ParametersOf(edam.VlogDefine)
}

// AbsWorkPath resolves a work-root-relative path to an absolute one, for
// artifacts that must be referenced by absolute path from generated scripts.
func (t *Tool) AbsWorkPath(relPath string) (string, error) {
	abs, err := filepath.Abs(t.Renderer.Path(relPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", relPath, err)
	}
	return abs, nil
}

// ParamValueStr renders a parameter value the way the downstream tools
// expect it on a command line or in a script: booleans as 1/0, strings
// wrapped in the given quote style, numbers in canonical form.
func ParamValueStr(v cty.Value, quote string) string {
	if v.IsNull() {
		return ""
	}
	switch v.Type() {
	case cty.Bool:
		if v.True() {
			return "1"
		}
		return "0"
	case cty.String:
		return quote + v.AsString() + quote
	default:
		conv, err := convert.Convert(v, cty.String)
		if err != nil {
			return ""
		}
		return conv.AsString()
	}
}
