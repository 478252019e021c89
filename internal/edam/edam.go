package edam

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FileRef is a single file entry of a design. Name is the path as supplied by
// the project description and FileType is the raw, open-ended type tag (e.g.
// "verilogSource", "systemVerilogSource-2017", "PCF"). Tags the adapters do
// not understand are legal and simply ignored by them.
type FileRef struct {
	Name          string
	FileType      string
	IsIncludeFile bool
}

// Kind resolves the raw file type tag against the closed set of kinds the
// adapters understand.
func (f FileRef) Kind() Kind {
	return KindOf(f.FileType)
}

// ParamType tells an adapter how a parameter reaches the tool.
type ParamType string

// The parameter types understood by the adapters.
const (
	VlogParam  ParamType = "vlogparam"  // Verilog toplevel parameter
	VlogDefine ParamType = "vlogdefine" // Verilog preprocessor define
	Generic    ParamType = "generic"    // VHDL generic
)

// ParamTypeOf validates a raw parameter type tag. Unlike file type tags the
// parameter type set is closed; loaders reject anything outside it.
func ParamTypeOf(tag string) (ParamType, error) {
	switch t := ParamType(tag); t {
	case VlogParam, VlogDefine, Generic:
		return t, nil
	}
	return "", fmt.Errorf("unknown parameter type %q (expected vlogparam, vlogdefine or generic)", tag)
}

// Parameter is a single design parameter. Parameters keep the declaration
// order of the project description; adapters render them in that order.
type Parameter struct {
	Name        string
	ParamType   ParamType
	Datatype    string
	Value       cty.Value
	Description string
}

// Design is the unit of configuration handed to a tool adapter. A parent
// adapter builds a fresh Design for each nested adapter it configures; the
// two never share or mutate state afterwards.
type Design struct {
	Name        string
	Toplevel    string
	Tool        string
	Files       []FileRef
	Parameters  []Parameter
	ToolOptions map[string]Options
}

// ParametersOf returns the design parameters matching any of the given types,
// in declaration order.
func (d *Design) ParametersOf(types ...ParamType) []Parameter {
	var out []Parameter
	for _, p := range d.Parameters {
		for _, t := range types {
			if p.ParamType == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Options returns the option mapping for the named tool. A design with no
// options for that tool yields an empty mapping, so callers can read with
// defaults unconditionally.
func (d *Design) Options(tool string) Options {
	return d.ToolOptions[tool]
}
