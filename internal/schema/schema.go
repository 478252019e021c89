// Package schema declares the HCL block structure of project description
// files. The structs only shape the syntax; translation into the design
// model and all semantic validation live in the loader.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Project is the single `project` block naming the design and selecting the
// default tool.
type Project struct {
	Name     string `hcl:"name,label"`
	Toplevel string `hcl:"toplevel,optional"`
	Tool     string `hcl:"tool,optional"`
}

// File is one `file` block. The label is the path; the file type tag is an
// open string resolved against the known kinds only when an adapter reads it.
type File struct {
	Name          string `hcl:"name,label"`
	FileType      string `hcl:"file_type"`
	IsIncludeFile bool   `hcl:"is_include_file,optional"`
}

// Parameter is one `parameter` block. Default values stay cty-typed so that
// numbers, bools, strings and collections all pass through untouched.
type Parameter struct {
	Name        string     `hcl:"name,label"`
	ParamType   string     `hcl:"param_type"`
	Datatype    string     `hcl:"datatype,optional"`
	Default     *cty.Value `hcl:"default,optional"`
	Description string     `hcl:"description,optional"`
}

// ToolOptions is one `tool_options` block, labeled with the tool tag. The
// body is kept open: option names belong to the tools, not the schema, and
// are validated lazily when an adapter reads them.
type ToolOptions struct {
	Tool string   `hcl:"tool,label"`
	Body hcl.Body `hcl:",remain"`
}
