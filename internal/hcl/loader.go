package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/edaflow/internal/ctxlog"
	"github.com/vk/edaflow/internal/edam"
	"github.com/vk/edaflow/internal/fsutil"
	"github.com/vk/edaflow/internal/schema"
)

// Loader reads project descriptions from HCL files.
type Loader struct{}

// NewLoader creates a new HCL project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot decodes the top-level blocks of one project file. A directory
// project may spread its blocks over several files; the loader merges them
// in lexical file order so block order stays deterministic.
type fileRoot struct {
	Projects    []*schema.Project     `hcl:"project,block"`
	Files       []*schema.File        `hcl:"file,block"`
	Parameters  []*schema.Parameter   `hcl:"parameter,block"`
	ToolOptions []*schema.ToolOptions `hcl:"tool_options,block"`
	Remain      hcl.Body              `hcl:",remain"`
}

// Load parses the project at path, a single .hcl file or a directory of
// them, and translates it into a design.
func (l *Loader) Load(ctx context.Context, path string) (*edam.Design, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := findProjectFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl project files found at %s", path)
	}
	logger.Debug("Discovered project files.", "count", len(files))

	parser := hclparse.NewParser()
	design := &edam.Design{}
	projectSeen := false

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		for _, p := range root.Projects {
			if projectSeen {
				return nil, fmt.Errorf("%s: second project block %q, a project description holds exactly one", file, p.Name)
			}
			projectSeen = true
			design.Name = p.Name
			design.Toplevel = p.Toplevel
			design.Tool = p.Tool
		}
		for _, f := range root.Files {
			design.Files = append(design.Files, edam.FileRef{
				Name:          f.Name,
				FileType:      f.FileType,
				IsIncludeFile: f.IsIncludeFile,
			})
		}
		for _, p := range root.Parameters {
			param, err := translateParameter(p)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			design.Parameters = append(design.Parameters, param)
		}
		for _, block := range root.ToolOptions {
			if err := mergeToolOptions(design, block); err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
		}
	}

	if !projectSeen {
		return nil, fmt.Errorf("no project block found at %s", path)
	}

	logger.Debug("HCL loading complete.",
		"design", design.Name, "files", len(design.Files), "parameters", len(design.Parameters))
	return design, nil
}

// findProjectFiles resolves path to a flat, lexically ordered list of .hcl
// files.
func findProjectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing project path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}

func translateParameter(p *schema.Parameter) (edam.Parameter, error) {
	paramType, err := edam.ParamTypeOf(p.ParamType)
	if err != nil {
		return edam.Parameter{}, fmt.Errorf("parameter %q: %w", p.Name, err)
	}
	param := edam.Parameter{
		Name:        p.Name,
		ParamType:   paramType,
		Datatype:    p.Datatype,
		Description: p.Description,
	}
	if p.Default != nil {
		param.Value = *p.Default
	}
	return param, nil
}

// mergeToolOptions evaluates a tool_options body into the design. The body
// is attributes-only; every attribute becomes one option value for the
// labeled tool. Options for the same tool may be split across the files of a
// directory project.
func mergeToolOptions(design *edam.Design, block *schema.ToolOptions) error {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("tool_options %q: %w", block.Tool, diags)
	}

	if design.ToolOptions == nil {
		design.ToolOptions = make(map[string]edam.Options)
	}
	opts := design.ToolOptions[block.Tool]
	if opts == nil {
		opts = make(edam.Options)
		design.ToolOptions[block.Tool] = opts
	}

	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("tool_options %q: option %q: %w", block.Tool, name, diags)
		}
		opts[name] = val
	}
	return nil
}
