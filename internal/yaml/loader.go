// Package yaml provides the YAML implementation of project description
// loading, reading Edalize-style .eda.yml files. Decoding goes through the
// yaml.Node API so that the document order of parameters survives into the
// design, and open-typed values are bridged into CTY.
package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/edaflow/internal/ctxlog"
	"github.com/vk/edaflow/internal/edam"
	"gopkg.in/yaml.v3"
)

// Loader reads project descriptions from .eda.yml files.
type Loader struct{}

// NewLoader creates a new YAML project loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileEntry is one element of the files sequence.
type fileEntry struct {
	Name          string `yaml:"name"`
	FileType      string `yaml:"file_type"`
	IsIncludeFile bool   `yaml:"is_include_file"`
}

// paramEntry is the body of one named parameter. Default stays a raw node
// until it is bridged into CTY.
type paramEntry struct {
	Paramtype   string     `yaml:"paramtype"`
	Datatype    string     `yaml:"datatype"`
	Description string     `yaml:"description"`
	Default     *yaml.Node `yaml:"default"`
}

// Load parses the project file at path and translates it into a design.
func (l *Loader) Load(ctx context.Context, path string) (*edam.Design, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing project path %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: project description must be a mapping", path)
	}

	design := &edam.Design{}
	for _, p := range mappingPairs(root) {
		switch p.key.Value {
		case "name":
			design.Name = p.value.Value
		case "toplevel":
			design.Toplevel = p.value.Value
		case "tool":
			design.Tool = p.value.Value
		case "files":
			var entries []fileEntry
			if err := p.value.Decode(&entries); err != nil {
				return nil, fmt.Errorf("%s: files: %w", path, err)
			}
			for _, e := range entries {
				design.Files = append(design.Files, edam.FileRef{
					Name:          e.Name,
					FileType:      e.FileType,
					IsIncludeFile: e.IsIncludeFile,
				})
			}
		case "parameters":
			params, err := translateParameters(p.value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			design.Parameters = append(design.Parameters, params...)
		case "tool_options":
			opts, err := translateToolOptions(p.value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			design.ToolOptions = opts
		default:
			// EDAM carries sections (hooks, vpi) the configuration flow does
			// not consume; they pass through unread.
			logger.Debug("Ignoring project description section.", "section", p.key.Value)
		}
	}

	if design.Name == "" {
		return nil, fmt.Errorf("%s: project description has no name", path)
	}

	logger.Debug("YAML loading complete.",
		"design", design.Name, "files", len(design.Files), "parameters", len(design.Parameters))
	return design, nil
}

// translateParameters reads the parameters mapping in document order.
func translateParameters(node *yaml.Node) ([]edam.Parameter, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parameters: expected a mapping, got %s", nodeKindName(node.Kind))
	}

	var params []edam.Parameter
	for _, p := range mappingPairs(node) {
		var entry paramEntry
		if err := p.value.Decode(&entry); err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.key.Value, err)
		}
		paramType, err := edam.ParamTypeOf(entry.Paramtype)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", p.key.Value, err)
		}

		param := edam.Parameter{
			Name:        p.key.Value,
			ParamType:   paramType,
			Datatype:    entry.Datatype,
			Description: entry.Description,
		}
		if entry.Default != nil {
			val, err := yamlToCty(entry.Default)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: default: %w", p.key.Value, err)
			}
			param.Value = val
		}
		params = append(params, param)
	}
	return params, nil
}

// translateToolOptions reads the two-level tool_options mapping.
func translateToolOptions(node *yaml.Node) (map[string]edam.Options, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tool_options: expected a mapping, got %s", nodeKindName(node.Kind))
	}

	out := make(map[string]edam.Options)
	for _, tool := range mappingPairs(node) {
		if tool.value.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("tool_options %q: expected a mapping, got %s", tool.key.Value, nodeKindName(tool.value.Kind))
		}
		opts := make(edam.Options)
		for _, opt := range mappingPairs(tool.value) {
			val, err := yamlToCty(opt.value)
			if err != nil {
				return nil, fmt.Errorf("tool_options %q: option %q: %w", tool.key.Value, opt.key.Value, err)
			}
			opts[opt.key.Value] = val
		}
		out[tool.key.Value] = opts
	}
	return out, nil
}

// documentRoot unwraps the document node produced by unmarshalling into the
// bare root node.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return nil
}

// mappingPair is one key/value entry of a mapping node.
type mappingPair struct {
	key   *yaml.Node
	value *yaml.Node
}

// mappingPairs flattens a mapping node's interleaved content into pairs,
// keeping document order.
func mappingPairs(node *yaml.Node) []mappingPair {
	pairs := make([]mappingPair, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		pairs = append(pairs, mappingPair{key: node.Content[i], value: node.Content[i+1]})
	}
	return pairs
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
