package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/edaflow/internal/edam"
)

// Adapter is the capability interface implemented by every tool backend.
// Configure derives the tool-specific configuration from the adapter's
// design and writes the resulting build artifacts under its work root.
type Adapter interface {
	Configure(ctx context.Context) error
}

// ArgChecker is implemented by adapters that validate leftover command line
// arguments against their declared option set.
type ArgChecker interface {
	CheckArgs(args []string) error
}

// Factory builds a configured Adapter for one design. The logger is the
// adapter's diagnostics sink; factories must not fall back to global state.
type Factory func(design *edam.Design, workRoot string, logger *slog.Logger) (Adapter, error)

// OptionDoc describes a single scalar or list option of a tool.
type OptionDoc struct {
	Name string
	Type string
	Desc string
}

// ToolDoc is the static option descriptor a tool publishes for the CLI help
// generator. Members are scalar options, Lists are list-valued options.
type ToolDoc struct {
	Description string
	Members     []OptionDoc
	Lists       []OptionDoc
}

// OptionNames returns the names of all declared options, members first.
func (d *ToolDoc) OptionNames() []string {
	names := make([]string, 0, len(d.Members)+len(d.Lists))
	for _, m := range d.Members {
		names = append(names, m.Name)
	}
	for _, l := range d.Lists {
		names = append(names, l.Name)
	}
	return names
}

// Module is the interface a tool package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// entry pairs a tool's factory with its documentation.
type entry struct {
	factory Factory
	doc     *ToolDoc
}

// Registry holds the registered tool adapters for a single application
// instance.
type Registry struct {
	tools map[string]entry
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{tools: make(map[string]entry)}
}

// RegisterTool registers a tool's factory and documentation under its tag.
// Registering the same tag twice is a programmer error and panics.
func (r *Registry) RegisterTool(name string, doc *ToolDoc, factory Factory) {
	if _, exists := r.tools[name]; exists {
		panic(fmt.Sprintf("tool with name '%s' already registered", name))
	}
	slog.Debug("Registering tool adapter.", "name", name)
	r.tools[name] = entry{factory: factory, doc: doc}
}

// Factory returns the factory for the named tool, or an error when the tag
// is not part of the registered set.
func (r *Registry) Factory(name string) (Factory, error) {
	e, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q (known tools: %v)", name, r.ToolNames())
	}
	return e.factory, nil
}

// Doc returns the documentation descriptor for the named tool.
func (r *Registry) Doc(name string) (*ToolDoc, bool) {
	e, ok := r.tools[name]
	if !ok {
		return nil, false
	}
	return e.doc, true
}

// ToolNames returns the sorted tags of all registered tools.
func (r *Registry) ToolNames() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
