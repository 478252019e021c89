// Package render writes templated build artifacts under a single work root
// directory. Adapters hand it a parsed template, a work-root-relative output
// path and the template data; the package owns path resolution, directory
// creation and file modes.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"
)

// Renderer emits build artifacts under its work root.
type Renderer struct {
	workRoot string
}

// New returns a Renderer rooted at workRoot. The directory itself is created
// lazily on the first render.
func New(workRoot string) (*Renderer, error) {
	if workRoot == "" {
		return nil, errors.New("work root must not be empty")
	}
	return &Renderer{workRoot: workRoot}, nil
}

// WorkRoot returns the root directory all artifacts are written under.
func (r *Renderer) WorkRoot() string {
	return r.workRoot
}

// Path resolves a work-root-relative artifact path to a full path.
func (r *Renderer) Path(relPath string) string {
	return filepath.Join(r.workRoot, relPath)
}

// Render executes the template with the given data and writes the result to
// relPath under the work root. The template is executed into memory first, so
// a template error never leaves a partial artifact behind.
func (r *Renderer) Render(tpl *template.Template, relPath string, data any) error {
	return r.render(tpl, relPath, data, 0644)
}

// RenderExecutable is Render with the executable bit set, for generated
// launcher scripts.
func (r *Renderer) RenderExecutable(tpl *template.Template, relPath string, data any) error {
	return r.render(tpl, relPath, data, 0755)
}

func (r *Renderer) render(tpl *template.Template, relPath string, data any, mode fs.FileMode) error {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", relPath, err)
	}

	outPath := r.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}
