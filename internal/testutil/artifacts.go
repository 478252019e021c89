package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Artifact reads one generated file from the run's work root.
func (r *HarnessResult) Artifact(t *testing.T, relPath string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.WorkRoot, relPath))
	require.NoError(t, err, "reading artifact %s", relPath)
	return string(data)
}

// ArtifactNames lists every file under the run's work root, as sorted
// slash-separated paths relative to the work root.
func (r *HarnessResult) ArtifactNames(t *testing.T) []string {
	t.Helper()
	var names []string
	err := filepath.WalkDir(r.WorkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.WorkRoot, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(names)
	return names
}
