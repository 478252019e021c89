package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	mustWrite := func(rel string) {
		path := filepath.Join(tempDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	mustWrite("a.hcl")
	mustWrite("sub/b.hcl")
	mustWrite("sub/c.txt")

	// --- Act ---
	files, err := FindFilesByExtension(tempDir, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(tempDir, "a.hcl"),
		filepath.Join(tempDir, "sub", "b.hcl"),
	}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	require.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "data.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0644))
	dstDir := filepath.Join(tempDir, "build", "nested")

	// --- Act ---
	err := CopyFile(src, dstDir)

	// --- Assert ---
	require.NoError(t, err)
	copied, err := os.ReadFile(filepath.Join(dstDir, "data.bin"))
	require.NoError(t, err)
	require.Equal(t, "payload", string(copied))
}

func TestCopyFile_MissingSource(t *testing.T) {
	t.Parallel()

	err := CopyFile(filepath.Join(t.TempDir(), "absent.v"), t.TempDir())
	require.Error(t, err)
}
