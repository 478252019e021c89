package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertArtifactContains checks that a generated file under the run's work
// root contains the given substring. It abstracts the artifact lookup so
// tests stay resilient to work root layout changes.
func AssertArtifactContains(t *testing.T, result *HarnessResult, relPath, want string) {
	t.Helper()

	content := result.Artifact(t, relPath)
	require.True(t,
		strings.Contains(content, want),
		"expected artifact %s to contain %q, got:\n%s", relPath, want, content,
	)
}
