// Package testutil provides test helpers for integration and unit test
// packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path two directories above the current
// working directory, which is the repository root for a test package
// under tests/. It fails the test if the working directory cannot be
// determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}
