package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpreterCatalogFileAdapter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"versions":["3.12.0","3.11.0","3.10.0"]}`), 0o644))

	adapter := NewInterpreterCatalogFileAdapter(path)
	versions, err := adapter.Versions()
	require.NoError(t, err)
	require.Equal(t, []string{"3.12.0", "3.11.0", "3.10.0"}, versions)

	// Cached on second call; changing the file on disk must not affect it.
	require.NoError(t, os.WriteFile(path, []byte(`{"versions":["9.9.9"]}`), 0o644))
	versions, err = adapter.Versions()
	require.NoError(t, err)
	require.Equal(t, []string{"3.12.0", "3.11.0", "3.10.0"}, versions)
}
