package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidCatalog(t *testing.T) {
	yamlContent := `
indices:
  - name: logs-2026.08
    uuid: fCbGb7WnRLmYxJ3a
  - name: metrics
    uuid: Qa8tR2pXSdO7wL1z
`
	resolver, err := Load(strings.NewReader(yamlContent))
	require.NoError(t, err)

	uuid, err := resolver.LookupUUID("logs-2026.08")
	require.NoError(t, err)
	assert.Equal(t, "fCbGb7WnRLmYxJ3a", uuid)

	uuid, err = resolver.LookupUUID("metrics")
	require.NoError(t, err)
	assert.Equal(t, "Qa8tR2pXSdO7wL1z", uuid)
}

func TestLoad_UnknownIndex(t *testing.T) {
	resolver, err := Load(strings.NewReader("indices:\n  - name: a\n    uuid: b\n"))
	require.NoError(t, err)

	_, err = resolver.LookupUUID("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not present in catalog")
}

func TestLoad_IncompleteEntry(t *testing.T) {
	_, err := Load(strings.NewReader("indices:\n  - name: a\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name or uuid")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(strings.NewReader("indices: [this: is: broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal index catalog yaml")
}

func TestLoadCatalog_FileIntegration(t *testing.T) {
	t.Run("FileExists", func(t *testing.T) {
		tempDir := t.TempDir()
		path := filepath.Join(tempDir, CatalogFileName)
		require.NoError(t, os.WriteFile(path, []byte("indices:\n  - name: a\n    uuid: b\n"), 0644))

		resolver, err := LoadCatalog(path)
		require.NoError(t, err)
		uuid, err := resolver.LookupUUID("a")
		require.NoError(t, err)
		assert.Equal(t, "b", uuid)
	})

	t.Run("FileDoesNotExist", func(t *testing.T) {
		// Unlike the tool config, a missing catalog is a hard error: there is
		// no fallback for the UUID lookup.
		_, err := LoadCatalog(filepath.Join(t.TempDir(), CatalogFileName))
		require.Error(t, err)
	})
}
