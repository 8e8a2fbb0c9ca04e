package packages_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/packages"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(p, 0o750))
	return p
}

func TestProvider_Roots(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, dir, "openzeppelin", "4.9.0", "contracts")
	mkdir(t, dir, "openzeppelin", "3.4.2")
	mkdir(t, dir, "openzeppelin", ".tmp")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openzeppelin", "README"), nil, 0o600))

	p := packages.New()
	roots, err := p.Roots(dir, "openzeppelin")
	require.NoError(t, err)
	require.Len(t, roots, 2)

	assert.Equal(t, "openzeppelin@3.4.2", roots[0].String())
	assert.Empty(t, roots[0].ContractsDir)
	assert.Equal(t, filepath.Join(dir, "openzeppelin", "3.4.2"), roots[0].Root)

	assert.Equal(t, "4.9.0", roots[1].Version)
	assert.Equal(t, filepath.Join(dir, "openzeppelin", "4.9.0", "contracts"), roots[1].ContractsDir)
}

func TestProvider_ScopedName(t *testing.T) {
	dir := t.TempDir()
	mkdir(t, dir, "@chainlink", "1.0.0", "contracts")

	roots, err := packages.New().Roots(dir, "@chainlink")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "chainlink", roots[0].Name)

	roots, err = packages.New().Roots(dir, "chainlink")
	require.NoError(t, err)
	assert.Empty(t, roots)
}

func TestProvider_Missing(t *testing.T) {
	tests := []struct {
		name        string
		packagesDir string
		pkg         string
	}{
		{"unknown package", t.TempDir(), "dep"},
		{"missing packages folder", filepath.Join(t.TempDir(), "nope"), "dep"},
		{"no packages folder configured", "", "dep"},
		{"nested name", t.TempDir(), "a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roots, err := packages.New().Roots(tt.packagesDir, tt.pkg)
			require.NoError(t, err)
			assert.Empty(t, roots)
		})
	}
}
