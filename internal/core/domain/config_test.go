package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/core/domain"
)

func TestConfig_ValidateDefaults(t *testing.T) {
	root := t.TempDir()
	cfg := domain.Config{}

	s, err := cfg.Validate(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "contracts"), s.ContractsDir)
	assert.Equal(t, filepath.Join(root, "contracts", ".cache"), s.PackagesDir)
	assert.Equal(t, filepath.Join(root, ".soldeps", "scan-cache.json"), s.CacheFile)
	assert.Equal(t, []string{".sol"}, s.Extensions)
	assert.Equal(t, domain.DefaultParallelism, s.Parallelism)
	assert.True(t, s.PreferredVersion.IsZero())
	assert.Empty(t, s.EVMVersion)
	assert.Empty(t, s.Remappings)
}

func TestConfig_ValidateFull(t *testing.T) {
	root := t.TempDir()
	cfg := domain.Config{
		ContractsFolder: "src",
		Extensions:      []string{"sol", ".vy", ".sol"},
		Parallelism:     2,
		Solidity: domain.SolidityConfig{
			Version:         "0.8.14",
			EVMVersion:      "PARIS",
			ViaIR:           true,
			ImportRemapping: []string{"@openzeppelin=lib/oz", "@solmate=lib/solmate/src"},
			Libraries: map[string]map[string]string{
				"src/Math.sol": {"Math": "0x0000000000000000000000000000000000000001"},
			},
		},
	}

	s, err := cfg.Validate(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "src"), s.ContractsDir)
	assert.Equal(t, []string{".sol", ".vy"}, s.Extensions)
	assert.Equal(t, "0.8.14", s.PreferredVersion.String())
	assert.Equal(t, "paris", s.EVMVersion)
	assert.True(t, s.ViaIR)
	require.Len(t, s.Remappings, 2)
	assert.Equal(t, "@solmate", s.Remappings[1].Prefix)
	assert.Equal(t, 1, s.Remappings[1].Order)
	require.Len(t, s.Libraries, 1)
	assert.Equal(t, domain.NewModuleKey("Math.sol"), s.Libraries[0].Module)
	assert.True(t, s.HasExtension("a/B.vy"))
	assert.False(t, s.HasExtension("a/B.txt"))
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.Config
		want error
	}{
		{
			name: "remapping format",
			cfg:  domain.Config{Solidity: domain.SolidityConfig{ImportRemapping: []string{"@oz"}}},
			want: domain.ErrMalformedRemapping,
		},
		{
			name: "evm version",
			cfg:  domain.Config{Solidity: domain.SolidityConfig{EVMVersion: "frontier2"}},
			want: domain.ErrInvalidEVMVersion,
		},
		{
			name: "library address",
			cfg: domain.Config{Solidity: domain.SolidityConfig{Libraries: map[string]map[string]string{
				"Math.sol": {"Math": "0x1234"},
			}}},
			want: domain.ErrInvalidLibraryAddress,
		},
		{
			name: "preferred version",
			cfg:  domain.Config{Solidity: domain.SolidityConfig{Version: "^0.8.0"}},
			want: domain.ErrInvalidVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Validate(t.TempDir())
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
