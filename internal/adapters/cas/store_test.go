package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/cas"
	"go.trai.ch/soldeps/internal/core/domain"
)

func sample() *domain.ScanResult {
	return &domain.ScanResult{
		Imports: []domain.ImportStatement{{
			RawPath: "./B.sol",
			Symbols: []domain.ImportSymbol{{Name: "B", Alias: "Bee"}},
			Span:    domain.Span{Start: 24, End: 56},
			Line:    2,
		}},
		Pragmas:  []domain.PragmaStatement{{Name: "solidity", Value: "^0.8.0", Span: domain.Span{End: 23}}},
		Licenses: []domain.LicenseHeader{{Identifier: "MIT", Span: domain.Span{Start: 60, End: 92}}},
	}
}

func TestStore_PutAndGet(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "scans.json"))
	require.NoError(t, err)

	_, ok := store.Get("abc")
	assert.False(t, ok)

	store.Put("abc", sample())
	got, ok := store.Get("abc")
	require.True(t, ok)
	assert.Equal(t, sample(), got)

	store.Put("nil", nil)
	_, ok = store.Get("nil")
	assert.False(t, ok)
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "scans.json")

	store1, err := cas.NewProvider().Open(path)
	require.NoError(t, err)
	store1.Put("abc", sample())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written before Flush")

	require.NoError(t, store1.Flush())

	store2, err := cas.NewProvider().Open(path)
	require.NoError(t, err)
	got, ok := store2.Get("abc")
	require.True(t, ok)
	assert.Equal(t, sample(), got)
}

func TestStore_FlushWithoutChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.json")
	store, err := cas.NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Flush())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		wantHit bool
	}{
		{name: "empty file", content: ""},
		{name: "other version", content: `{"version": 99, "entries": {"abc": {}}}`},
		{name: "current version", content: `{"version": 1, "entries": {"abc": {}}}`, wantHit: true},
		{name: "corrupt", content: "{not json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scans.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			store, err := cas.NewStore(path)
			if tt.wantErr {
				assert.ErrorContains(t, err, "failed to unmarshal scan cache")
				return
			}
			require.NoError(t, err)
			_, ok := store.Get("abc")
			assert.Equal(t, tt.wantHit, ok)
		})
	}
}
