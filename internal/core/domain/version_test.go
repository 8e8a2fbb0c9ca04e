package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestParseCompilerVersion(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0.8.12", "0.8.12"},
		{"v0.8.12", "0.8.12"},
		{"0.8.21+commit.d9974bed", "0.8.21"},
		{" 0.4.26 ", "0.4.26"},
	}
	for _, tt := range tests {
		got, err := domain.ParseCompilerVersion(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestParseCompilerVersion_Invalid(t *testing.T) {
	_, err := domain.ParseCompilerVersion("0.8")
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "0.8", zErr.Metadata()["version"])
	assert.Contains(t, err.Error(), domain.ErrInvalidVersion.Error())
}

func TestCompilerVersion_Compare(t *testing.T) {
	a, b := v("0.8.12"), v("0.8.14")
	assert.True(t, a.Less(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.True(t, a.Equal(v("0.8.12+commit.abc")))
	assert.True(t, domain.CompilerVersion{}.Less(v("0.0.0")))
	assert.Equal(t, "0.8.13", a.NextPatch().String())
}

func TestSortVersions(t *testing.T) {
	got := domain.SortVersions([]domain.CompilerVersion{v("0.8.14"), v("0.6.12"), v("0.8.14"), v("0.8.2")})
	assert.Equal(t, []string{"0.6.12", "0.8.2", "0.8.14"}, domain.VersionStrings(got))
}

func TestCompilerVersion_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		V domain.CompilerVersion `json:"v"`
	}{V: v("0.8.12")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":"0.8.12"}`, string(data))

	var out struct {
		V domain.CompilerVersion `json:"v"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.V.Equal(v("0.8.12")))

	assert.Error(t, json.Unmarshal([]byte(`{"v":"nope"}`), &out))
}
