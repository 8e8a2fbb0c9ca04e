package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/core/domain"
)

func TestModuleKey_Normalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"token/ERC20.sol", "token/ERC20.sol"},
		{"./token/ERC20.sol", "token/ERC20.sol"},
		{"token\\ERC20.sol", "token/ERC20.sol"},
		{"token//sub/../ERC20.sol", "token/ERC20.sol"},
		{"@openzeppelin/token/ERC20.sol", "@openzeppelin/token/ERC20.sol"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.NewModuleKey(tt.in).String(), tt.in)
	}
}

func TestModuleKey_Interned(t *testing.T) {
	a := domain.NewModuleKey("a/B.sol")
	b := domain.NewModuleKey("./a//B.sol")
	assert.Equal(t, a, b)
	assert.Equal(t, "a", a.Dir())
	assert.Equal(t, []string{"a", "B.sol"}, a.Segments())
	assert.True(t, domain.ModuleKey{}.IsZero())
	assert.Empty(t, domain.ModuleKey{}.String())
}

func TestModuleKey_JSON(t *testing.T) {
	type wrapper struct {
		Key domain.ModuleKey `json:"key"`
	}
	data, err := json.Marshal(wrapper{Key: domain.NewModuleKey("lib/Math.sol")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"lib/Math.sol"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, domain.NewModuleKey("lib/Math.sol"), out.Key)
}

func TestHasSegmentPrefix(t *testing.T) {
	assert.True(t, domain.HasSegmentPrefix("@dependency/A.sol", "@dependency"))
	assert.True(t, domain.HasSegmentPrefix("@dependency", "@dependency/"))
	assert.False(t, domain.HasSegmentPrefix("@dependency_extra/A.sol", "@dependency"))
	assert.False(t, domain.HasSegmentPrefix("A.sol", ""))
}
