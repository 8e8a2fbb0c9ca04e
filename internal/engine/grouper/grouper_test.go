package grouper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/engine/grouper"
)

type fixture struct {
	graph   *domain.ImportGraph
	modules map[domain.ModuleKey]*domain.ModuleResolution
}

func newFixture() *fixture {
	return &fixture{graph: domain.NewImportGraph(), modules: make(map[domain.ModuleKey]*domain.ModuleResolution)}
}

// add registers a resolved module; entry marks it as a project file.
func (f *fixture) add(key, version string, entry bool, imports ...string) {
	k := domain.NewModuleKey(key)
	idx, _ := f.graph.AddNode(k, "/src/"+key, entry)
	f.graph.Node(idx).Source = "contract " + key + " {}"
	f.modules[k] = &domain.ModuleResolution{Key: k, Version: domain.MustParseCompilerVersion(version)}
	for _, imp := range imports {
		to, ok := f.graph.Lookup(domain.NewModuleKey(imp))
		if !ok {
			panic("import added before module: " + imp)
		}
		f.graph.AddEdge(idx, to, imp, "")
	}
}

func keys(ks []domain.ModuleKey) []string {
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = k.String()
	}
	return out
}

func TestGrouper_SameTupleSharesGroup(t *testing.T) {
	f := newFixture()
	f.add("Lib.sol", "0.8.14", false)
	f.add("A.sol", "0.8.14", true, "Lib.sol")
	f.add("B.sol", "0.8.14", true)
	f.add("Old.sol", "0.7.6", true, "Lib.sol")

	gr := grouper.New(f.graph, f.modules, grouper.Options{})
	groups := gr.Groups()

	require.Len(t, groups, 2)
	assert.Equal(t, "0.7.6", groups[0].ID)
	assert.Equal(t, "0.8.14", groups[1].ID)

	assert.Equal(t, []string{"A.sol", "B.sol"}, keys(groups[1].Members))
	assert.Equal(t, []string{"A.sol", "B.sol", "Lib.sol"}, keys(groups[1].Sources))
	// Shared dependencies are compiled in every group that needs them.
	assert.Equal(t, []string{"Lib.sol", "Old.sol"}, keys(groups[0].Sources))
	assert.Equal(t, "/src/Lib.sol", groups[0].Locations[domain.NewModuleKey("Lib.sol")])

	assert.Equal(t, "0.8.14", f.modules[domain.NewModuleKey("A.sol")].Group)
	assert.Empty(t, f.modules[domain.NewModuleKey("Lib.sol")].Group)
	assert.True(t, groups[0].SupportsBasePath)
}

func TestGrouper_CompilerSettingsInID(t *testing.T) {
	f := newFixture()
	f.add("A.sol", "0.6.2", true)

	groups := grouper.New(f.graph, f.modules, grouper.Options{EVMVersion: "istanbul", ViaIR: true}).Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "0.6.2/istanbul/via-ir", groups[0].ID)
	assert.False(t, groups[0].SupportsBasePath)
}

func TestGrouper_BindingsDoNotFragment(t *testing.T) {
	f := newFixture()
	f.add("A.sol", "0.8.14", true)
	f.add("B.sol", "0.8.14", true)

	gr := grouper.New(f.graph, f.modules, grouper.Options{
		Libraries: []domain.LibraryBinding{{
			Module:  domain.NewModuleKey("B.sol"),
			Name:    "Math",
			Address: "0x0000000000000000000000000000000000000001",
		}},
	})
	groups := gr.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"A.sol", "B.sol"}, keys(groups[0].Members))
	require.Len(t, groups[0].Libraries, 1)
	assert.Equal(t, "Math", groups[0].Libraries[0].Name)
}

func TestGrouper_BindInvalidatesAffectedGroups(t *testing.T) {
	f := newFixture()
	f.add("Math.sol", "0.8.14", false)
	f.add("A.sol", "0.8.14", true, "Math.sol")
	f.add("Old.sol", "0.7.6", true)

	gr := grouper.New(f.graph, f.modules, grouper.Options{})
	before := gr.Groups()
	oldPrint := before[0].Fingerprint
	newPrint := before[1].Fingerprint

	binding := domain.LibraryBinding{
		Module:  domain.NewModuleKey("Math.sol"),
		Name:    "Math",
		Address: "0x0000000000000000000000000000000000000002",
	}
	assert.Equal(t, []string{"0.8.14"}, gr.Bind(binding))
	assert.Nil(t, gr.Bind(binding), "rebinding the same address is a no-op")

	after := gr.Groups()
	assert.Equal(t, oldPrint, after[0].Fingerprint)
	assert.NotEqual(t, newPrint, after[1].Fingerprint)
	assert.Equal(t, []domain.LibraryBinding{binding}, after[1].Libraries)

	assert.Equal(t, []string{"0.8.14"}, gr.Unbind(binding.Module, "Math"))
	assert.Nil(t, gr.Unbind(binding.Module, "Math"))
	assert.Equal(t, newPrint, gr.Groups()[1].Fingerprint)
}

func TestGrouper_RemappingsAndDeterminism(t *testing.T) {
	build := func() []*domain.CompilationGroup {
		f := newFixture()
		f.add("@oz/ERC20.sol", "0.8.20", false)
		f.add("Token.sol", "0.8.20", true, "@oz/ERC20.sol")
		rule, err := domain.ParseRemapping("@oz=lib/oz", 0)
		require.NoError(t, err)
		f.graph.NodeByKey(domain.NewModuleKey("Token.sol")).Rules = []domain.RemappingRule{rule}
		return grouper.New(f.graph, f.modules, grouper.Options{}).Groups()
	}

	first, second := build(), build()
	require.Len(t, first, 1)
	assert.Equal(t, []string{"@oz=lib/oz"}, first[0].RemappingStrings())
	assert.Equal(t, first[0].Fingerprint, second[0].Fingerprint)
}

func TestGrouper_Aliases(t *testing.T) {
	f := newFixture()
	f.add("lib/oz/ERC20.sol", "0.8.20", false)
	f.add("Token.sol", "0.8.20", true, "lib/oz/ERC20.sol")
	f.add("Old.sol", "0.7.6", true)
	_, created := f.graph.AddNode(domain.NewModuleKey("@oz/ERC20.sol"), "/src/lib/oz/ERC20.sol", false)
	require.False(t, created)

	groups := grouper.New(f.graph, f.modules, grouper.Options{}).Groups()
	require.Len(t, groups, 2)
	assert.Empty(t, groups[0].Aliases)
	assert.Equal(t, map[domain.ModuleKey]domain.ModuleKey{
		domain.NewModuleKey("@oz/ERC20.sol"): domain.NewModuleKey("lib/oz/ERC20.sol"),
	}, groups[1].Aliases)
}
