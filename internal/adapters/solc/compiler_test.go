package solc_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/solc"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/soldeps/internal/core/ports/mocks"
	"go.trai.ch/soldeps/internal/engine/remap"
	"go.trai.ch/soldeps/internal/engine/scanner"
	"go.uber.org/mock/gomock"
)

// fakeSolc writes a script that records its arguments and stdin and prints output.
func fakeSolc(t *testing.T, output string) (bin, dir string) {
	t.Helper()
	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.json"), []byte(output), 0o600))
	bin = filepath.Join(dir, "solc")
	script := "#!/bin/sh\n" +
		"echo \"$@\" > \"" + dir + "/args\"\n" +
		"cat > \"" + dir + "/stdin.json\"\n" +
		"echo 'Warning: fake compiler' >&2\n" +
		"cat \"" + dir + "/out.json\"\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o700)) //nolint:gosec // test script must be executable
	return bin, dir
}

func request(bin string) *domain.CompileRequest {
	rule, _ := domain.ParseRemapping("@oz=lib/oz", 0)
	return &domain.CompileRequest{
		Group: &domain.CompilationGroup{
			ID:         "0.8.20/paris",
			Key:        domain.GroupKey{Version: domain.MustParseCompilerVersion("0.8.20"), EVMVersion: "paris"},
			Remappings: []domain.RemappingRule{rule},
			Libraries: []domain.LibraryBinding{{
				Module:  domain.NewModuleKey("lib/Math.sol"),
				Name:    "Math",
				Address: "0x0000000000000000000000000000000000000001",
			}},
		},
		Sources: map[domain.ModuleKey]string{
			domain.NewModuleKey("Token.sol"):    "contract Token {}",
			domain.NewModuleKey("lib/Math.sol"): "library Math {}",
		},
		Compiler: bin,
		BasePath: "/project/contracts",
	}
}

func TestCompiler_Compile(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("Warning: fake compiler")

	bin, dir := fakeSolc(t, `{"contracts":{"Token.sol":{}},"errors":[{"severity":"warning","message":"unused"}]}`)
	out, err := solc.NewCompiler(log).Compile(context.Background(), request(bin))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Token.sol"`)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	assert.Equal(t, "--standard-json --base-path /project/contracts --allow-paths /project/contracts", strings.TrimSpace(string(args)))

	raw, err := os.ReadFile(filepath.Join(dir, "stdin.json"))
	require.NoError(t, err)
	var input struct {
		Language string `json:"language"`
		Sources  map[string]struct {
			Content string `json:"content"`
		} `json:"sources"`
		Settings struct {
			Remappings      []string                       `json:"remappings"`
			EVMVersion      string                         `json:"evmVersion"`
			ViaIR           bool                           `json:"viaIR"`
			Libraries       map[string]map[string]string   `json:"libraries"`
			OutputSelection map[string]map[string][]string `json:"outputSelection"`
		} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(raw, &input))

	assert.Equal(t, "Solidity", input.Language)
	assert.Equal(t, "contract Token {}", input.Sources["Token.sol"].Content)
	assert.Len(t, input.Sources, 2)
	assert.Empty(t, input.Settings.Remappings, "sources are already keyed by import name")
	assert.Equal(t, "paris", input.Settings.EVMVersion)
	assert.False(t, input.Settings.ViaIR)
	assert.Equal(t, "0x0000000000000000000000000000000000000001", input.Settings.Libraries["lib/Math.sol"]["Math"])
	assert.Contains(t, input.Settings.OutputSelection["*"]["*"], "abi")
	assert.Contains(t, input.Settings.OutputSelection["*"]["*"], "evm.bytecode.object")
}

func TestCompiler_ImportsNameProvidedSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	bin, dir := fakeSolc(t, `{}`)
	req := request(bin)
	req.Sources = map[domain.ModuleKey]string{
		domain.NewModuleKey("Token.sol"):             "import \"@oz/token/ERC20.sol\";\nimport \"./lib/Math.sol\";\ncontract Token {}",
		domain.NewModuleKey("lib/Math.sol"):          "library Math {}",
		domain.NewModuleKey("@oz/token/ERC20.sol"):   "import \"../utils/Context.sol\";\ncontract ERC20 {}",
		domain.NewModuleKey("@oz/utils/Context.sol"): "contract Context {}",
	}
	_, err := solc.NewCompiler(log).Compile(context.Background(), req)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "stdin.json"))
	require.NoError(t, err)
	var input struct {
		Sources map[string]struct {
			Content string `json:"content"`
		} `json:"sources"`
		Settings map[string]json.RawMessage `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(raw, &input))
	assert.NotContains(t, input.Settings, "remappings")

	imports := 0
	for unit, src := range input.Sources {
		for _, imp := range scanner.Scan(src.Content).Imports {
			imports++
			key := remap.Key(imp.RawPath, domain.NewModuleKey(unit)).String()
			assert.Contains(t, input.Sources, key, "import %q in %s", imp.RawPath, unit)
		}
	}
	assert.Equal(t, 3, imports)
}

func TestCompiler_NoBasePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	bin, dir := fakeSolc(t, `{}`)
	req := request(bin)
	req.BasePath = ""
	_, err := solc.NewCompiler(log).Compile(context.Background(), req)
	require.NoError(t, err)

	args, err := os.ReadFile(filepath.Join(dir, "args"))
	require.NoError(t, err)
	assert.Equal(t, "--standard-json", strings.TrimSpace(string(args)))
}

func TestCompiler_ReportedErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	bin, _ := fakeSolc(t, `{"errors":[{"severity":"error","formattedMessage":"ParserError: Expected ';'"}]}`)
	out, err := solc.NewCompiler(log).Compile(context.Background(), request(bin))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCompilationFailed.Error())
	assert.NotEmpty(t, out, "raw output is kept for failed groups")
}

func TestCompiler_StderrToVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(0)

	var stderr strings.Builder
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Stderr().Return(&stderr).AnyTimes()

	bin, _ := fakeSolc(t, `{}`)
	ctx := ports.ContextWithVertex(context.Background(), vertex)
	_, err := solc.NewCompiler(log).Compile(ctx, request(bin))
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "fake compiler")
}

func TestCompiler_ProcessFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	_, err := solc.NewCompiler(log).Compile(context.Background(), request(filepath.Join(t.TempDir(), "missing")))
	assert.ErrorContains(t, err, "compiler failed")
}
