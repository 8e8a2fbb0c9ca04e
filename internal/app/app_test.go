package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/fs"
	"go.trai.ch/soldeps/internal/adapters/logger"
	"go.trai.ch/soldeps/internal/adapters/packages"
	"go.trai.ch/soldeps/internal/adapters/telemetry"
	"go.trai.ch/soldeps/internal/app"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports/mocks"
	"go.trai.ch/soldeps/internal/engine/scheduler"
	"go.trai.ch/soldeps/internal/engine/session"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type harness struct {
	root     string
	settings *domain.Settings
	loader   *mocks.MockConfigLoader
	registry *mocks.MockVersionRegistry
	compiler *mocks.MockCompiler
	logger   *mocks.MockLogger
	sessions *session.Factory
	sched    *scheduler.Scheduler
	app      *app.App
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	settings, err := (&domain.Config{}).Validate(root)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	h := &harness{
		root:     root,
		settings: settings,
		loader:   mocks.NewMockConfigLoader(ctrl),
		registry: mocks.NewMockVersionRegistry(ctrl),
		compiler: mocks.NewMockCompiler(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().ModuleScanned(gomock.Any()).AnyTimes()
	metrics.EXPECT().DiagnosticReported(gomock.Any()).AnyTimes()
	metrics.EXPECT().GroupCompiled(gomock.Any(), gomock.Any()).AnyTimes()

	h.registry.EXPECT().Installed(gomock.Any(), settings.CompilersDir).
		Return([]domain.CompilerVersion{
			domain.MustParseCompilerVersion("0.7.6"),
			domain.MustParseCompilerVersion("0.8.24"),
		}, nil).AnyTimes()
	h.registry.EXPECT().Binary(settings.CompilersDir, gomock.Any()).
		DoAndReturn(func(_ string, v domain.CompilerVersion) (string, error) {
			return "/bin/solc-" + v.String(), nil
		}).AnyTimes()

	h.sessions = session.NewFactory(fs.NewSources(fs.NewWalker()), packages.New(), h.registry, fs.NewHasher(), nil, metrics)
	h.sched = scheduler.NewScheduler(h.compiler, h.registry, telemetry.NewNoOp(), metrics)
	h.app = app.New(h.loader, h.sessions, h.sched, telemetry.NewNoOp(), h.logger)
	return h
}

func (h *harness) opts() app.Options {
	return app.Options{ProjectRoot: h.root, ConfigFile: "custom.yaml"}
}

var healthy = map[string]string{
	"contracts/A.sol": "pragma solidity ^0.8.0;\nimport \"./B.sol\";\ncontract A {}\n",
	"contracts/B.sol": "pragma solidity >=0.7.0;\ncontract B {}\n",
	"contracts/C.sol": "pragma solidity ^0.7.0;\ncontract C {}\n",
}

func TestApp_Resolve(t *testing.T) {
	h := newHarness(t, map[string]string{
		"contracts/A.sol": "pragma solidity ^0.8.0;\nimport \"./Gone.sol\";\n",
		"contracts/B.sol": "contract B {}\n",
	})
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(h.settings, nil)
	h.logger.EXPECT().Warn(gomock.Any()).Times(2)

	report, err := h.app.Resolve(context.Background(), h.opts())
	require.NoError(t, err)
	assert.True(t, report.HasErrors())
	assert.Len(t, report.Warnings(), 1, "B.sol has no pragma")
	assert.Contains(t, report.Modules, domain.NewModuleKey("B.sol"))
}

func TestApp_ResolveQuiet(t *testing.T) {
	h := newHarness(t, map[string]string{"contracts/B.sol": "contract B {}\n"})
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(h.settings, nil)

	var buf bytes.Buffer
	lg := logger.NewWithWriter(&buf)
	a := app.New(h.loader, h.sessions, h.sched, telemetry.NewNoOp(), lg)

	opts := h.opts()
	opts.Quiet = true
	_, err := a.Resolve(context.Background(), opts)
	require.NoError(t, err)
	lg.Info("hidden")

	assert.Contains(t, buf.String(), "B.sol")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestApp_ResolveConfigError(t *testing.T) {
	h := newHarness(t, nil)
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(nil, domain.ErrInvalidEVMVersion)

	_, err := h.app.Resolve(context.Background(), h.opts())
	assert.ErrorContains(t, err, "failed to load configuration")
	assert.ErrorContains(t, err, domain.ErrInvalidEVMVersion.Error())
}

func TestApp_Flatten(t *testing.T) {
	h := newHarness(t, healthy)
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(h.settings, nil)

	unit, err := h.app.Flatten(context.Background(), h.opts(), "A.sol")
	require.NoError(t, err)
	assert.Equal(t, []domain.ModuleKey{domain.NewModuleKey("B.sol"), domain.NewModuleKey("A.sol")}, unit.Keys())
}

func TestApp_Compile(t *testing.T) {
	h := newHarness(t, healthy)
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(h.settings, nil)

	h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.CompileRequest) ([]byte, error) {
			assert.Equal(t, "/bin/solc-"+req.Group.Key.Version.String(), req.Compiler)
			assert.Equal(t, h.settings.ContractsDir, req.BasePath)
			return []byte(`{"contracts":{}}`), nil
		}).Times(2)

	outcome, err := h.app.Compile(context.Background(), app.CompileOptions{Options: h.opts()})
	require.NoError(t, err)
	require.Len(t, outcome.Results, 2)
	for _, res := range outcome.Results {
		assert.Equal(t, domain.GroupStatusCompleted, res.Status)
	}
	assert.Equal(t, "0.7.6", outcome.Results[0].GroupID)
	assert.Equal(t, "0.8.24", outcome.Results[1].GroupID)
}

func TestApp_CompileFailure(t *testing.T) {
	h := newHarness(t, healthy)
	h.loader.EXPECT().Load(h.root, "custom.yaml").Return(h.settings, nil)

	h.compiler.EXPECT().Compile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.CompileRequest) ([]byte, error) {
			if req.Group.ID == "0.7.6" {
				return nil, zerr.With(domain.ErrCompilationFailed, "errors", "ParserError")
			}
			return []byte(`{}`), nil
		}).Times(2)

	outcome, err := h.app.Compile(context.Background(), app.CompileOptions{Options: h.opts()})
	assert.ErrorContains(t, err, "compilation failed")
	require.NotNil(t, outcome)
	assert.Equal(t, domain.GroupStatusFailed, outcome.Results[0].Status)
	assert.Equal(t, domain.GroupStatusCompleted, outcome.Results[1].Status)
}
