// Package app implements the application layer for soldeps.
package app

import (
	"context"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/soldeps/internal/engine/scheduler"
	"go.trai.ch/soldeps/internal/engine/session"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	sessions     *session.Factory
	scheduler    *scheduler.Scheduler
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sessions *session.Factory,
	sched *scheduler.Scheduler,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		sessions:     sessions,
		scheduler:    sched,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Options selects the project a command runs against.
type Options struct {
	ProjectRoot string
	// ConfigFile overrides config discovery; relative paths are taken from ProjectRoot.
	ConfigFile string
	// Quiet suppresses informational log messages.
	Quiet bool
}

type quieter interface {
	SetQuiet(quiet bool)
}

// CompileOptions configures a Compile run.
type CompileOptions struct {
	Options
	// Force recompiles groups whose output could be reused.
	Force bool
}

// CompileOutcome pairs a resolution report with the per-group results.
type CompileOutcome struct {
	Report  *domain.Report
	Results []*domain.CompileResult
}

func (a *App) open(opts Options) (*session.Session, error) {
	if q, ok := a.logger.(quieter); ok {
		q.SetQuiet(opts.Quiet)
	}
	root := opts.ProjectRoot
	if root == "" {
		root = "."
	}
	settings, err := a.configLoader.Load(root, opts.ConfigFile)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	s, err := a.sessions.New(settings)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open session")
	}
	return s, nil
}

// Resolve computes versions and groups for the project.
// Diagnostics are logged; a report with errors is still returned.
func (a *App) Resolve(ctx context.Context, opts Options) (*domain.Report, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	report, err := s.Resolve(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "resolution failed")
	}
	a.logDiagnostics(report)
	return report, nil
}

// Flatten inlines target and its imports into one unit.
func (a *App) Flatten(ctx context.Context, opts Options, target string) (*domain.FlattenedUnit, error) {
	s, err := a.open(opts)
	if err != nil {
		return nil, err
	}
	unit, err := s.Flatten(ctx, target)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "flatten failed"), "module", target)
	}
	return unit, nil
}

// Compile resolves the project and compiles every group.
// Groups that fail do not stop the others; their errors are joined.
func (a *App) Compile(ctx context.Context, opts CompileOptions) (*CompileOutcome, error) {
	s, err := a.open(opts.Options)
	if err != nil {
		return nil, err
	}
	report, err := s.Resolve(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "resolution failed")
	}
	a.logDiagnostics(report)

	cfg := s.Settings()
	results, runErr := a.scheduler.Run(ctx, report.Graph, report.Groups, scheduler.RunOptions{
		CompilersDir: cfg.CompilersDir,
		BasePath:     cfg.ContractsDir,
		Parallelism:  cfg.Parallelism,
		Force:        opts.Force,
	})

	if err := a.telemetry.Close(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to close telemetry"))
	}

	outcome := &CompileOutcome{Report: report, Results: results}
	if runErr != nil {
		return outcome, zerr.Wrap(runErr, "compilation failed")
	}
	return outcome, nil
}

func (a *App) logDiagnostics(report *domain.Report) {
	for _, d := range report.Diagnostics {
		a.logger.Warn(d.String())
	}
}
