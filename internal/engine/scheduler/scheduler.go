// Package scheduler dispatches compilation groups to the compiler.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scheduler compiles groups concurrently.
//
// Groups share no state, so they run in any order and a failing group never
// stops the others. Output is kept per group and reused while the group's
// fingerprint is unchanged.
type Scheduler struct {
	compiler  ports.Compiler
	registry  ports.VersionRegistry
	telemetry ports.Telemetry
	metrics   ports.Metrics

	mu          sync.RWMutex
	groupStatus map[string]domain.GroupStatus
	outputs     map[string]*domain.CompileResult
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	compiler ports.Compiler,
	registry ports.VersionRegistry,
	telemetry ports.Telemetry,
	metrics ports.Metrics,
) *Scheduler {
	return &Scheduler{
		compiler:    compiler,
		registry:    registry,
		telemetry:   telemetry,
		metrics:     metrics,
		groupStatus: make(map[string]domain.GroupStatus),
		outputs:     make(map[string]*domain.CompileResult),
	}
}

// RunOptions configures one Run.
type RunOptions struct {
	CompilersDir string
	// BasePath is passed to groups whose compiler supports it.
	BasePath    string
	Parallelism int
	// Force ignores previously kept output.
	Force bool
}

// Run compiles every group and returns one result per group in input order.
// The error joins every group failure.
func (s *Scheduler) Run(
	ctx context.Context,
	graph *domain.ImportGraph,
	groups []*domain.CompilationGroup,
	opts RunOptions,
) ([]*domain.CompileResult, error) {
	s.initGroupStatuses(groups)

	results := make([]*domain.CompileResult, len(groups))
	var eg errgroup.Group
	eg.SetLimit(max(opts.Parallelism, 1))
	for i, group := range groups {
		eg.Go(func() error {
			results[i] = s.runGroup(ctx, graph, group, opts)
			return nil
		})
	}
	_ = eg.Wait()

	var errs error
	for _, res := range results {
		if res.Err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(res.Err, "group compilation failed"), "group", res.GroupID))
		}
	}
	return results, errs
}

func (s *Scheduler) initGroupStatuses(groups []*domain.CompilationGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range groups {
		s.groupStatus[g.ID] = domain.GroupStatusPending
	}
}

func (s *Scheduler) updateStatus(id string, status domain.GroupStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groupStatus[id] = status
}

func (s *Scheduler) getStatus(id string) domain.GroupStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupStatus[id]
}

func (s *Scheduler) runGroup(
	ctx context.Context,
	graph *domain.ImportGraph,
	group *domain.CompilationGroup,
	opts RunOptions,
) *domain.CompileResult {
	res := &domain.CompileResult{GroupID: group.ID, Fingerprint: group.Fingerprint}
	if err := ctx.Err(); err != nil {
		res.Status, res.Err = domain.GroupStatusSkipped, err
		s.finish(res)
		return res
	}

	ctx, vertex := s.telemetry.Record(ctx, "compile "+group.ID)
	if prev := s.kept(group); prev != nil && !opts.Force {
		vertex.Cached()
		vertex.Complete(nil)
		res.Status, res.Output = domain.GroupStatusCached, prev.Output
		s.finish(res)
		return res
	}

	s.updateStatus(group.ID, domain.GroupStatusRunning)
	start := time.Now()
	res.Output, res.Err = s.compile(ctx, graph, group, opts)
	res.Duration = time.Since(start)
	vertex.Complete(res.Err)

	res.Status = domain.GroupStatusCompleted
	if res.Err != nil {
		res.Status = domain.GroupStatusFailed
	} else {
		s.keep(res)
	}
	s.finish(res)
	return res
}

func (s *Scheduler) compile(
	ctx context.Context,
	graph *domain.ImportGraph,
	group *domain.CompilationGroup,
	opts RunOptions,
) ([]byte, error) {
	binary, err := s.registry.Binary(opts.CompilersDir, group.Key.Version)
	if err != nil {
		return nil, err
	}

	req := &domain.CompileRequest{
		Group:    group,
		Sources:  make(map[domain.ModuleKey]string, len(group.Sources)),
		Compiler: binary,
	}
	if group.SupportsBasePath {
		req.BasePath = opts.BasePath
	}
	for _, key := range group.Sources {
		node := graph.NodeByKey(key)
		if node == nil {
			return nil, zerr.With(domain.ErrModuleNotFound, "module", key.String())
		}
		req.Sources[key] = node.Source
	}
	for alias, canonical := range group.Aliases {
		req.Sources[alias] = req.Sources[canonical]
	}
	return s.compiler.Compile(ctx, req)
}

func (s *Scheduler) kept(group *domain.CompilationGroup) *domain.CompileResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prev, ok := s.outputs[group.ID]
	if !ok || prev.Fingerprint != group.Fingerprint {
		return nil
	}
	return prev
}

func (s *Scheduler) keep(res *domain.CompileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outputs[res.GroupID] = res
}

func (s *Scheduler) finish(res *domain.CompileResult) {
	s.updateStatus(res.GroupID, res.Status)
	s.metrics.GroupCompiled(res.Status, res.Duration.Seconds())
}
