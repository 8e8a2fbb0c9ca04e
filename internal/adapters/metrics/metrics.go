// Package metrics provides the Prometheus implementation of ports.Metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/zerr"
)

// Recorder counts resolution and compilation events in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	modulesScanned *prometheus.CounterVec
	diagnostics    *prometheus.CounterVec
	groups         *prometheus.CounterVec
	groupDuration  prometheus.Histogram
}

// New creates a Recorder with every collector registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		modulesScanned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soldeps_modules_scanned_total",
				Help: "Number of modules scanned, by scan cache hit.",
			},
			[]string{"cached"},
		),
		diagnostics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soldeps_diagnostics_total",
				Help: "Number of diagnostics reported, by kind.",
			},
			[]string{"kind"},
		),
		groups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soldeps_groups_compiled_total",
				Help: "Number of compilation groups finished, by status.",
			},
			[]string{"status"},
		),
		groupDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "soldeps_group_compile_duration_seconds",
				Help:    "Time taken to compile one group.",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
	r.registry.MustRegister(r.modulesScanned, r.diagnostics, r.groups, r.groupDuration)
	return r
}

// Registry exposes the collectors for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ModuleScanned counts one scanned module.
func (r *Recorder) ModuleScanned(cached bool) {
	r.modulesScanned.WithLabelValues(strconv.FormatBool(cached)).Inc()
}

// DiagnosticReported counts one diagnostic.
func (r *Recorder) DiagnosticReported(kind domain.DiagnosticKind) {
	r.diagnostics.WithLabelValues(string(kind)).Inc()
}

// GroupCompiled records one finished group. Cached groups do not observe a duration.
func (r *Recorder) GroupCompiled(status domain.GroupStatus, seconds float64) {
	r.groups.WithLabelValues(string(status)).Inc()
	if status != domain.GroupStatusCached {
		r.groupDuration.Observe(seconds)
	}
}

// WriteTextfile writes every collected sample to path in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
