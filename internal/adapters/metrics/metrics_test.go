package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/soldeps/internal/adapters/metrics"
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
)

var _ ports.Metrics = (*metrics.Recorder)(nil)

// counters gathers every counter sample as "name{label}" -> value.
func counters(t *testing.T, r *metrics.Recorder) map[string]float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, f := range families {
		for _, m := range f.GetMetric() {
			key := f.GetName()
			for _, l := range m.GetLabel() {
				key += "{" + l.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRecorder(t *testing.T) {
	r := metrics.New()

	r.ModuleScanned(false)
	r.ModuleScanned(false)
	r.ModuleScanned(true)
	r.DiagnosticReported(domain.KindUnresolvedImport)
	r.GroupCompiled(domain.GroupStatusCompleted, 1.5)
	r.GroupCompiled(domain.GroupStatusCached, 0)

	got := counters(t, r)
	assert.InDelta(t, 2, got["soldeps_modules_scanned_total{false}"], 0)
	assert.InDelta(t, 1, got["soldeps_modules_scanned_total{true}"], 0)
	assert.InDelta(t, 1, got["soldeps_diagnostics_total{unresolved_import}"], 0)
	assert.InDelta(t, 1, got["soldeps_groups_compiled_total{completed}"], 0)
	assert.InDelta(t, 1, got["soldeps_groups_compiled_total{cached}"], 0)
	assert.InDelta(t, 1, got["soldeps_group_compile_duration_seconds"], 0)
}

func TestRecorder_Isolated(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.ModuleScanned(true)

	assert.NotContains(t, counters(t, b), "soldeps_modules_scanned_total{true}")
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.New()
	r.DiagnosticReported(domain.KindMissingPragma)

	path := filepath.Join(t.TempDir(), "soldeps.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `soldeps_diagnostics_total{kind="missing_pragma"} 1`)
}
