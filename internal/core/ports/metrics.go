package ports

import "go.trai.ch/soldeps/internal/core/domain"

// Metrics counts resolution and compilation events.
//
//go:generate go run go.uber.org/mock/mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ModuleScanned counts one scanned module; cached marks a scan cache hit.
	ModuleScanned(cached bool)
	// DiagnosticReported counts one diagnostic.
	DiagnosticReported(kind domain.DiagnosticKind)
	// GroupCompiled records one finished compilation group.
	GroupCompiled(status domain.GroupStatus, seconds float64)
}
