package domain

import (
	"errors"
	"fmt"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks conditions that leave the module usable.
	SeverityWarning Severity = iota
	// SeverityError marks modules excluded from compilation.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// DiagnosticKind names the condition a diagnostic reports.
type DiagnosticKind string

const (
	KindUnresolvedImport     DiagnosticKind = "unresolved_import"
	KindAmbiguousDependency  DiagnosticKind = "ambiguous_dependency"
	KindUnsatisfiableVersion DiagnosticKind = "unsatisfiable_version"
	KindNoAvailableVersion   DiagnosticKind = "no_available_version"
	KindExcludedDependency   DiagnosticKind = "excluded_dependency"
	KindMalformedPragma      DiagnosticKind = "malformed_pragma"
	KindMissingPragma        DiagnosticKind = "missing_pragma"
	KindMalformedImport      DiagnosticKind = "malformed_import"
	KindUnknown              DiagnosticKind = "unknown"
)

// Severity returns how the kind affects the module.
func (k DiagnosticKind) Severity() Severity {
	switch k {
	case KindMalformedPragma, KindMissingPragma, KindMalformedImport:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) DiagnosticKind {
	switch {
	case errors.Is(err, ErrUnresolvedImport):
		return KindUnresolvedImport
	case errors.Is(err, ErrAmbiguousDependency):
		return KindAmbiguousDependency
	case errors.Is(err, ErrUnsatisfiableVersion):
		return KindUnsatisfiableVersion
	case errors.Is(err, ErrNoAvailableVersion):
		return KindNoAvailableVersion
	case errors.Is(err, ErrExcludedDependency):
		return KindExcludedDependency
	case errors.Is(err, ErrMalformedPragma):
		return KindMalformedPragma
	case errors.Is(err, ErrMissingPragma):
		return KindMissingPragma
	case errors.Is(err, ErrMalformedImport):
		return KindMalformedImport
	}
	return KindUnknown
}

// Diagnostic attaches a recoverable condition to one module.
type Diagnostic struct {
	Kind   DiagnosticKind
	Module ModuleKey
	Err    error
}

// NewDiagnostic classifies err and attaches it to module.
func NewDiagnostic(module ModuleKey, err error) Diagnostic {
	return Diagnostic{Kind: KindOf(err), Module: module, Err: err}
}

// Severity returns the severity of the diagnostic kind.
func (d Diagnostic) Severity() Severity {
	return d.Kind.Severity()
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %v", d.Severity(), d.Module, d.Err)
}
