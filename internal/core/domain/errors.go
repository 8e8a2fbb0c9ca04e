package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrInvalidVersion is returned when a concrete compiler version cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid compiler version")

	// ErrMalformedRemapping is returned when a remapping entry is not of the form "prefix=target".
	ErrMalformedRemapping = zerr.New("remapping must be of the form prefix=target")

	// ErrInvalidEVMVersion is returned when the configured EVM target is unknown.
	ErrInvalidEVMVersion = zerr.New("unknown evm version")

	// ErrInvalidLibraryAddress is returned when a library binding is not a 20-byte hex address.
	ErrInvalidLibraryAddress = zerr.New("invalid library address")

	// ErrModuleNotFound is returned when a requested module is not part of the import graph.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrUnresolvedImport is the sentinel wrapped by UnresolvedImportError.
	ErrUnresolvedImport = zerr.New("unresolved import")

	// ErrAmbiguousDependency is the sentinel wrapped by AmbiguousDependencyError.
	ErrAmbiguousDependency = zerr.New("ambiguous dependency version")

	// ErrUnsatisfiableVersion is the sentinel wrapped by UnsatisfiableVersionError.
	ErrUnsatisfiableVersion = zerr.New("no compiler version satisfies every constraint")

	// ErrNoAvailableVersion is the sentinel wrapped by NoAvailableVersionError.
	ErrNoAvailableVersion = zerr.New("no available compiler version")

	// ErrMalformedPragma is the sentinel wrapped by MalformedPragmaWarning.
	ErrMalformedPragma = zerr.New("malformed version pragma")

	// ErrMissingPragma is reported when a module declares no solidity pragma.
	ErrMissingPragma = zerr.New("missing version pragma")

	// ErrMalformedImport is reported when an import statement never terminates.
	ErrMalformedImport = zerr.New("import statement missing semicolon")

	// ErrExcludedDependency is reported for modules dropped because something they import failed.
	ErrExcludedDependency = zerr.New("module depends on a failed module")

	// ErrCompilerNotInstalled is returned when no binary exists for a selected version.
	ErrCompilerNotInstalled = zerr.New("compiler version is not installed")

	// ErrCompilerNotInstallable is returned when the release list has no build for a version.
	ErrCompilerNotInstallable = zerr.New("compiler version is not available for download")

	// ErrChecksumMismatch is returned when a downloaded compiler does not match its published digest.
	ErrChecksumMismatch = zerr.New("compiler checksum mismatch")

	// ErrCompilationFailed is returned when the compiler reports errors for a group.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrResolutionFailed is returned by commands when any module was excluded.
	ErrResolutionFailed = zerr.New("dependency resolution reported errors")

	// ErrNotResolved is returned when library bindings change before groups exist.
	ErrNotResolved = zerr.New("project has not been resolved")

	// ErrCyclicFlattenGuard signals that the flattener would emit a module twice.
	// It indicates a graph builder bug and always aborts flattening.
	ErrCyclicFlattenGuard = zerr.New("flattener revisited an emitted module")
)

// UnresolvedImportError reports an import that matches no rule and no file.
type UnresolvedImportError struct {
	Importer ModuleKey
	RawPath  string
	Tried    []string
}

func (e *UnresolvedImportError) Error() string {
	return fmt.Sprintf("%s: %q imported by %s (tried %s)",
		ErrUnresolvedImport.Error(), e.RawPath, e.Importer, strings.Join(e.Tried, ", "))
}

func (e *UnresolvedImportError) Unwrap() error { return ErrUnresolvedImport }

// AmbiguousDependencyError reports a dependency name installed in more than one version.
type AmbiguousDependencyError struct {
	Name       string
	Candidates []PackageRoot
}

func (e *AmbiguousDependencyError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = c.String()
	}
	return fmt.Sprintf("%s: %s is installed as %s", ErrAmbiguousDependency.Error(), e.Name, strings.Join(names, " and "))
}

func (e *AmbiguousDependencyError) Unwrap() error { return ErrAmbiguousDependency }

// ConstraintSource names a module that contributed a pragma to an intersection.
type ConstraintSource struct {
	Module ModuleKey
	Pragma string
}

// UnsatisfiableVersionError reports an import closure whose pragmas admit no version.
type UnsatisfiableVersionError struct {
	Module    ModuleKey
	Conflicts []ConstraintSource
}

func (e *UnsatisfiableVersionError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = fmt.Sprintf("%s (%s)", c.Module, c.Pragma)
	}
	return fmt.Sprintf("%s for %s: %s", ErrUnsatisfiableVersion.Error(), e.Module, strings.Join(parts, ", "))
}

func (e *UnsatisfiableVersionError) Unwrap() error { return ErrUnsatisfiableVersion }

// NoAvailableVersionError reports a satisfiable constraint with no usable release.
type NoAvailableVersionError struct {
	Module     ModuleKey
	Constraint VersionConstraint
	Available  []CompilerVersion
	// Preferred is set when the configured project version fell outside the constraint.
	Preferred CompilerVersion
}

func (e *NoAvailableVersionError) Error() string {
	msg := fmt.Sprintf("%s for %s: need %s, have [%s]",
		ErrNoAvailableVersion.Error(), e.Module, e.Constraint, strings.Join(VersionStrings(e.Available), ", "))
	if !e.Preferred.IsZero() {
		msg += fmt.Sprintf(", preferred %s does not satisfy", e.Preferred)
	}
	return msg
}

func (e *NoAvailableVersionError) Unwrap() error { return ErrNoAvailableVersion }

// MalformedPragmaWarning reports a pragma that is not a version expression.
// The module is treated as unconstrained.
type MalformedPragmaWarning struct {
	Raw    string
	Reason string
}

func (e *MalformedPragmaWarning) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrMalformedPragma.Error(), e.Raw, e.Reason)
}

func (e *MalformedPragmaWarning) Unwrap() error { return ErrMalformedPragma }

// ExcludedDependencyError marks a module dropped because an import in its closure failed.
type ExcludedDependencyError struct {
	Module ModuleKey
	Via    ModuleKey
}

func (e *ExcludedDependencyError) Error() string {
	return fmt.Sprintf("%s: %s via %s", ErrExcludedDependency.Error(), e.Module, e.Via)
}

func (e *ExcludedDependencyError) Unwrap() error { return ErrExcludedDependency }
