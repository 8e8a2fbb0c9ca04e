package domain

import "time"

// CompileRequest is everything one compiler invocation needs.
type CompileRequest struct {
	Group *CompilationGroup
	// Sources holds the text of every module in Group.Sources, also under
	// each of its Group.Aliases, so every import names a provided unit.
	Sources map[ModuleKey]string
	// Compiler is the path of the compiler binary for Group.Key.Version.
	Compiler string
	// BasePath is passed as --base-path when the group supports it.
	BasePath string
}

// CompileResult is the outcome of one compiler invocation.
// Output is the compiler's raw JSON; this module does not interpret it.
type CompileResult struct {
	GroupID     string
	Fingerprint string
	Status      GroupStatus
	Output      []byte
	Duration    time.Duration
	Err         error
}
