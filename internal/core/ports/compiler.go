package ports

import (
	"context"

	"go.trai.ch/soldeps/internal/core/domain"
)

// Compiler runs one compilation group.
// Every invocation is hermetic, so groups may be compiled concurrently.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile returns the compiler's raw output. Compiler-reported failures are returned as errors.
	Compile(ctx context.Context, req *domain.CompileRequest) ([]byte, error)
}
