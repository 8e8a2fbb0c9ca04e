package ports

import (
	"context"

	"go.trai.ch/soldeps/internal/core/domain"
)

// VersionRegistry reports which compiler versions can be used.
//
//go:generate go run go.uber.org/mock/mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type VersionRegistry interface {
	// Installed returns the versions available locally under dir.
	Installed(ctx context.Context, dir string) ([]domain.CompilerVersion, error)
	// Installable returns the versions that Ensure can provide.
	Installable(ctx context.Context) ([]domain.CompilerVersion, error)
	// Ensure makes v available under dir.
	Ensure(ctx context.Context, dir string, v domain.CompilerVersion) error
	// Binary returns the compiler executable for v under dir.
	Binary(dir string, v domain.CompilerVersion) (string, error)
}
