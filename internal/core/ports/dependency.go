package ports

import "go.trai.ch/soldeps/internal/core/domain"

// DependencyProvider locates installed dependency packages.
//
//go:generate go run go.uber.org/mock/mockgen -source=dependency.go -destination=mocks/mock_dependency.go -package=mocks
type DependencyProvider interface {
	// Roots returns every installed version of the named package under packagesDir.
	// More than one root means the name is ambiguous; callers must not pick one.
	Roots(packagesDir, name string) ([]domain.PackageRoot, error)
}
