// Package ports defines the core interfaces for the application.
package ports

// SourceProvider lists and reads source files.
//
//go:generate go run go.uber.org/mock/mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks
type SourceProvider interface {
	// Sources returns the files under dir with one of the extensions, sorted.
	// Files matching an exclude glob and directories listed in skip are left out.
	Sources(dir string, extensions, exclude, skip []string) ([]string, error)
	// ReadFile returns the content of path.
	ReadFile(path string) ([]byte, error)
	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool
}
