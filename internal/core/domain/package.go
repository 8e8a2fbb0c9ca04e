package domain

import "path/filepath"

// PackageRoot is one installed version of a dependency package.
type PackageRoot struct {
	// Name is the dependency name as referenced by imports, without a leading "@".
	Name string
	// Version is the installed version directory name.
	Version string
	// Root is the package directory.
	Root string
	// ContractsDir is Root/contracts when that directory exists, empty otherwise.
	ContractsDir string
}

// String renders the package as "name@version".
func (p PackageRoot) String() string {
	return p.Name + "@" + p.Version
}

// SourceDirs returns the directories a derived remapping may target,
// contracts subdirectory first.
func (p PackageRoot) SourceDirs() []string {
	if p.ContractsDir == "" {
		return []string{p.Root}
	}
	return []string{p.ContractsDir, p.Root}
}

// Contains reports whether file lies under the package root.
func (p PackageRoot) Contains(file string) bool {
	rel, err := filepath.Rel(p.Root, file)
	return err == nil && rel != ".." && !filepath.IsAbs(rel) && !hasParentPrefix(rel)
}

func hasParentPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
