// Package packages locates installed dependency packages on disk.
package packages

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyProvider = (*Provider)(nil)

const contractsDir = "contracts"

// Provider implements ports.DependencyProvider for the
// <packages>/<name>/<version>/[contracts] layout.
type Provider struct{}

// New creates a new Provider.
func New() *Provider {
	return &Provider{}
}

// Roots returns every version directory of name, sorted by version name.
// The name is matched verbatim, so "@scope" directories are found as written.
func (p *Provider) Roots(packagesDir, name string) ([]domain.PackageRoot, error) {
	if strings.TrimPrefix(name, "@") == "" || packagesDir == "" || strings.ContainsAny(name, `/\`) {
		return nil, nil
	}

	dir := filepath.Join(packagesDir, name)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read package directory"), "path", dir)
	}

	var roots []domain.PackageRoot
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		root := domain.PackageRoot{
			Name:    strings.TrimPrefix(name, "@"),
			Version: e.Name(),
			Root:    filepath.Join(dir, e.Name()),
		}
		if info, err := os.Stat(filepath.Join(root.Root, contractsDir)); err == nil && info.IsDir() {
			root.ContractsDir = filepath.Join(root.Root, contractsDir)
		}
		roots = append(roots, root)
	}
	slices.SortFunc(roots, func(a, b domain.PackageRoot) int {
		return strings.Compare(a.Version, b.Version)
	})
	return roots, nil
}
