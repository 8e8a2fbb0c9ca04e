// Package fs provides file system adapters for walking, reading and hashing sources.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root, skipping VCS directories, directories
// whose base name matches an ignore pattern, and the directories listed in skip.
// Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores, skip []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && w.shouldSkipDir(path, d.Name(), ignores, skip) {
					return filepath.SkipDir
				}
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkipDir(path, name string, ignores, skip []string) bool {
	switch name {
	case ".git", ".jj", "node_modules":
		return true
	}
	if slices.Contains(skip, filepath.Clean(path)) {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
