package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceProvider = (*Sources)(nil)

// Sources implements ports.SourceProvider on the local file system.
type Sources struct {
	walker *Walker
}

// NewSources creates a new Sources.
func NewSources(walker *Walker) *Sources {
	return &Sources{walker: walker}
}

// Sources lists in-scope files under dir.
// Exclude globs are matched against the base name and the slash path relative to dir.
func (s *Sources) Sources(dir string, extensions, exclude, skip []string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat source directory"), "path", dir)
	}

	cleanSkip := make([]string, len(skip))
	for i, p := range skip {
		cleanSkip[i] = filepath.Clean(p)
	}

	var files []string
	for path := range s.walker.WalkFiles(dir, nil, cleanSkip) {
		if !slices.Contains(extensions, filepath.Ext(path)) {
			continue
		}
		if excluded(dir, path, exclude) {
			continue
		}
		files = append(files, path)
	}
	slices.Sort(files)
	return files, nil
}

func excluded(dir, path string, patterns []string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// ReadFile returns the content of path.
func (s *Sources) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project tree
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read source"), "path", path)
	}
	return data, nil
}

// IsFile reports whether path exists and is a regular file.
func (s *Sources) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
