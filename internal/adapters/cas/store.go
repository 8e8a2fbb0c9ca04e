// Package cas persists scanner output keyed by content hash.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// storeVersion is bumped whenever the scanner output format changes.
// Files written with another version are ignored.
const storeVersion = 1

var (
	_ ports.ScanCache         = (*Store)(nil)
	_ ports.ScanCacheProvider = (*Provider)(nil)
)

type document struct {
	Version int                           `json:"version"`
	Entries map[string]*domain.ScanResult `json:"entries"`
}

// Store implements ports.ScanCache using a flat JSON file.
// Entries are kept in memory and written on Flush.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]*domain.ScanResult
	dirty bool
}

// NewStore creates a new Store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]*domain.ScanResult),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read scan cache"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal scan cache"), "path", s.path)
	}
	if doc.Version != storeVersion {
		return nil
	}
	for hash, res := range doc.Entries {
		if res != nil {
			s.cache[hash] = res
		}
	}
	return nil
}

// Get retrieves the scan stored for hash.
func (s *Store) Get(hash string) (*domain.ScanResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.cache[hash]
	return res, ok
}

// Put stores the scan for hash. Nothing is written until Flush.
func (s *Store) Put(hash string, result *domain.ScanResult) {
	if result == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[hash] = result
	s.dirty = true
}

// Flush writes the cache to disk if anything changed since the last write.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	data, err := json.Marshal(document{Version: storeVersion, Entries: s.cache})
	if err != nil {
		return zerr.Wrap(err, "failed to marshal scan cache")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for scan cache"), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".scan-cache-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create scan cache file")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write scan cache")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write scan cache")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace scan cache"), "path", s.path)
	}

	s.dirty = false
	return nil
}

// Provider opens Stores.
type Provider struct{}

// NewProvider creates a new Provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Open loads the cache at path. A missing file yields an empty cache.
func (p *Provider) Open(path string) (ports.ScanCache, error) {
	return NewStore(path)
}
