package ports

import "go.trai.ch/soldeps/internal/core/domain"

// ScanCache memoizes scanner output by content hash.
//
//go:generate go run go.uber.org/mock/mockgen -source=scan_cache.go -destination=mocks/mock_scan_cache.go -package=mocks
type ScanCache interface {
	// Get returns the cached scan for hash, or false on a miss.
	Get(hash string) (*domain.ScanResult, bool)
	Put(hash string, result *domain.ScanResult)
	// Flush persists pending entries.
	Flush() error
}

// ScanCacheProvider opens the cache stored at a path.
type ScanCacheProvider interface {
	Open(path string) (ScanCache, error)
}
