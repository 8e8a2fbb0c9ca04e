package session

import (
	"go.trai.ch/soldeps/internal/core/domain"
	"go.trai.ch/soldeps/internal/core/ports"
)

// Factory builds Sessions from long-lived collaborators.
type Factory struct {
	sources      ports.SourceProvider
	dependencies ports.DependencyProvider
	registry     ports.VersionRegistry
	hasher       ports.ContentHasher
	caches       ports.ScanCacheProvider
	metrics      ports.Metrics
}

// NewFactory creates a new Factory.
func NewFactory(
	sources ports.SourceProvider,
	dependencies ports.DependencyProvider,
	registry ports.VersionRegistry,
	hasher ports.ContentHasher,
	caches ports.ScanCacheProvider,
	metrics ports.Metrics,
) *Factory {
	return &Factory{
		sources:      sources,
		dependencies: dependencies,
		registry:     registry,
		hasher:       hasher,
		caches:       caches,
		metrics:      metrics,
	}
}

// New opens the scan cache named by settings and returns a fresh Session.
func (f *Factory) New(settings *domain.Settings) (*Session, error) {
	opts := Options{
		Settings:     settings,
		Sources:      f.sources,
		Dependencies: f.dependencies,
		Registry:     f.registry,
		Hasher:       f.hasher,
		Metrics:      f.metrics,
	}
	if f.caches != nil && settings.CacheFile != "" {
		cache, err := f.caches.Open(settings.CacheFile)
		if err != nil {
			return nil, err
		}
		opts.Cache = cache
	}
	return New(opts), nil
}
