package ports

import "go.trai.ch/soldeps/internal/core/domain"

// ConfigLoader defines the interface for loading project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration for projectRoot and validates it.
	// An empty file discovers the default config file; a missing default yields defaults.
	Load(projectRoot, file string) (*domain.Settings, error)
}
