package app

import "go.trai.ch/soldeps/internal/core/ports"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App     *App
	Logger  ports.Logger
	Metrics ports.Metrics
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, metrics ports.Metrics) *Components {
	return &Components{
		App:     app,
		Logger:  logger,
		Metrics: metrics,
	}
}
