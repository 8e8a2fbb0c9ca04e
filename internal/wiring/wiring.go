// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/soldeps/internal/adapters/cas"
	_ "go.trai.ch/soldeps/internal/adapters/config"
	_ "go.trai.ch/soldeps/internal/adapters/fs"
	_ "go.trai.ch/soldeps/internal/adapters/logger"
	_ "go.trai.ch/soldeps/internal/adapters/metrics"
	_ "go.trai.ch/soldeps/internal/adapters/packages"
	_ "go.trai.ch/soldeps/internal/adapters/solc"
	_ "go.trai.ch/soldeps/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/soldeps/internal/app"
	_ "go.trai.ch/soldeps/internal/engine/scheduler"
	_ "go.trai.ch/soldeps/internal/engine/session"
)
