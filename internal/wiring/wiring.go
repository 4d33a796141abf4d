// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/embark/internal/adapters/archive"
	_ "go.trai.ch/embark/internal/adapters/config"
	_ "go.trai.ch/embark/internal/adapters/download"
	_ "go.trai.ch/embark/internal/adapters/enginecache"
	_ "go.trai.ch/embark/internal/adapters/fs"
	_ "go.trai.ch/embark/internal/adapters/logger"
	_ "go.trai.ch/embark/internal/adapters/packaging"
	_ "go.trai.ch/embark/internal/adapters/shell"
	_ "go.trai.ch/embark/internal/adapters/telemetry"
	_ "go.trai.ch/embark/internal/adapters/toolchain"
	// Register app and engine nodes.
	_ "go.trai.ch/embark/internal/app"
	_ "go.trai.ch/embark/internal/engine/pipeline"
)
