// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/bake/internal/adapters/cas"
	_ "go.trai.ch/bake/internal/adapters/compdb"
	_ "go.trai.ch/bake/internal/adapters/config"
	_ "go.trai.ch/bake/internal/adapters/detector"
	_ "go.trai.ch/bake/internal/adapters/fs"
	_ "go.trai.ch/bake/internal/adapters/linear"
	_ "go.trai.ch/bake/internal/adapters/logger"
	_ "go.trai.ch/bake/internal/adapters/projgen"
	_ "go.trai.ch/bake/internal/adapters/shader"
	_ "go.trai.ch/bake/internal/adapters/shell"
	_ "go.trai.ch/bake/internal/adapters/telemetry"
	_ "go.trai.ch/bake/internal/adapters/toolchain"
	_ "go.trai.ch/bake/internal/adapters/tui"
	_ "go.trai.ch/bake/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/bake/internal/app"
	_ "go.trai.ch/bake/internal/engine/orchestrator"
	_ "go.trai.ch/bake/internal/engine/runner"
	_ "go.trai.ch/bake/internal/engine/shaders"
)
