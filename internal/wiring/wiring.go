// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/respec/internal/adapters/archive"
	_ "go.trai.ch/respec/internal/adapters/cas"
	_ "go.trai.ch/respec/internal/adapters/config"
	_ "go.trai.ch/respec/internal/adapters/logger"
	_ "go.trai.ch/respec/internal/adapters/workspace"
	// Register app nodes.
	_ "go.trai.ch/respec/internal/app"
)
