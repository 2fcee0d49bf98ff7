// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/modforge/modforge/internal/adapters/fs"
	_ "github.com/modforge/modforge/internal/adapters/logger"
	_ "github.com/modforge/modforge/internal/adapters/manifest"
	// Register app nodes.
	_ "github.com/modforge/modforge/internal/app"
)
