// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/tilestream/internal/adapters/cache"
	_ "go.trai.ch/tilestream/internal/adapters/config"
	_ "go.trai.ch/tilestream/internal/adapters/content"
	_ "go.trai.ch/tilestream/internal/adapters/fetch"
	_ "go.trai.ch/tilestream/internal/adapters/fs"
	_ "go.trai.ch/tilestream/internal/adapters/logger"
	_ "go.trai.ch/tilestream/internal/adapters/metrics"
	_ "go.trai.ch/tilestream/internal/adapters/queue"
	_ "go.trai.ch/tilestream/internal/adapters/report"
	_ "go.trai.ch/tilestream/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/tilestream/internal/app"
	_ "go.trai.ch/tilestream/internal/engine/traversal"
)
