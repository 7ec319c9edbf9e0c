package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tilestream/internal/adapters/cache"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/content" //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/fetch"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/queue"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/adapters/report"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/tilestream/internal/engine/traversal"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fetch.NodeID,
			traversal.NodeID,
			cache.NodeID,
			queue.NodeID,
			content.NodeID,
			report.NodeID,
			logger.NodeID,
			metrics.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fetchers, err := graft.Dep[*fetch.Factory](ctx)
	if err != nil {
		return nil, err
	}

	engines, err := graft.Dep[*traversal.Factory](ctx)
	if err != nil {
		return nil, err
	}

	caches, err := graft.Dep[cache.Factory](ctx)
	if err != nil {
		return nil, err
	}

	q, err := graft.Dep[ports.RequestQueue](ctx)
	if err != nil {
		return nil, err
	}

	contentLoader, err := graft.Dep[ports.ContentLoader](ctx)
	if err != nil {
		return nil, err
	}

	reports, err := graft.Dep[report.Factory](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fetchers, engines, caches, q, contentLoader, reports, log, m), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
