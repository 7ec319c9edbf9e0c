package traversal

import (
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
)

// Factory builds engines once a tileset's root is known.
type Factory struct {
	logger  ports.Logger
	tracer  ports.Tracer
	metrics ports.Metrics
}

// NewFactory creates a Factory sharing the given observability collaborators.
func NewFactory(logger ports.Logger, tracer ports.Tracer, metrics ports.Metrics) *Factory {
	return &Factory{logger: logger, tracer: tracer, metrics: metrics}
}

// New creates an engine for ts using the strategy of its format.
func (f *Factory) New(
	ts *domain.Tileset,
	fetcher ports.HeaderFetcher,
	cache ports.TileCache,
	opts domain.TraversalOptions,
) (*Engine, error) {
	strategy, err := StrategyFor(ts.Format())
	if err != nil {
		return nil, err
	}
	return New(ts, strategy, fetcher, cache, opts, f.logger, f.tracer, f.metrics)
}
