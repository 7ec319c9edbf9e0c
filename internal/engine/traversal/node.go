package traversal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tilestream/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tilestream/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tilestream/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/tilestream/internal/core/ports"
)

// NodeID is the unique identifier for the traversal engine factory Graft node.
const NodeID graft.ID = "engine.traversal"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(log, tracer, m), nil
		},
	})
}
