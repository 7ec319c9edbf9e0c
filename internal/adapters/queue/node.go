package queue

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tilestream/internal/core/ports"
)

// NodeID is the unique identifier for the request queue Graft node.
const NodeID graft.ID = "adapter.queue"

func init() {
	graft.Register(graft.Node[ports.RequestQueue]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RequestQueue, error) {
			return New(), nil
		},
	})
}
