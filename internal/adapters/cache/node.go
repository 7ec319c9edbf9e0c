package cache

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the cache factory Graft node.
const NodeID graft.ID = "adapter.cache"

// Factory creates one cache per session.
type Factory struct{}

// New creates an LRU with the given capacity.
func (Factory) New(capacity int) *LRU {
	return NewLRU(capacity)
}

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return Factory{}, nil
		},
	})
}
