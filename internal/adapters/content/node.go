package content

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tilestream/internal/adapters/fetch"
	"go.trai.ch/tilestream/internal/core/ports"
)

// NodeID is the unique identifier for the content loader Graft node.
const NodeID graft.ID = "adapter.content"

func init() {
	graft.Register(graft.Node[ports.ContentLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fetch.NodeID},
		Run: func(ctx context.Context) (ports.ContentLoader, error) {
			f, err := graft.Dep[*fetch.Factory](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(f.Resources()), nil
		},
	})
}
