package fetch

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/tilestream/internal/adapters/fs"
)

// NodeID is the unique identifier for the fetch Graft node.
const NodeID graft.ID = "adapter.fetch"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.ReaderNodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			files, err := graft.Dep[*fs.Reader](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(&Resources{
				HTTP:  NewHTTPReader(nil),
				Files: files,
			}, clockwork.NewRealClock()), nil
		},
	})
}
