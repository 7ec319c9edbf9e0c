package fs

import (
	"context"

	"github.com/grindlemire/graft"
)

// ReaderNodeID is the unique identifier for the filesystem reader Graft node.
const ReaderNodeID graft.ID = "adapter.fs.reader"

func init() {
	graft.Register(graft.Node[*Reader]{
		ID:        ReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Reader, error) {
			return NewReader(), nil
		},
	})
}
