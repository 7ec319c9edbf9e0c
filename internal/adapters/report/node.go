package report

import (
	"context"
	"io"
	"os"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the report renderer Graft node.
const NodeID graft.ID = "adapter.report"

// Factory opens renderers on a writer chosen at run time.
type Factory struct {
	Stdout io.Writer
}

// New creates a Renderer on w, or on stdout when w is nil.
func (f Factory) New(w io.Writer, detail bool) *Renderer {
	if w == nil {
		w = f.Stdout
	}
	return New(w, detail)
}

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return Factory{Stdout: os.Stdout}, nil
		},
	})
}
