package fetch

import (
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory creates header fetchers sharing one resource reader.
type Factory struct {
	resources ports.ResourceReader
	clock     clockwork.Clock
}

// NewFactory creates a Factory reading through resources.
func NewFactory(resources ports.ResourceReader, clock clockwork.Clock) *Factory {
	return &Factory{resources: resources, clock: clock}
}

// Resources returns the reader shared by every fetcher, for content loading.
func (f *Factory) Resources() ports.ResourceReader {
	return f.resources
}

// HeaderFetcher returns the fetcher for format.
func (f *Factory) HeaderFetcher(format domain.Format, timeout time.Duration) (ports.HeaderFetcher, error) {
	switch format {
	case domain.FormatTiles3D:
		return NewTiles3DFetcher(f.resources, timeout, f.clock), nil
	case domain.FormatI3S:
		return NewI3SFetcher(f.resources, timeout), nil
	default:
		return nil, zerr.With(domain.ErrUnsupportedFormat, "format", string(format))
	}
}
