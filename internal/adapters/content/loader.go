// Package content fetches tile payloads.
package content

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentLoader = (*Loader)(nil)

// Loader reads the resource a tile's ContentURI names.
type Loader struct {
	reader ports.ResourceReader
}

// NewLoader creates a Loader reading through reader.
func NewLoader(reader ports.ResourceReader) *Loader {
	return &Loader{reader: reader}
}

// LoadContent fetches the tile's payload.
func (l *Loader) LoadContent(ctx context.Context, basePath string, tile *domain.Tile) ([]byte, error) {
	if tile.ContentURI == "" {
		return nil, zerr.With(domain.ErrContentFetchFailed, "tile", tile.ID.String())
	}

	data, err := l.reader.Read(ctx, basePath, tile.ContentURI)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrContentFetchFailed.Error()), "tile", tile.ID.String())
	}
	return data, nil
}

// Digest returns the hex XXHash of a payload.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
