package ports

import (
	"context"

	"go.trai.ch/tilestream/internal/core/domain"
)

// ContentLoader fetches the payload of a tile. The payload is opaque.
//
//go:generate mockgen -source=content_loader.go -destination=mocks/mock_content_loader.go -package=mocks
type ContentLoader interface {
	// LoadContent fetches the content the tile's ContentURI names.
	LoadContent(ctx context.Context, basePath string, tile *domain.Tile) ([]byte, error)
}
