package ports

import "go.trai.ch/tilestream/internal/core/domain"

// TileCache tracks tile recency for eviction.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type TileCache interface {
	// Touch marks the tile as recently used. It must tolerate tiles that were
	// already evicted or never loaded.
	Touch(tile *domain.Tile)
}
