// Package traversal implements the per-frame depth-first selection of tiles.
package traversal

import (
	"go.trai.ch/tilestream/internal/core/domain"
)

// Strategy captures the format-specific parts of a traversal.
type Strategy interface {
	// CompareForTraversal orders siblings for pushing: a negative result means a
	// is pushed before b, so the last element is popped first.
	CompareForTraversal(a, b *domain.Tile) int

	// UpdateVisibility computes the per-frame visibility of the tile.
	UpdateVisibility(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, maxSSE float64)

	// MeetsErrorEarly reports whether the tile is already accurate enough
	// through its parent and can be culled. It is asked after UpdateVisibility.
	MeetsErrorEarly(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, maxSSE float64) bool

	// ShouldRefine reports whether the tile's level of detail is insufficient.
	ShouldRefine(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, useParent bool, maxSSE float64) bool
}

// StrategyFor returns the strategy for a dataset format.
func StrategyFor(format domain.Format) (Strategy, error) {
	switch format {
	case domain.FormatTiles3D:
		return Tiles3D{}, nil
	case domain.FormatI3S:
		return Nodes{}, nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}
