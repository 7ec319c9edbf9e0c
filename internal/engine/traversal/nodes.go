package traversal

import (
	"cmp"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/engine/lod"
)

// Nodes is the strategy for node-addressed (I3S) datasets, whose children are
// fetched one node document at a time.
type Nodes struct{}

// CompareForTraversal pushes the farthest sibling first.
func (Nodes) CompareForTraversal(a, b *domain.Tile) int {
	return cmp.Compare(b.DistanceToCamera, a.DistanceToCamera)
}

// UpdateVisibility uses the plain frustum and request-volume tests.
func (Nodes) UpdateVisibility(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, _ float64) {
	lod.UpdateVisibility(ts, tile, frame)
}

// MeetsErrorEarly is never true for node-addressed datasets.
func (Nodes) MeetsErrorEarly(*domain.Tileset, *domain.Tile, *domain.FrameState, float64) bool {
	return false
}

// ShouldRefine refines a node whose projected size exceeds its LOD threshold.
// Nodes without a threshold fall back to the screen-space error.
func (Nodes) ShouldRefine(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, useParent bool, maxSSE float64) bool {
	if tile.LODThreshold > 0 {
		return lod.ProjectedSize(tile, frame) > tile.LODThreshold
	}
	return lod.ScreenSpaceError(ts, tile, frame, useParent) > maxSSE
}
