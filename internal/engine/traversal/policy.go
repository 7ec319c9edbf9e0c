package traversal

import (
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/zerr"
)

// Priority returns the request priority of a tile; lower is more urgent.
// Additive tiles are ordered by distance. Replacement tiles map a higher
// screen-space error to a lower value, so the root ranks first.
func Priority(ts *domain.Tileset, tile *domain.Tile, opts domain.TraversalOptions) (float64, error) {
	switch tile.Refine {
	case domain.RefineAdd:
		return tile.DistanceToCamera, nil
	case domain.RefineReplace:
		if ts == nil || ts.Len() == 0 {
			return 0, zerr.With(domain.ErrInvariantViolation, "reason", "priority without root")
		}
		sse := tile.ScreenSpaceError
		parent := ts.Parent(tile)
		if parent != nil && (!opts.SkipLevelOfDetail || sse == 0 || parent.HasTilesetContent) {
			sse = parent.ScreenSpaceError
		}
		return ts.Root().ScreenSpaceError - sse, nil
	default:
		return 0, zerr.With(zerr.With(domain.ErrInvariantViolation, "reason", "unknown refinement"), "refine", string(tile.Refine))
	}
}

// ShouldLoad reports whether the tile's content must be requested.
func ShouldLoad(tile *domain.Tile) bool {
	return tile.HasUnloadedContent() || tile.ContentExpired()
}

// ShouldSelect decides whether a visited tile is a selection candidate.
// Empty and replacement tiles are candidates only where refinement stopped;
// additive tiles always are. Selection additionally requires available content.
func ShouldSelect(tile *domain.Tile, stoppedRefining bool) (bool, error) {
	if !tile.HasRenderContent() {
		return stoppedRefining, nil
	}
	switch tile.Refine {
	case domain.RefineAdd:
		return true, nil
	case domain.RefineReplace:
		return stoppedRefining, nil
	default:
		return false, zerr.With(zerr.With(domain.ErrInvariantViolation, "reason", "unknown refinement"), "refine", string(tile.Refine))
	}
}
