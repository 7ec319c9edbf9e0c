package traversal

import (
	"cmp"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/engine/lod"
)

// Tiles3D is the strategy for 3D Tiles datasets.
type Tiles3D struct{}

// CompareForTraversal pushes the farthest sibling first. Siblings the camera is
// inside of are ordered by the depth of their centers.
func (Tiles3D) CompareForTraversal(a, b *domain.Tile) int {
	if a.DistanceToCamera == 0 && b.DistanceToCamera == 0 {
		return cmp.Compare(b.CenterZDepth, a.CenterZDepth)
	}
	return cmp.Compare(b.DistanceToCamera, a.DistanceToCamera)
}

// UpdateVisibility refines the plain frustum test. An external tileset tile takes
// the visibility of its root, and a replacement tile whose children lie within
// it is culled when none of them is visible.
func (s Tiles3D) UpdateVisibility(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, maxSSE float64) {
	lod.UpdateVisibility(ts, tile, frame)
	if !tile.IsVisibleAndInRequestVolume() {
		return
	}

	hasChildren := len(tile.Children) > 0
	if tile.HasTilesetContent && hasChildren {
		first := ts.Node(tile.Children[0])
		s.UpdateVisibility(ts, first, frame, maxSSE)
		tile.Visible = first.Visible
		return
	}

	if tile.Refine == domain.RefineReplace && tile.ChildrenWithinParent && hasChildren {
		if !anyChildVisible(ts, tile, frame) {
			tile.Visible = false
		}
	}
}

// MeetsErrorEarly applies to children of additive, non-external parents: the
// parent's error measured at the child's distance. An external tileset tile
// takes the visibility of its root instead.
func (s Tiles3D) MeetsErrorEarly(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, maxSSE float64) bool {
	if tile.HasTilesetContent {
		return false
	}
	parent := ts.Parent(tile)
	if parent == nil || parent.HasTilesetContent || parent.Refine != domain.RefineAdd {
		return false
	}
	return !s.ShouldRefine(ts, tile, frame, true, maxSSE)
}

// ShouldRefine compares the screen-space error with the threshold.
func (Tiles3D) ShouldRefine(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState, useParent bool, maxSSE float64) bool {
	return lod.ScreenSpaceError(ts, tile, frame, useParent) > maxSSE
}

func anyChildVisible(ts *domain.Tileset, tile *domain.Tile, frame *domain.FrameState) bool {
	visible := false
	for _, idx := range tile.Children {
		child := ts.Node(idx)
		lod.UpdateVisibility(ts, child, frame)
		visible = visible || child.IsVisibleAndInRequestVolume()
	}
	return visible
}
