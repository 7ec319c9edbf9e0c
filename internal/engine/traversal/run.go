package traversal

import (
	"context"
	"errors"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/engine/lod"
	"go.trai.ch/zerr"
)

// errStale stops a run that a newer frame superseded while a header was fetched.
var errStale = zerr.New("traversal superseded by a newer frame")

// run is the state of one Traverse call. Its result sets are only published
// when the run completes.
type run struct {
	e      *Engine
	ctx    context.Context
	frame  *domain.FrameState
	opts   domain.TraversalOptions
	result *domain.TraversalResult
}

// stale reports whether a newer frame has started since this run began.
func (r *run) stale() bool {
	return r.e.generation.Load() != r.frame.Number
}

func (r *run) abandon() {
	r.e.recordCanceled(r.frame.Number)
}

// execute is the depth-first traversal of all visible tiles. A replacement
// tile does not refine until its children can be rendered in its place,
// unless level-of-detail skipping is enabled.
func (r *run) execute(root *domain.Tile) (bool, error) {
	ts := r.e.ts
	stack := r.e.stack
	stack.Reset()
	stack.Push(root)

	for stack.Len() > 0 {
		if err := r.ctx.Err(); err != nil {
			return false, err
		}
		if r.stale() {
			r.abandon()
			return false, nil
		}

		tile, _ := stack.Pop()
		parent := ts.Parent(tile)
		parentRefines := parent == nil || parent.RefinesIn(r.frame.Number)

		refines := false
		if r.canTraverse(tile, false, false) {
			if !r.updateChildTiles(tile) {
				r.abandon()
				return false, nil
			}
			var err error
			if refines, err = r.updateAndPushChildren(tile); err != nil {
				if errors.Is(err, errStale) {
					r.abandon()
					return false, nil
				}
				return false, err
			}
		}

		stoppedRefining := !refines && parentRefines
		if err := r.visit(tile, stoppedRefining); err != nil {
			return false, err
		}

		r.touch(tile)
		tile.Refines = refines && parentRefines
		tile.RefinesFrame = r.frame.Number
	}
	return true, nil
}

// visit applies the load and selection policy to a popped tile.
func (r *run) visit(tile *domain.Tile, stoppedRefining bool) error {
	if !tile.HasRenderContent() {
		r.result.EmptyTiles[tile.ID] = tile
	}
	if err := r.load(tile); err != nil {
		return err
	}
	selectable, err := ShouldSelect(tile, stoppedRefining)
	if err != nil {
		return err
	}
	if selectable {
		r.selectTile(tile)
	}
	return nil
}

func (r *run) canTraverse(tile *domain.Tile, useParentMetric, ignoreVisibility bool) bool {
	if !ignoreVisibility && !tile.IsVisibleAndInRequestVolume() {
		return false
	}
	if !tile.HasChildren() {
		return false
	}
	// An external tileset is always entered unless it expired.
	if tile.HasTilesetContent {
		return !tile.ContentExpired()
	}
	return r.e.strategy.ShouldRefine(r.e.ts, tile, r.frame, useParentMetric, r.opts.MaximumScreenSpaceError)
}

// updateTile computes the tile's visibility for the frame and culls it when its
// parent is already accurate enough at its distance.
func (r *run) updateTile(tile *domain.Tile) {
	s, maxSSE := r.e.strategy, r.opts.MaximumScreenSpaceError
	s.UpdateVisibility(r.e.ts, tile, r.frame, maxSSE)
	if tile.Visible && s.MeetsErrorEarly(r.e.ts, tile, r.frame, maxSSE) {
		tile.Visible = false
	}
	lod.UpdateExpiration(tile, r.frame)
}

func (r *run) load(tile *domain.Tile) error {
	if !ShouldLoad(tile) {
		return nil
	}
	priority, err := Priority(r.e.ts, tile, r.opts)
	if err != nil {
		return err
	}
	tile.RequestedFrame = r.frame.Number
	tile.Priority = priority
	r.result.RequestedTiles[tile.ID] = tile
	return nil
}

func (r *run) selectTile(tile *domain.Tile) {
	if !tile.ContentAvailable() {
		return
	}
	tile.SelectedFrame = r.frame.Number
	r.result.SelectedTiles[tile.ID] = tile
}

func (r *run) touch(tile *domain.Tile) {
	r.e.cache.Touch(tile)
	tile.TouchedFrame = r.frame.Number
}
