package traversal

import (
	"slices"

	"go.trai.ch/tilestream/internal/core/domain"
)

// updateChildTiles materializes the children the tile references and updates
// every materialized child for the frame. It returns false when the run became
// stale while a header was fetched.
func (r *run) updateChildTiles(tile *domain.Tile) bool {
	if !r.materializeChildren(tile) {
		return false
	}
	ts := r.e.ts
	for _, idx := range tile.Children {
		r.updateTile(ts.Node(idx))
	}
	return true
}

// materializeChildren fetches and attaches the referenced children that are
// neither attached nor in flight. Fetches happen with the tree unlocked; it
// returns false when the run became stale meanwhile.
func (r *run) materializeChildren(tile *domain.Tile) bool {
	ts := r.e.ts
	for _, ref := range tile.ChildRefs {
		if _, ok := ts.Lookup(ref); ok || ts.IsPending(ref) {
			continue
		}

		ts.MarkPending(ref)
		header, err := r.e.fetchChild(r.ctx, ref)
		ts.ClearPending(ref)

		if err == nil {
			// Attach even when stale; later frames reuse the header.
			_, err = ts.Attach(tile, header)
		}
		if err != nil {
			r.e.metrics.HeaderFetchFailed()
			r.e.logger.Warn("child header unavailable",
				"tile", tile.ID.String(), "child", ref.String(), "error", err.Error())
		}

		if r.stale() {
			return false
		}
	}
	return true
}

// updateAndPushChildren pushes the visible children, nearest on top, and
// reports whether the tile may refine to them.
func (r *run) updateAndPushChildren(tile *domain.Tile) (bool, error) {
	ts := r.e.ts
	children := make([]*domain.Tile, 0, len(tile.Children))
	for _, idx := range tile.Children {
		children = append(children, ts.Node(idx))
	}
	slices.SortStableFunc(children, r.e.strategy.CompareForTraversal)

	// Replacement tiles with content wait for all children, so no holes appear.
	// Empty tiles are exempt and let children stream in.
	checkRefines := !r.opts.SkipLevelOfDetail &&
		tile.Refine == domain.RefineReplace &&
		tile.HasRenderContent()

	refines := true
	hasVisibleChild := false

	for _, child := range children {
		if child.IsVisibleAndInRequestVolume() {
			r.e.stack.Delete(child)
			r.e.stack.Push(child)
			hasVisibleChild = true
		} else if checkRefines || r.opts.LoadSiblings {
			// Invisible siblings are still needed before the parent can refine.
			if err := r.load(child); err != nil {
				return false, err
			}
			r.touch(child)
			// An external tileset has no content of its own to request, its
			// root header is what the parent waits for.
			if child.HasTilesetContent && !child.ContentExpired() && !r.materializeChildren(child) {
				return false, errStale
			}
		}

		if !checkRefines {
			continue
		}
		var childRefines bool
		switch {
		case !child.InRequestVolume:
			childRefines = false
		case !child.HasRenderContent():
			var err error
			if childRefines, err = r.executeEmptyTraversal(child); err != nil {
				return false, err
			}
		default:
			childRefines = child.ContentAvailable()
		}
		refines = refines && childRefines
	}

	if checkRefines && !ts.MaterializedAll(tile) {
		refines = false
	}
	if !hasVisibleChild {
		refines = false
	}
	return refines, nil
}
