package traversal

import "go.trai.ch/tilestream/internal/core/domain"

// executeEmptyTraversal checks, ignoring visibility, whether the nearest
// descendants with content below an empty tile are all loaded. Descendants
// that are not visible are requested and touched on the way, and referenced
// children of traversed empty tiles are fetched. The empty stack is reused by
// newer runs while a header is fetched, so errStale abandons the whole run.
func (r *run) executeEmptyTraversal(root *domain.Tile) (bool, error) {
	ts := r.e.ts
	stack := r.e.emptyStack
	stack.Reset()
	stack.Push(root)

	allLoaded := true
	for stack.Len() > 0 {
		tile, _ := stack.Pop()

		r.updateTile(tile)
		if !tile.IsVisibleAndInRequestVolume() {
			if err := r.load(tile); err != nil {
				return false, err
			}
			r.touch(tile)
		}

		// Stop at descendants with content.
		traverse := !tile.HasRenderContent() && r.canTraverse(tile, false, true)
		if !traverse && !tile.ContentAvailable() {
			allLoaded = false
		}
		if !traverse {
			continue
		}
		if !ts.MaterializedAll(tile) {
			if !r.materializeChildren(tile) {
				return false, errStale
			}
			if !ts.MaterializedAll(tile) {
				allLoaded = false
			}
		}
		for _, idx := range tile.Children {
			child := ts.Node(idx)
			stack.Delete(child)
			stack.Push(child)
		}
	}
	return allLoaded, nil
}
