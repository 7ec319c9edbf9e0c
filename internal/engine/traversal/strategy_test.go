package traversal_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/engine/traversal"
)

func TestStrategyFor(t *testing.T) {
	s, err := traversal.StrategyFor(domain.FormatTiles3D)
	require.NoError(t, err)
	assert.IsType(t, traversal.Tiles3D{}, s)

	s, err = traversal.StrategyFor(domain.FormatI3S)
	require.NoError(t, err)
	assert.IsType(t, traversal.Nodes{}, s)

	_, err = traversal.StrategyFor("kml")
	assert.ErrorContains(t, err, domain.ErrUnsupportedFormat.Error())
}

func TestTiles3D_CompareForTraversal(t *testing.T) {
	near := &domain.Tile{ID: domain.NewTileID("near"), DistanceToCamera: 5}
	far := &domain.Tile{ID: domain.NewTileID("far"), DistanceToCamera: 10}

	tiles := []*domain.Tile{near, far}
	slices.SortStableFunc(tiles, traversal.Tiles3D{}.CompareForTraversal)
	assert.Equal(t, []*domain.Tile{far, near}, tiles, "farthest is pushed first")

	shallow := &domain.Tile{ID: domain.NewTileID("shallow"), CenterZDepth: 1}
	deep := &domain.Tile{ID: domain.NewTileID("deep"), CenterZDepth: 3}

	tiles = []*domain.Tile{shallow, deep}
	slices.SortStableFunc(tiles, traversal.Tiles3D{}.CompareForTraversal)
	assert.Equal(t, []*domain.Tile{deep, shallow}, tiles, "inside both, deeper center is pushed first")

	tiles = []*domain.Tile{shallow, deep}
	slices.SortStableFunc(tiles, traversal.Nodes{}.CompareForTraversal)
	assert.Equal(t, []*domain.Tile{shallow, deep}, tiles, "node ordering ignores depth")
}

func TestTiles3D_MeetsErrorEarlyCullsAdditiveChildren(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Refine:         domain.RefineAdd,
		Children: []*domain.TileHeader{
			{ID: "child", GeometricError: 1, BoundingVolume: sphere(0, 0, 0, 1)},
		},
	})
	child := mustLookup(t, ts, "child")
	s := traversal.Tiles3D{}

	// The parent's error projects to 2.5 pixels at 1999 and to 1 pixel at 4999.
	near := frameAt(1, 2000)
	s.UpdateVisibility(ts, child, near, 2)
	assert.False(t, s.MeetsErrorEarly(ts, child, near, 2))

	far := frameAt(2, 5000)
	s.UpdateVisibility(ts, child, far, 2)
	assert.True(t, child.Visible, "visibility alone does not apply the parent's error")
	assert.True(t, s.MeetsErrorEarly(ts, child, far, 2))

	assert.False(t, s.MeetsErrorEarly(ts, ts.Root(), far, 2), "root has no parent")
}

func TestTiles3D_MeetsErrorEarlySkipsExternalTilesets(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:             "root",
		GeometricError: 100,
		BoundingVolume: sphere(0, 0, 0, 10),
		Refine:         domain.RefineAdd,
		Children: []*domain.TileHeader{
			{ID: "external", GeometricError: 1, BoundingVolume: sphere(0, 0, 0, 1), HasTilesetContent: true},
		},
	})
	external := mustLookup(t, ts, "external")
	far := frameAt(1, 5000)
	s := traversal.Tiles3D{}

	s.UpdateVisibility(ts, external, far, 2)

	assert.False(t, s.MeetsErrorEarly(ts, external, far, 2))
}

func TestTiles3D_ExternalTilesetUsesRootVisibility(t *testing.T) {
	ts := newTileset(t, &domain.TileHeader{
		ID:                "external",
		GeometricError:    100,
		BoundingVolume:    sphere(0, 0, 0, 100),
		HasTilesetContent: true,
		Children: []*domain.TileHeader{
			{ID: "external/root", GeometricError: 50, BoundingVolume: sphere(50, 0, 0, 5)},
		},
	})
	frame := frameAt(1, 150)
	frame.CullingVolume = []domain.Plane{{Normal: domain.Vec3{X: -1}, Distance: 10}}

	traversal.Tiles3D{}.UpdateVisibility(ts, ts.Root(), frame, 2)

	assert.False(t, mustLookup(t, ts, "external/root").Visible)
	assert.False(t, ts.Root().Visible)
}

func TestTiles3D_ChildrenWithinParentCulling(t *testing.T) {
	header := &domain.TileHeader{
		ID:                   "root",
		GeometricError:       100,
		BoundingVolume:       sphere(0, 0, 0, 100),
		ChildrenWithinParent: true,
		Children: []*domain.TileHeader{
			{ID: "a", GeometricError: 10, BoundingVolume: sphere(50, 0, 0, 5)},
			{ID: "b", GeometricError: 10, BoundingVolume: sphere(70, 0, 0, 5)},
		},
	}

	t.Run("no child visible", func(t *testing.T) {
		ts := newTileset(t, header)
		frame := frameAt(1, 150)
		frame.CullingVolume = []domain.Plane{{Normal: domain.Vec3{X: -1}, Distance: 10}}

		traversal.Tiles3D{}.UpdateVisibility(ts, ts.Root(), frame, 2)

		assert.False(t, ts.Root().Visible)
	})

	t.Run("one child visible", func(t *testing.T) {
		ts := newTileset(t, header)
		frame := frameAt(1, 150)
		frame.CullingVolume = []domain.Plane{{Normal: domain.Vec3{X: -1}, Distance: 55}}

		traversal.Tiles3D{}.UpdateVisibility(ts, ts.Root(), frame, 2)

		assert.True(t, ts.Root().Visible)
		assert.True(t, mustLookup(t, ts, "a").Visible)
		assert.False(t, mustLookup(t, ts, "b").Visible)
	})
}

func TestNodes_ShouldRefine(t *testing.T) {
	ts, err := domain.NewTileset("mem://i3s", domain.FormatI3S, &domain.TileHeader{
		ID:             "0",
		GeometricError: 1,
		BoundingVolume: sphere(0, 0, 0, 10),
	})
	require.NoError(t, err)
	node := ts.Root()
	frame := frameAt(1, 100)
	traversal.Nodes{}.UpdateVisibility(ts, node, frame, 2)

	// The node covers 10 pixels on screen.
	node.LODThreshold = 5
	assert.True(t, traversal.Nodes{}.ShouldRefine(ts, node, frame, false, 2))

	node.LODThreshold = 20
	assert.False(t, traversal.Nodes{}.ShouldRefine(ts, node, frame, false, 2))

	// Without a threshold the screen-space error applies, under a pixel at distance 90.
	node.LODThreshold = 0
	assert.False(t, traversal.Nodes{}.ShouldRefine(ts, node, frame, false, 2))
	assert.False(t, traversal.Nodes{}.MeetsErrorEarly(ts, node, frame, 2))
}
