package traversal_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/tilestream/internal/core/ports/mocks"
	"go.trai.ch/tilestream/internal/engine/traversal"
	"go.uber.org/mock/gomock"
)

func sphere(x, y, z, r float64) domain.Sphere {
	return domain.NewSphere(domain.Vec3{X: x, Y: y, Z: z}, r)
}

func newTileset(t *testing.T, root *domain.TileHeader) *domain.Tileset {
	t.Helper()
	ts, err := domain.NewTileset("mem://tiles", domain.FormatTiles3D, root)
	require.NoError(t, err)
	return ts
}

func mustLookup(t *testing.T, ts *domain.Tileset, id string) *domain.Tile {
	t.Helper()
	tile, ok := ts.Lookup(domain.NewTileID(id))
	require.True(t, ok, "tile %q not materialized", id)
	return tile
}

// setAvailable marks the content of the named tiles as loaded.
func setAvailable(t *testing.T, ts *domain.Tileset, ids ...string) {
	t.Helper()
	for _, id := range ids {
		mustLookup(t, ts, id).Content = domain.ContentAvailable
	}
}

// frameAt looks down the Z axis from height z with a 90 degree field of view
// and a 100 pixel screen, so a geometric error of e at distance d projects to
// 50*e/d pixels.
func frameAt(number uint64, z float64) *domain.FrameState {
	return &domain.FrameState{
		Number:       number,
		Time:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Camera:       domain.Camera{Position: domain.Vec3{Z: z}, Direction: domain.Vec3{Z: -1}},
		FieldOfViewY: math.Pi / 2,
		ScreenHeight: 100,
	}
}

// recordingCache counts touches per tile id.
type recordingCache struct {
	touched map[string]int
}

func (c *recordingCache) Touch(tile *domain.Tile) {
	c.touched[tile.ID.String()]++
}

type engineTestMocks struct {
	fetcher *mocks.MockHeaderFetcher
	cache   *recordingCache
	logger  *mocks.MockLogger
	tracer  *mocks.MockTracer
	metrics *mocks.MockMetrics
}

// setupEngineTest creates an engine over ts with permissive observability mocks.
func setupEngineTest(t *testing.T, ts *domain.Tileset, opts domain.TraversalOptions) (*traversal.Engine, engineTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := engineTestMocks{
		fetcher: mocks.NewMockHeaderFetcher(ctrl),
		cache:   &recordingCache{touched: make(map[string]int)},
		logger:  mocks.NewMockLogger(ctrl),
		tracer:  mocks.NewMockTracer(ctrl),
		metrics: mocks.NewMockMetrics(ctrl),
	}

	mockSpan := mocks.NewMockSpan(ctrl)
	mockSpan.EXPECT().End().AnyTimes()
	mockSpan.EXPECT().RecordError(gomock.Any()).AnyTimes()
	mockSpan.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, mockSpan
		},
	).AnyTimes()

	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	m.metrics.EXPECT().TraversalCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.metrics.EXPECT().TraversalSkipped().AnyTimes()
	m.metrics.EXPECT().FrameCanceled().AnyTimes()
	m.metrics.EXPECT().HeaderFetchFailed().AnyTimes()

	e, err := traversal.New(ts, traversal.Tiles3D{}, m.fetcher, m.cache, opts, m.logger, m.tracer, m.metrics)
	require.NoError(t, err)
	return e, m
}
