// Package app implements the application layer for tilestream.
package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/tilestream/internal/adapters/cache"
	"go.trai.ch/tilestream/internal/adapters/content"
	"go.trai.ch/tilestream/internal/adapters/report"
	"go.trai.ch/tilestream/internal/adapters/telemetry"
	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/tilestream/internal/engine/lod"
	"go.trai.ch/tilestream/internal/engine/traversal"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// nearPlane is the distance of the near culling plane in world units.
const nearPlane = 0.1

// FetcherFactory opens a header fetcher for a dataset format.
type FetcherFactory interface {
	HeaderFetcher(format domain.Format, timeout time.Duration) (ports.HeaderFetcher, error)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	fetchers     FetcherFactory
	engines      *traversal.Factory
	caches       cache.Factory
	queue        ports.RequestQueue
	content      ports.ContentLoader
	reports      report.Factory
	logger       ports.Logger
	metrics      ports.Metrics
	clock        clockwork.Clock
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	fetchers FetcherFactory,
	engines *traversal.Factory,
	caches cache.Factory,
	queue ports.RequestQueue,
	contentLoader ports.ContentLoader,
	reports report.Factory,
	log ports.Logger,
	metrics ports.Metrics,
) *App {
	return &App{
		configLoader: loader,
		fetchers:     fetchers,
		engines:      engines,
		caches:       caches,
		queue:        queue,
		content:      contentLoader,
		reports:      reports,
		logger:       log,
		metrics:      metrics,
		clock:        clockwork.NewRealClock(),
	}
}

// WithClock replaces the clock frame times are read from.
// This is primarily used for testing content expiry.
func (a *App) WithClock(c clockwork.Clock) *App {
	a.clock = c
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ConfigPath is a tilestream.yaml file or a directory to search upwards from.
	ConfigPath string
	// MaxFrames limits the number of configured frames that are played, 0 plays all.
	MaxFrames int
	// Detail lists the tile ids of every result set in the report.
	Detail bool
	// Verbose enables debug logging.
	Verbose bool
	// JSON switches the logger to JSON output.
	JSON bool
	// Report receives the frame report, stdout when nil.
	Report io.Writer
	// MetricsFile is written in the Prometheus text format after the run when set.
	MetricsFile string
}

type logSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

type textfileWriter interface {
	WriteTextfile(path string) error
}

// Run streams the configured dataset along the configured camera path.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if l, ok := a.logger.(logSettings); ok {
		l.SetVerbose(opts.Verbose)
		l.SetJSON(opts.JSON)
	}

	// 1. Load the configuration
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	runID := uuid.NewString()
	a.logger.Info("starting session",
		"run", runID, "source", cfg.Source.BasePath, "format", string(cfg.Source.Format), "frames", len(cfg.Frames))

	// 2. Route finished spans to the logger
	shutdown := telemetry.Setup(telemetry.NewLogBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	// 3. Materialize the root and build the engine
	s, err := a.openSession(ctx, cfg, opts)
	if err != nil {
		return err
	}

	// 4. Play the frames
	frames := cfg.Frames
	if opts.MaxFrames > 0 && opts.MaxFrames < len(frames) {
		frames = frames[:opts.MaxFrames]
	}
	for i, cam := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.step(ctx, uint64(i+1), cam); err != nil {
			return err
		}
	}

	// 5. Summarize
	summary := s.summary
	summary.RunID = runID
	summary.Source = cfg.Source.BasePath
	summary.Frames = len(frames)
	summary.Canceled = s.engine.CanceledFrames()
	s.engine.Mutate(func(ts *domain.Tileset) {
		summary.Tiles = ts.Len()
	})
	if err := s.renderer.Summary(&summary); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}

	if opts.MetricsFile != "" {
		w, ok := a.metrics.(textfileWriter)
		if !ok {
			a.logger.Warn("metrics backend cannot write a textfile", "path", opts.MetricsFile)
			return nil
		}
		if err := w.WriteTextfile(opts.MetricsFile); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", opts.MetricsFile)
		}
	}
	return nil
}

func (a *App) openSession(ctx context.Context, cfg *domain.Config, opts RunOptions) (*session, error) {
	fetcher, err := a.fetchers.HeaderFetcher(cfg.Source.Format, cfg.FetchTimeout)
	if err != nil {
		return nil, err
	}

	header, err := fetcher.FetchRoot(ctx, cfg.Source.BasePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHeaderFetchFailed.Error()), "source", cfg.Source.BasePath)
	}
	ts, err := domain.NewTileset(cfg.Source.BasePath, cfg.Source.Format, header)
	if err != nil {
		return nil, err
	}

	lru := a.caches.New(cfg.CacheCapacity)
	engine, err := a.engines.New(ts, fetcher, lru, cfg.Traversal)
	if err != nil {
		return nil, err
	}

	return &session{
		app:      a,
		cfg:      cfg,
		engine:   engine,
		cache:    lru,
		renderer: a.reports.New(opts.Report, opts.Detail),
	}, nil
}

// session holds the state of one Run.
type session struct {
	app      *App
	cfg      *domain.Config
	engine   *traversal.Engine
	cache    *cache.LRU
	renderer *report.Renderer
	summary  report.Summary
}

func (s *session) frameState(number uint64, cam domain.Camera) *domain.FrameState {
	viewer := s.cfg.Viewer
	return &domain.FrameState{
		Number:        number,
		Time:          s.app.clock.Now(),
		Camera:        cam,
		FieldOfViewY:  viewer.FieldOfViewY,
		ScreenHeight:  viewer.ScreenHeight,
		CullingVolume: lod.CullingVolume(cam, viewer.FieldOfViewY, viewer.AspectRatio(), nearPlane, viewer.Far),
	}
}

func (s *session) step(ctx context.Context, number uint64, cam domain.Camera) error {
	published, err := s.engine.Traverse(ctx, s.frameState(number, cam))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return errors.Join(domain.ErrTraversalFailed, err)
	}

	result := s.engine.Result()
	frame := &report.Frame{
		Number:    number,
		Status:    report.StatusReused,
		Selected:  result.SelectedIDs(),
		Requested: result.RequestedIDs(),
		Empty:     result.EmptyIDs(),
	}
	if published {
		frame.Status = report.StatusTraversed
		s.app.queue.Enqueue(result.Requested())
	}

	s.load(ctx, number, frame)

	s.summary.Loaded += frame.Loaded
	s.summary.Failed += frame.Failed
	s.summary.Bytes += frame.Bytes
	s.summary.Evicted += frame.Evicted

	if err := s.renderer.Frame(frame); err != nil {
		return zerr.Wrap(err, "failed to write report")
	}
	return nil
}

type loadResult struct {
	data []byte
	err  error
}

// load fetches the most urgent queued content concurrently and applies the
// outcome to the tree between traversals.
func (s *session) load(ctx context.Context, number uint64, frame *report.Frame) {
	batch := s.app.queue.Drain(s.cfg.RequestsPerFrame)

	var tiles []*domain.Tile
	s.engine.Mutate(func(_ *domain.Tileset) {
		for _, tile := range batch {
			if tile.HasUnloadedContent() || tile.ContentExpired() {
				tile.Content = domain.ContentLoading
				tiles = append(tiles, tile)
			}
		}
	})

	results := make([]loadResult, len(tiles))
	var g errgroup.Group
	g.SetLimit(s.cfg.ContentConcurrency)
	for i, tile := range tiles {
		g.Go(func() error {
			loadCtx := ctx
			if s.cfg.FetchTimeout > 0 {
				var cancel context.CancelFunc
				loadCtx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
				defer cancel()
			}
			data, err := s.app.content.LoadContent(loadCtx, s.cfg.Source.BasePath, tile)
			results[i] = loadResult{data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()

	log := s.app.logger
	s.engine.Mutate(func(_ *domain.Tileset) {
		for i, tile := range tiles {
			r := results[i]
			s.app.metrics.ContentLoaded(len(r.data), r.err)
			if r.err != nil {
				tile.Content = domain.ContentUnloaded
				frame.Failed++
				log.Warn("content load failed", "tile", tile.ID.String(), "error", r.err.Error())
				continue
			}
			if !tile.ExpireAt.IsZero() && !s.app.clock.Now().Before(tile.ExpireAt) {
				// A refreshed payload carries no expiry of its own.
				tile.ExpireAt = time.Time{}
			}
			tile.Content = domain.ContentAvailable
			s.cache.Add(tile)
			frame.Loaded++
			frame.Bytes += len(r.data)
			log.Debug("content loaded", "tile", tile.ID.String(), "bytes", len(r.data), "digest", content.Digest(r.data))
		}

		evicted := s.cache.Evict(number)
		for _, tile := range evicted {
			tile.Content = domain.ContentUnloaded
		}
		frame.Evicted = len(evicted)
	})
	if frame.Evicted > 0 {
		s.app.metrics.CacheEvicted(frame.Evicted)
		log.Debug("evicted tile content", "frame", number, "tiles", frame.Evicted)
	}
}
