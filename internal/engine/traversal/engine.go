package traversal

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/tilestream/internal/core/domain"
	"go.trai.ch/tilestream/internal/core/ports"
	"go.trai.ch/zerr"
)

// Engine selects the tiles to render and request for each frame.
//
// The tile tree is guarded by mu for the whole traversal except while a child
// header is being fetched. A traversal started for a newer frame makes every
// older in-flight traversal stale; stale traversals are abandoned at their next
// check and leave the published result untouched.
type Engine struct {
	ts       *domain.Tileset
	strategy Strategy
	fetcher  ports.HeaderFetcher
	cache    ports.TileCache
	logger   ports.Logger
	tracer   ports.Tracer
	metrics  ports.Metrics

	generation atomic.Uint64

	mu         sync.Mutex
	stack      *Stack[*domain.Tile]
	emptyStack *Stack[*domain.Tile]

	pubMu    sync.RWMutex
	opts     domain.TraversalOptions
	result   *domain.TraversalResult
	canceled domain.FrameHistory
}

// New creates an Engine for the given tileset.
func New(
	ts *domain.Tileset,
	strategy Strategy,
	fetcher ports.HeaderFetcher,
	cache ports.TileCache,
	opts domain.TraversalOptions,
	logger ports.Logger,
	tracer ports.Tracer,
	metrics ports.Metrics,
) (*Engine, error) {
	if opts.MaximumScreenSpaceError <= 0 {
		return nil, zerr.With(domain.ErrInvalidScreenSpaceError, "value", opts.MaximumScreenSpaceError)
	}
	return &Engine{
		ts:         ts,
		strategy:   strategy,
		fetcher:    fetcher,
		cache:      cache,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
		stack:      NewStack[*domain.Tile](),
		emptyStack: NewStack[*domain.Tile](),
		opts:       opts,
		result:     domain.NewTraversalResult(0),
	}, nil
}

// Options returns the current traversal options.
func (e *Engine) Options() domain.TraversalOptions {
	e.pubMu.RLock()
	defer e.pubMu.RUnlock()
	return e.opts
}

// SetOptions replaces the traversal options. They apply from the next traversal.
func (e *Engine) SetOptions(opts domain.TraversalOptions) error {
	if opts.MaximumScreenSpaceError <= 0 {
		return zerr.With(domain.ErrInvalidScreenSpaceError, "value", opts.MaximumScreenSpaceError)
	}
	e.pubMu.Lock()
	defer e.pubMu.Unlock()
	e.opts = opts
	return nil
}

// Result returns the result of the most recent completed traversal.
func (e *Engine) Result() *domain.TraversalResult {
	e.pubMu.RLock()
	defer e.pubMu.RUnlock()
	return e.result
}

// CanceledFrames returns the most recently abandoned frames, oldest first.
func (e *Engine) CanceledFrames() []uint64 {
	e.pubMu.RLock()
	defer e.pubMu.RUnlock()
	return e.canceled.Frames()
}

// Mutate runs fn with exclusive access to the tile tree, e.g. to apply
// content state changes between traversals.
func (e *Engine) Mutate(fn func(ts *domain.Tileset)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ts)
}

// Traverse runs the traversal for frame. It returns true when a new result was
// published, and false when the root is invisible, already accurate enough, or
// the frame was superseded by a newer one; the previous result then stays in
// effect. The only errors are invariant violations and context cancellation.
func (e *Engine) Traverse(ctx context.Context, frame *domain.FrameState) (bool, error) {
	e.generation.Store(frame.Number)

	ctx, span := e.tracer.Start(ctx, "traverse", ports.WithAttribute("frame", frame.Number))
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.newRun(ctx, frame)
	if r.stale() {
		r.abandon()
		return false, nil
	}

	start := time.Now()
	root := e.ts.Root()
	r.updateTile(root)

	if !root.IsVisibleAndInRequestVolume() {
		e.skip(span, frame, "root not visible")
		return false, nil
	}
	if !r.canTraverse(root, true, false) {
		e.skip(span, frame, "root error within threshold")
		return false, nil
	}

	completed, err := r.execute(root)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	if !completed {
		span.SetAttribute("canceled", true)
		return false, nil
	}

	e.stack.Trim(e.stack.MaxLength())
	e.emptyStack.Trim(e.emptyStack.MaxLength())
	e.publish(r.result)

	selected, requested, empty := len(r.result.SelectedTiles), len(r.result.RequestedTiles), len(r.result.EmptyTiles)
	e.metrics.TraversalCompleted(time.Since(start), selected, requested, empty)
	span.SetAttribute("selected", selected)
	span.SetAttribute("requested", requested)
	span.SetAttribute("empty", empty)
	e.logger.Debug("traversal completed",
		"frame", frame.Number, "selected", selected, "requested", requested, "empty", empty)

	return true, nil
}

func (e *Engine) newRun(ctx context.Context, frame *domain.FrameState) *run {
	return &run{
		e:      e,
		ctx:    ctx,
		frame:  frame,
		opts:   e.Options(),
		result: domain.NewTraversalResult(frame.Number),
	}
}

func (e *Engine) skip(span ports.Span, frame *domain.FrameState, reason string) {
	e.metrics.TraversalSkipped()
	span.SetAttribute("skipped", reason)
	e.logger.Debug("traversal skipped", "frame", frame.Number, "reason", reason)
}

func (e *Engine) publish(result *domain.TraversalResult) {
	e.pubMu.Lock()
	defer e.pubMu.Unlock()
	e.result = result
}

func (e *Engine) recordCanceled(frame uint64) {
	e.pubMu.Lock()
	e.canceled.Push(frame)
	e.pubMu.Unlock()

	e.metrics.FrameCanceled()
	e.logger.Debug("traversal abandoned for newer frame", "frame", frame, "current", e.generation.Load())
}

// fetchChild fetches a child header with the tree unlocked.
func (e *Engine) fetchChild(ctx context.Context, childID domain.TileID) (*domain.TileHeader, error) {
	e.mu.Unlock()
	defer e.mu.Lock()

	header, err := e.fetcher.FetchChildHeader(ctx, e.ts.BasePath(), childID)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHeaderFetchFailed.Error()), "child", childID.String())
	}
	if header == nil || header.ID != childID.String() {
		return nil, zerr.With(domain.ErrHeaderIDMismatch, "child", childID.String())
	}
	return header, nil
}
