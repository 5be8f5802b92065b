package mosaic

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"
)

// Options fixes the compositor's geometry and pacing at construction.
type Options struct {
	Width, Height    int
	UpdateInterval   time.Duration // minimum time between accepted ticks
	SquaresPerUpdate int
	MinSize, MaxSize int // inclusive range of the per-pass square edge
	Alignment        int // origin grid unit in pixels
	Seed             int64
}

// DefaultOptions returns the standard pacing for a width x height canvas.
func DefaultOptions(width, height int) Options {
	return Options{
		Width:            width,
		Height:           height,
		UpdateInterval:   200 * time.Millisecond,
		SquaresPerUpdate: 20,
		MinSize:          6,
		MaxSize:          128,
		Alignment:        32,
		Seed:             42,
	}
}

// Validate reports options that cannot produce a usable canvas.
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: canvas %dx%d", ErrInvalidOptions, o.Width, o.Height)
	case o.MinSize < 1 || o.MaxSize < o.MinSize:
		return fmt.Errorf("%w: square range [%d, %d]", ErrInvalidOptions, o.MinSize, o.MaxSize)
	case o.Alignment < 1:
		return fmt.Errorf("%w: alignment %d", ErrInvalidOptions, o.Alignment)
	case o.SquaresPerUpdate < 0:
		return fmt.Errorf("%w: squares per update %d", ErrInvalidOptions, o.SquaresPerUpdate)
	case o.UpdateInterval < 0:
		return fmt.Errorf("%w: update interval %v", ErrInvalidOptions, o.UpdateInterval)
	}
	return nil
}

// Compositor progressively patches a persistent canvas with squares sampled
// from the newest available frame.
//
// Everything except Stats must be called from a single goroutine (the
// render loop). The canvas is never replaced, only patched.
type Compositor struct {
	opts     Options
	src      FrameSource
	recycler Recycler
	logger   *slog.Logger

	canvas []byte
	stride int
	rng    *rand.Rand

	state      State
	clock      time.Duration // accumulated by Advance
	lastUpdate time.Duration
	everTicked bool
	dirty      bool

	ticks           atomic.Uint64
	acceptedTicks   atomic.Uint64
	updates         atomic.Uint64
	squaresCopied   atomic.Uint64
	squaresSkipped  atomic.Uint64
	malformedFrames atomic.Uint64
	emptyTakes      atomic.Uint64
	lastSequence    atomic.Uint64
}

// CompositorOption customises a Compositor.
type CompositorOption func(*Compositor)

// WithRecycler hands every consumed or rejected frame to r.
func WithRecycler(r Recycler) CompositorOption {
	return func(c *Compositor) { c.recycler = r }
}

// NewCompositor returns a compositor reading frames from src. The canvas
// starts zero-filled and the state starts Idle.
func NewCompositor(src FrameSource, opts Options, logger *slog.Logger, extra ...CompositorOption) (*Compositor, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil frame source", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	c := &Compositor{
		opts:   opts,
		src:    src,
		logger: logger,
		canvas: make([]byte, FrameSize(opts.Width, opts.Height)),
		stride: opts.Width * BytesPerPixel,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		state:  StateIdle,
	}
	for _, o := range extra {
		o(c)
	}
	return c, nil
}

// Options returns the construction options.
func (c *Compositor) Options() Options { return c.opts }

// State reports Updating when the most recent tick passed the interval gate
// and Idle otherwise.
func (c *Compositor) State() State { return c.state }

// Tick runs one render-loop step at time now, measured from whatever origin
// the caller uses consistently. The first tick always passes the gate;
// later ticks pass once UpdateInterval has elapsed since the last accepted
// one. A malformed frame is discarded and returned as an error wrapping
// ErrMalformedFrame; the canvas is untouched in that case.
func (c *Compositor) Tick(now time.Duration) (TickResult, error) {
	c.ticks.Add(1)
	if c.everTicked && now-c.lastUpdate < c.opts.UpdateInterval {
		c.state = StateIdle
		return TickResult{}, nil
	}
	c.everTicked = true
	c.lastUpdate = now
	c.state = StateUpdating
	c.acceptedTicks.Add(1)

	res := TickResult{Accepted: true}
	frame, ok := c.src.Take()
	if !ok {
		c.emptyTakes.Add(1)
		return res, nil
	}
	defer c.release(frame)

	if err := frame.Validate(c.opts.Width, c.opts.Height); err != nil {
		c.malformedFrames.Add(1)
		if c.logger != nil {
			c.logger.Warn("mosaic.frame_rejected", "error", err, "sequence", frame.Sequence)
		}
		return res, err
	}

	size, regions, skipped := planSquares(c.rng, c.opts)
	for _, r := range regions {
		copyBlock(c.canvas, frame.Pix, c.stride, r)
	}
	res.Size = size
	res.Regions = regions
	res.Skipped = skipped
	res.Sequence = frame.Sequence
	res.Updated = len(regions) > 0

	c.squaresCopied.Add(uint64(len(regions)))
	c.squaresSkipped.Add(uint64(skipped))
	c.lastSequence.Store(frame.Sequence)
	if res.Updated {
		c.dirty = true
		c.updates.Add(1)
	}
	if c.logger != nil {
		c.logger.Debug("mosaic.update",
			"sequence", frame.Sequence,
			"size", size,
			"squares", len(regions),
			"skipped", skipped,
		)
	}
	return res, nil
}

// Advance moves the internal clock by elapsed (the time since the previous
// render tick) and ticks at the new time. Negative deltas count as zero.
func (c *Compositor) Advance(elapsed time.Duration) (TickResult, error) {
	if elapsed > 0 {
		c.clock += elapsed
	}
	return c.Tick(c.clock)
}

// Canvas returns the live canvas buffer. Callers must treat it as read-only.
func (c *Compositor) Canvas() []byte { return c.canvas }

// Snapshot returns the canvas and whether it changed since the previous
// Snapshot call, then clears the changed flag. Presenters use the flag to
// skip redundant uploads.
func (c *Compositor) Snapshot() (pix []byte, changed bool) {
	changed = c.dirty
	c.dirty = false
	return c.canvas, changed
}

// Stats returns activity counters. Safe to call from any goroutine.
func (c *Compositor) Stats() CompositorStats {
	return CompositorStats{
		Ticks:           c.ticks.Load(),
		AcceptedTicks:   c.acceptedTicks.Load(),
		Updates:         c.updates.Load(),
		SquaresCopied:   c.squaresCopied.Load(),
		SquaresSkipped:  c.squaresSkipped.Load(),
		MalformedFrames: c.malformedFrames.Load(),
		EmptyTakes:      c.emptyTakes.Load(),
		LastSequence:    c.lastSequence.Load(),
	}
}

func (c *Compositor) release(f *Frame) {
	if c.recycler != nil {
		c.recycler.Recycle(f)
	}
}
