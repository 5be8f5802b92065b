package capture

import (
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

const captureStatsLogInterval = 5 * time.Second

// CaptureService grabs a fixed rectangle on its own goroutine and publishes
// every frame to a sink without waiting for the consumer. Use
// NewCaptureService to construct an instance.
type CaptureService interface {
	Start()
	Stop()
	Running() bool
	Stats() CaptureStats
	// MoveTo shifts the capture rectangle to origin keeping its size. It
	// takes effect on the next grab.
	MoveTo(origin image.Point)
	Rect() image.Rectangle
}

type captureService struct {
	mu       sync.Mutex
	running  atomic.Bool
	done     chan struct{}
	grabber  Grabber
	sink     mosaic.FrameSink
	pool     FramePool
	rect     atomic.Pointer[image.Rectangle]
	interval time.Duration
	logger   *slog.Logger

	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64 // unix nanos
}

func newCaptureService(logger *slog.Logger, grabber Grabber, sink mosaic.FrameSink, pool FramePool, rect image.Rectangle, interval time.Duration) *captureService {
	if pool == nil {
		pool = mosaic.NewFramePool(rect.Dx(), rect.Dy())
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	s := &captureService{grabber: grabber, sink: sink, pool: pool, interval: interval, logger: logger}
	s.rect.Store(&rect)
	return s
}

// NewCaptureService constructs a capture service that grabs rect every
// interval and publishes the result to sink. A nil pool allocates a private one.
func NewCaptureService(logger *slog.Logger, grabber Grabber, sink mosaic.FrameSink, pool FramePool, rect image.Rectangle, interval time.Duration) CaptureService {
	return newCaptureService(logger, grabber, sink, pool, rect, interval)
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Rect() image.Rectangle { return *s.rect.Load() }

func (s *captureService) MoveTo(origin image.Point) {
	cur := s.Rect()
	next := cur.Sub(cur.Min).Add(origin)
	s.rect.Store(&next)
	if s.logger != nil {
		s.logger.Info("capture area moved", "rect", next.String())
	}
}

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	var last time.Time
	age := time.Duration(0)
	if n := s.lastCapture.Load(); n != 0 {
		last = time.Unix(0, n)
		age = time.Since(last)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          skipped,
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      last,
		LatestFrameAge:   age,
		Sequence:         s.sequence.Load(),
	}
}

func (s *captureService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return
	}
	s.done = make(chan struct{})
	s.running.Store(true)
	go s.loop(s.done)
}

func (s *captureService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running.Load() {
		return
	}
	close(s.done)
	s.running.Store(false)
}

func (s *captureService) loop(done <-chan struct{}) {
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	pause := time.NewTimer(s.interval)
	defer pause.Stop()
	for {
		select {
		case <-done:
			return
		default:
		}

		s.captureOnce()

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		pause.Reset(s.interval)
		select {
		case <-done:
			return
		case <-pause.C:
		}
	}
}

// captureOnce grabs one frame and hands it to the sink. Failed grabs are
// counted as skipped and their buffer goes straight back to the pool.
func (s *captureService) captureOnce() {
	start := time.Now()
	rect := s.Rect()
	frame := s.pool.Acquire()
	if err := s.grabber.Grab(rect, frame); err != nil {
		s.pool.Recycle(frame)
		s.skipped.Add(1)
		if s.logger != nil {
			s.logger.Error("capture grab", "error", err, "rect", rect.String())
		}
		return
	}
	now := time.Now()
	s.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	frame.Sequence = s.sequence.Add(1)
	frame.CapturedAt = now
	s.lastCapture.Store(now.UnixNano())
	s.sink.Publish(frame)
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
