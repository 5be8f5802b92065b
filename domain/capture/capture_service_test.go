package capture

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

type recordingSink struct {
	mu     sync.Mutex
	frames []*mosaic.Frame
}

func (s *recordingSink) Publish(f *mosaic.Frame) {
	s.mu.Lock()
	s.frames = append(s.frames, f)
	s.mu.Unlock()
}

func (s *recordingSink) snapshot() []*mosaic.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mosaic.Frame(nil), s.frames...)
}

type countingPool struct {
	*mosaic.FramePool
	recycled atomic.Int32
}

func (p *countingPool) Recycle(f *mosaic.Frame) {
	p.recycled.Add(1)
	p.FramePool.Recycle(f)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met before deadline")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestCaptureService_PublishesSequencedFrames(t *testing.T) {
	rect := image.Rect(0, 0, 16, 8)
	sink := &recordingSink{}
	svc := NewCaptureService(nil, NewPatternGrabber(1), sink, nil, rect, time.Millisecond)

	svc.Start()
	svc.Start() // idempotent
	waitFor(t, func() bool { return len(sink.snapshot()) >= 5 })
	svc.Stop()
	svc.Stop()
	if svc.Running() {
		t.Fatalf("service still running after Stop")
	}

	frames := sink.snapshot()
	for i, f := range frames {
		if f.Sequence != uint64(i+1) {
			t.Fatalf("frame %d has sequence %d", i, f.Sequence)
		}
		if err := f.Validate(16, 8); err != nil {
			t.Fatalf("frame %d invalid: %v", i, err)
		}
		if f.CapturedAt.IsZero() {
			t.Fatalf("frame %d missing capture time", i)
		}
	}
	st := svc.Stats()
	if st.Captures < uint64(len(frames)) || st.Skipped != 0 {
		t.Fatalf("unexpected stats %+v for %d frames", st, len(frames))
	}
}

func TestCaptureService_GrabErrorsSkippedAndRecycled(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)
	pool := &countingPool{FramePool: mosaic.NewFramePool(4, 4)}
	sink := &recordingSink{}
	failing := GrabberFunc(func(image.Rectangle, *mosaic.Frame) error { return errors.New("boom") })
	svc := NewCaptureService(nil, failing, sink, pool, rect, time.Millisecond)

	svc.Start()
	waitFor(t, func() bool { return svc.Stats().Skipped >= 3 })
	svc.Stop()

	if n := len(sink.snapshot()); n != 0 {
		t.Fatalf("failed grabs must not publish, got %d frames", n)
	}
	if pool.recycled.Load() < 3 {
		t.Fatalf("failed frames not recycled: %d", pool.recycled.Load())
	}
}

func TestCaptureService_FeedsFrameChannel(t *testing.T) {
	rect := image.Rect(0, 0, 8, 8)
	pool := mosaic.NewFramePool(8, 8)
	ch := mosaic.NewFrameChannel(pool)
	svc := NewCaptureService(nil, NewPatternGrabber(3), ch, pool, rect, time.Millisecond)
	svc.Start()
	waitFor(t, func() bool { return ch.Stats().Published >= 3 })
	svc.Stop()

	f, ok := ch.Take()
	if !ok {
		t.Fatalf("expected a pending frame")
	}
	if f.Sequence == 0 || f.Sequence > svc.Stats().Sequence {
		t.Fatalf("unexpected sequence %d", f.Sequence)
	}
}

func TestCaptureService_MoveToKeepsSize(t *testing.T) {
	var mu sync.Mutex
	var seen []image.Rectangle
	grab := GrabberFunc(func(rect image.Rectangle, dst *mosaic.Frame) error {
		mu.Lock()
		seen = append(seen, rect)
		mu.Unlock()
		dst.Width, dst.Height = rect.Dx(), rect.Dy()
		return nil
	})
	svc := NewCaptureService(nil, grab, &recordingSink{}, nil, image.Rect(0, 0, 8, 4), time.Millisecond)
	svc.MoveTo(image.Pt(100, 50))
	if got, want := svc.Rect(), image.Rect(100, 50, 108, 54); got != want {
		t.Fatalf("Rect() = %v, want %v", got, want)
	}

	svc.Start()
	waitFor(t, func() bool { return svc.Stats().Captures >= 1 })
	svc.Stop()

	mu.Lock()
	defer mu.Unlock()
	if seen[0] != image.Rect(100, 50, 108, 54) {
		t.Fatalf("grab used %v", seen[0])
	}
}
