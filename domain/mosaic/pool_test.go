package mosaic

import (
	"testing"
	"time"
)

func TestFramePool_AcquireSized(t *testing.T) {
	p := NewFramePool(16, 8)
	f := p.Acquire()
	if len(f.Pix) != FrameSize(16, 8) || f.Width != 16 || f.Height != 8 {
		t.Fatalf("unexpected frame shape len=%d %dx%d", len(f.Pix), f.Width, f.Height)
	}
	if err := f.Validate(16, 8); err != nil {
		t.Fatalf("acquired frame should validate: %v", err)
	}
}

func TestFramePool_RecycleResetsMetadata(t *testing.T) {
	p := NewFramePool(4, 4)
	f := p.Acquire()
	f.Sequence = 9
	f.CapturedAt = time.Unix(10, 0)
	p.Recycle(f)
	// sync.Pool may or may not hand the same frame back; either way it
	// must arrive clean.
	g := p.Acquire()
	if g.Sequence != 0 || !g.CapturedAt.IsZero() {
		t.Fatalf("recycled frame kept metadata: seq=%d at=%v", g.Sequence, g.CapturedAt)
	}
	if len(g.Pix) != FrameSize(4, 4) {
		t.Fatalf("recycled frame has len %d", len(g.Pix))
	}
}

func TestFramePool_IgnoresUndersized(t *testing.T) {
	p := NewFramePool(4, 4)
	p.Recycle(&Frame{Pix: make([]byte, 3)})
	p.Recycle(nil)
	var nilPool *FramePool
	nilPool.Recycle(&Frame{})
	if f := p.Acquire(); len(f.Pix) != FrameSize(4, 4) {
		t.Fatalf("got undersized frame len=%d", len(f.Pix))
	}
}
