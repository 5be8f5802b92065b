package mosaic

import (
	"sync"
	"time"
)

// FramePool recycles frame-sized buffers between the capture loop and the
// compositor. Frames travel capture -> channel -> compositor and come back
// here once they are dropped by the channel or consumed by the compositor,
// so steady state runs without a fresh multi-megabyte allocation per frame.
// If nobody recycles, the pool degrades to plain allocation.
type FramePool struct {
	width, height int
	size          int
	pool          sync.Pool // stores *Frame
}

// NewFramePool returns a pool of width x height RGBA frames.
func NewFramePool(width, height int) *FramePool {
	return &FramePool{width: width, height: height, size: FrameSize(width, height)}
}

// Acquire returns a frame with len(Pix) == FrameSize(width, height). Pixel
// contents are undefined; callers overwrite the whole buffer.
func (p *FramePool) Acquire() *Frame {
	if v := p.pool.Get(); v != nil {
		f := v.(*Frame)
		if cap(f.Pix) >= p.size {
			f.Pix = f.Pix[:p.size]
			f.Width, f.Height = p.width, p.height
			f.CapturedAt = time.Time{}
			f.Sequence = 0
			return f
		}
	}
	return &Frame{Pix: make([]byte, p.size), Width: p.width, Height: p.height}
}

// Recycle returns f to the pool. The caller must not use f afterwards.
// Frames too small for this pool are left to the garbage collector.
func (p *FramePool) Recycle(f *Frame) {
	if p == nil || f == nil || cap(f.Pix) < p.size {
		return
	}
	p.pool.Put(f)
}
