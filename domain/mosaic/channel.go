package mosaic

import "sync/atomic"

// FrameChannel is a single-slot, latest-wins hand-off between one capture
// goroutine and the render loop. Publish overwrites whatever is pending;
// Take removes and returns it. Both sides complete with one atomic swap and
// never wait for each other. It never queues: an untaken frame that gets
// superseded is dropped.
//
// The zero value is ready to use (without recycling).
type FrameChannel struct {
	slot     atomic.Pointer[Frame]
	recycler Recycler

	published  atomic.Uint64
	taken      atomic.Uint64
	drops      atomic.Uint64
	emptyTakes atomic.Uint64
}

// NewFrameChannel returns an empty channel. Dropped frames are handed to r
// when it is non-nil.
func NewFrameChannel(r Recycler) *FrameChannel {
	return &FrameChannel{recycler: r}
}

// Publish stores f, discarding any frame not yet taken. Nil frames are ignored.
func (c *FrameChannel) Publish(f *Frame) {
	if f == nil {
		return
	}
	c.published.Add(1)
	old := c.slot.Swap(f)
	if old == nil || old == f {
		return
	}
	c.drops.Add(1)
	if c.recycler != nil {
		c.recycler.Recycle(old)
	}
}

// Take removes and returns the pending frame. It reports false when the slot
// is empty, which is the normal "nothing new this tick" outcome.
func (c *FrameChannel) Take() (*Frame, bool) {
	f := c.slot.Swap(nil)
	if f == nil {
		c.emptyTakes.Add(1)
		return nil, false
	}
	c.taken.Add(1)
	return f, true
}

// Pending reports whether a frame is waiting. Advisory only: the answer may
// be stale by the time the caller acts on it.
func (c *FrameChannel) Pending() bool { return c.slot.Load() != nil }

// Stats returns a snapshot of the traffic counters.
func (c *FrameChannel) Stats() ChannelStats {
	return ChannelStats{
		Published:  c.published.Load(),
		Taken:      c.taken.Load(),
		Drops:      c.drops.Load(),
		EmptyTakes: c.emptyTakes.Load(),
	}
}
