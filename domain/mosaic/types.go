package mosaic

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// BytesPerPixel is the fixed RGBA pixel width of frames and canvas.
const BytesPerPixel = 4

var (
	// ErrMalformedFrame reports a frame whose buffer does not match the
	// configured dimensions. Such frames are discarded, never fatal.
	ErrMalformedFrame = errors.New("mosaic: malformed frame")
	// ErrInvalidOptions reports compositor options that cannot produce a canvas.
	ErrInvalidOptions = errors.New("mosaic: invalid options")
)

// FrameSize returns the byte length of a width x height RGBA buffer.
func FrameSize(width, height int) int { return width * height * BytesPerPixel }

// Frame is one captured RGBA image. Ownership moves with the pointer: once
// published, the producer must not touch Pix again.
type Frame struct {
	Pix        []byte
	Width      int // zero when the producer only supplies a raw buffer
	Height     int
	CapturedAt time.Time
	Sequence   uint64
}

// RawFrame wraps a bare byte buffer without dimension metadata.
func RawFrame(pix []byte) *Frame { return &Frame{Pix: pix} }

// Validate checks that the frame fits a width x height canvas.
func (f *Frame) Validate(width, height int) error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrMalformedFrame)
	}
	if (f.Width != 0 || f.Height != 0) && (f.Width != width || f.Height != height) {
		return fmt.Errorf("%w: dimensions %dx%d, want %dx%d", ErrMalformedFrame, f.Width, f.Height, width, height)
	}
	if want := FrameSize(width, height); len(f.Pix) != want {
		return fmt.Errorf("%w: %d bytes, want %d", ErrMalformedFrame, len(f.Pix), want)
	}
	return nil
}

// FrameSink accepts published frames (capture side).
type FrameSink interface {
	Publish(f *Frame)
}

// FrameSource yields the newest frame, if any (render side).
type FrameSource interface {
	Take() (*Frame, bool)
}

// Recycler takes back frames nobody holds any more.
type Recycler interface {
	Recycle(f *Frame)
}

// Region is one square patch copied during an update pass.
type Region struct {
	X, Y int
	Size int
}

// Rect returns the region in canvas coordinates.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Size, r.Y+r.Size)
}

// State is the compositor's position in its two-state cycle.
type State int

const (
	StateIdle     State = iota // waiting for the update interval to elapse
	StateUpdating              // last tick passed the interval gate
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUpdating:
		return "updating"
	default:
		return "unknown"
	}
}

// TickResult describes what a single Tick did.
type TickResult struct {
	Accepted bool     // interval elapsed and the channel was polled
	Updated  bool     // at least one square was copied into the canvas
	Size     int      // square edge drawn for this pass
	Regions  []Region // copied squares, in draw order
	Skipped  int      // squares dropped as degenerate or out of bounds
	Sequence uint64   // sequence of the consumed frame
}

// ChannelStats summarises FrameChannel traffic.
type ChannelStats struct {
	Published  uint64
	Taken      uint64
	Drops      uint64
	EmptyTakes uint64
}

// CompositorStats summarises compositor activity since construction.
type CompositorStats struct {
	Ticks           uint64
	AcceptedTicks   uint64
	Updates         uint64
	SquaresCopied   uint64
	SquaresSkipped  uint64
	MalformedFrames uint64
	EmptyTakes      uint64
	LastSequence    uint64
}
