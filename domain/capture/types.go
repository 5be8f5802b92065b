package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

var (
	// ErrEmptySelection is returned for zero-area capture rectangles.
	ErrEmptySelection = errors.New("capture: empty selection")
	// ErrOutOfBounds is returned when the capture rectangle leaves the screen.
	ErrOutOfBounds = errors.New("capture: selection out of bounds")
)

// Grabber fills dst with the pixels of rect. dst.Pix must hold exactly
// rect.Dx()*rect.Dy()*4 bytes; implementations never scale.
type Grabber interface {
	Grab(rect image.Rectangle, dst *mosaic.Frame) error
}

// GrabberFunc adapts a function to Grabber.
type GrabberFunc func(rect image.Rectangle, dst *mosaic.Frame) error

func (f GrabberFunc) Grab(rect image.Rectangle, dst *mosaic.Frame) error { return f(rect, dst) }

// FramePool hands out and takes back frame buffers.
type FramePool interface {
	Acquire() *mosaic.Frame
	Recycle(f *mosaic.Frame)
}

func checkTarget(rect image.Rectangle, dst *mosaic.Frame) error {
	if rect.Empty() {
		return ErrEmptySelection
	}
	if dst == nil || len(dst.Pix) != mosaic.FrameSize(rect.Dx(), rect.Dy()) {
		n := 0
		if dst != nil {
			n = len(dst.Pix)
		}
		return fmt.Errorf("capture: destination holds %d bytes, rect %v needs %d", n, rect, mosaic.FrameSize(rect.Dx(), rect.Dy()))
	}
	return nil
}

// copyRGBA copies img row by row into dst, honouring img.Stride. img must
// have the same size as dst.
func copyRGBA(dst *mosaic.Frame, img *image.RGBA) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if len(dst.Pix) != mosaic.FrameSize(w, h) {
		return fmt.Errorf("capture: grabbed %dx%d image does not fit %d byte frame", w, h, len(dst.Pix))
	}
	row := w * mosaic.BytesPerPixel
	for y := 0; y < h; y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*row:(y+1)*row], img.Pix[src:src+row])
	}
	dst.Width, dst.Height = w, h
	return nil
}
