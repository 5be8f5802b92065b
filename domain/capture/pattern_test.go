package capture

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

func TestPatternGrabber_FillsOpaqueAndMoves(t *testing.T) {
	g := NewPatternGrabber(5)
	rect := image.Rect(0, 0, 64, 32)
	a := &mosaic.Frame{Pix: make([]byte, mosaic.FrameSize(64, 32))}
	b := &mosaic.Frame{Pix: make([]byte, mosaic.FrameSize(64, 32))}
	if err := g.Grab(rect, a); err != nil {
		t.Fatal(err)
	}
	if err := g.Grab(rect, b); err != nil {
		t.Fatal(err)
	}
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 0xFF {
			t.Fatalf("alpha at %d = %#x", i, a.Pix[i])
		}
	}
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("consecutive pattern frames are identical")
	}
	if a.Width != 64 || a.Height != 32 {
		t.Fatalf("dimensions not stamped: %dx%d", a.Width, a.Height)
	}
}

func TestPatternGrabber_Deterministic(t *testing.T) {
	rect := image.Rect(0, 0, 16, 16)
	grab := func() []byte {
		g := NewPatternGrabber(11)
		f := &mosaic.Frame{Pix: make([]byte, mosaic.FrameSize(16, 16))}
		for i := 0; i < 3; i++ {
			if err := g.Grab(rect, f); err != nil {
				t.Fatal(err)
			}
		}
		return f.Pix
	}
	if !bytes.Equal(grab(), grab()) {
		t.Fatalf("same seed produced different frames")
	}
}

func TestPatternGrabber_RejectsBadTarget(t *testing.T) {
	g := NewPatternGrabber(1)
	if err := g.Grab(image.Rectangle{}, &mosaic.Frame{}); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if err := g.Grab(image.Rect(0, 0, 4, 4), &mosaic.Frame{Pix: make([]byte, 3)}); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestCopyRGBA_HonoursStrideAndOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 12))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	sub := img.SubImage(image.Rect(11, 10, 13, 12)).(*image.RGBA)
	dst := &mosaic.Frame{Pix: make([]byte, mosaic.FrameSize(2, 2))}
	if err := copyRGBA(dst, sub); err != nil {
		t.Fatal(err)
	}
	want := append(append([]byte{}, img.Pix[4:12]...), img.Pix[20:28]...)
	if !bytes.Equal(dst.Pix, want) {
		t.Fatalf("copy mismatch\n got %v\nwant %v", dst.Pix, want)
	}
}

func TestBounce(t *testing.T) {
	cases := []struct{ step, span, want int }{
		{0, 10, 0}, {5, 10, 5}, {10, 10, 10}, {15, 10, 5}, {20, 10, 0}, {3, 0, 0},
	}
	for _, c := range cases {
		if got := bounce(c.step, c.span); got != c.want {
			t.Fatalf("bounce(%d,%d)=%d want %d", c.step, c.span, got, c.want)
		}
	}
}
