package capture

import (
	"image"
	"math/rand"
	"sync"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// Eight SMPTE-style bars.
var patternBars = [8][3]byte{
	{0xC0, 0xC0, 0xC0},
	{0xC0, 0xC0, 0x00},
	{0x00, 0xC0, 0xC0},
	{0x00, 0xC0, 0x00},
	{0xC0, 0x00, 0xC0},
	{0xC0, 0x00, 0x00},
	{0x00, 0x00, 0xC0},
	{0x10, 0x10, 0x10},
}

// patternGrabber synthesises frames without touching the screen: colour bars
// scrolling one step per grab, a bouncing white block and a little noise.
// It lets the pipeline run headless and in tests.
type patternGrabber struct {
	mu    sync.Mutex
	rng   *rand.Rand
	phase int
}

// NewPatternGrabber returns a deterministic synthetic source.
func NewPatternGrabber(seed int64) Grabber {
	return &patternGrabber{rng: rand.New(rand.NewSource(seed))}
}

func (p *patternGrabber) Grab(rect image.Rectangle, dst *mosaic.Frame) error {
	if err := checkTarget(rect, dst); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	w, h := rect.Dx(), rect.Dy()
	barW := w / len(patternBars)
	if barW < 1 {
		barW = 1
	}
	shift := p.phase * 4
	box := w / 8
	if box < 1 {
		box = 1
	}
	bx, by := bounce(p.phase*3, w-box), bounce(p.phase*2, h-box)

	for y := 0; y < h; y++ {
		row := dst.Pix[y*w*mosaic.BytesPerPixel:]
		for x := 0; x < w; x++ {
			off := x * mosaic.BytesPerPixel
			var c [3]byte
			if x >= bx && x < bx+box && y >= by && y < by+box {
				c = [3]byte{0xFF, 0xFF, 0xFF}
			} else {
				c = patternBars[((x+shift)/barW)%len(patternBars)]
			}
			n := byte(p.rng.Intn(16))
			row[off+0] = c[0] ^ n
			row[off+1] = c[1] ^ n
			row[off+2] = c[2] ^ n
			row[off+3] = 0xFF
		}
	}
	dst.Width, dst.Height = w, h
	p.phase++
	return nil
}

// bounce maps a monotonically increasing step onto [0, span] back and forth.
func bounce(step, span int) int {
	if span <= 0 {
		return 0
	}
	period := 2 * span
	v := step % period
	if v > span {
		return period - v
	}
	return v
}
