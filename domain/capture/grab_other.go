//go:build !windows

package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

type screenshotGrabber struct{}

// ScreenGrabber returns the platform screen grabber (X11/Quartz via screenshot).
func ScreenGrabber() Grabber { return screenshotGrabber{} }

// ScreenBounds returns the primary screen rectangle.
func ScreenBounds() (image.Rectangle, error) {
	return screenshot.ScreenRect()
}

// Grab captures rect and copies it into dst. The rectangle must lie fully on
// screen: frames have a fixed size, so nothing is clipped.
func (screenshotGrabber) Grab(rect image.Rectangle, dst *mosaic.Frame) error {
	if err := checkTarget(rect, dst); err != nil {
		return err
	}
	screen, err := screenshot.ScreenRect()
	if err != nil {
		return err
	}
	if !rect.In(screen) {
		return fmt.Errorf("%w: sel=%v screen=%v", ErrOutOfBounds, rect, screen)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return err
	}
	return copyRGBA(dst, img)
}
