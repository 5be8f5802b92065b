package images

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// CanvasImage wraps a width x height RGBA canvas buffer as an *image.RGBA
// without copying. The image aliases pix, so it is only valid until the
// next compositor tick.
func CanvasImage(pix []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("images: invalid canvas size %dx%d", width, height)
	}
	if len(pix) != mosaic.FrameSize(width, height) {
		return nil, fmt.Errorf("images: canvas holds %d bytes, want %d", len(pix), mosaic.FrameSize(width, height))
	}
	return &image.RGBA{
		Pix:    pix,
		Stride: width * mosaic.BytesPerPixel,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// OutlineRegions returns a copy of img with a one-pixel border drawn around
// each region. Used by the debug preview to show the last pass.
func OutlineRegions(img *image.RGBA, regions []mosaic.Region, c color.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := image.NewRGBA(img.Bounds())
	draw.Copy(out, image.Point{}, img, img.Bounds(), draw.Src, nil)
	b := out.Bounds()
	for _, r := range regions {
		rect := r.Rect().Intersect(b)
		if rect.Empty() {
			continue
		}
		for x := rect.Min.X; x < rect.Max.X; x++ {
			out.SetRGBA(x, rect.Min.Y, c)
			out.SetRGBA(x, rect.Max.Y-1, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			out.SetRGBA(rect.Min.X, y, c)
			out.SetRGBA(rect.Max.X-1, y, c)
		}
	}
	return out
}
