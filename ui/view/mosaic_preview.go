package view

import (
	"image"

	"github.com/soocke/pixel-mosaic/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// MosaicPreview shows the composited canvas scaled to the preview area.
type MosaicPreview interface {
	UpdateMosaic(img image.Image)
}

type mosaicPreview struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before each replacement
}

const (
	maxPreviewW = 640
	maxPreviewH = 360
)

// NewMosaicPreview creates the preview label spanning columns 0-4 of row.
func NewMosaicPreview(row int) MosaicPreview {
	photo := placeholderPhoto()
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &mosaicPreview{label: label, prevPhoto: photo}
}

func placeholderPhoto() *Img {
	placeholder := image.NewRGBA(image.Rect(0, 0, maxPreviewW/2, maxPreviewH/2))
	return NewPhoto(Data(images.EncodePNG(placeholder)))
}

// UpdateMosaic encodes a scaled copy of img, so img may alias the live canvas.
func (v *mosaicPreview) UpdateMosaic(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(images.ScaleToFit(img, maxPreviewW, maxPreviewH))
	v.replace(NewPhoto(Data(pngBytes)))
}

func (v *mosaicPreview) replace(photo *Img) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}
