package presenter

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
	"github.com/soocke/pixel-mosaic/ui/images"
	"github.com/soocke/pixel-mosaic/ui/model"
)

// MosaicCompositor narrows what the presenter needs from *mosaic.Compositor.
type MosaicCompositor interface {
	Advance(elapsed time.Duration) (mosaic.TickResult, error)
	Snapshot() ([]byte, bool)
	Options() mosaic.Options
}

// MosaicView displays the canvas. The image handed to UpdateMosaic aliases
// the live canvas and must be consumed before returning.
type MosaicView interface {
	UpdateMosaic(img image.Image)
}

var overlayColor = color.RGBA{R: 0xFF, G: 0x30, B: 0x30, A: 0xFF}

// MosaicPresenter drives the compositor once per render tick and re-uploads
// the canvas only when the tick changed it.
type MosaicPresenter struct {
	comp    MosaicCompositor
	view    MosaicView
	session *model.SessionModel
	regions *model.RegionModel
	logger  *slog.Logger

	lastErr error
}

// NewMosaicPresenter returns a presenter. session and regions may be nil.
func NewMosaicPresenter(comp MosaicCompositor, view MosaicView, session *model.SessionModel, regions *model.RegionModel, logger *slog.Logger) *MosaicPresenter {
	return &MosaicPresenter{comp: comp, view: view, session: session, regions: regions, logger: logger}
}

// Tick advances the compositor by elapsed and pushes the canvas to the view
// when it changed. Malformed frames are remembered in LastError and do not
// stop the loop.
func (p *MosaicPresenter) Tick(now time.Time, elapsed time.Duration) {
	if p == nil || p.comp == nil {
		return
	}
	res, err := p.comp.Advance(elapsed)
	if err != nil {
		p.lastErr = err
		if !errors.Is(err, mosaic.ErrMalformedFrame) && p.logger != nil {
			p.logger.Error("mosaic tick", "error", err)
		}
	}
	p.session.OnMosaic(res, now)
	p.regions.SetPass(res)
	p.present(false)
}

// Refresh re-uploads the canvas even when no tick changed it, so overlay
// toggles show up while capture is frozen.
func (p *MosaicPresenter) Refresh() {
	if p == nil || p.comp == nil {
		return
	}
	p.present(true)
}

// LastError returns the most recent tick error, if any.
func (p *MosaicPresenter) LastError() error {
	if p == nil {
		return nil
	}
	return p.lastErr
}

func (p *MosaicPresenter) present(force bool) {
	pix, changed := p.comp.Snapshot()
	if (!changed && !force) || p.view == nil {
		return
	}
	opts := p.comp.Options()
	img, err := images.CanvasImage(pix, opts.Width, opts.Height)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("mosaic canvas", "error", err)
		}
		return
	}
	if p.regions.ShowOverlay() {
		regions, _ := p.regions.Regions()
		p.view.UpdateMosaic(images.OutlineRegions(img, regions, overlayColor))
		return
	}
	p.view.UpdateMosaic(img)
}
