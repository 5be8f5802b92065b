package app

import (
	"log/slog"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/ui/model"
	"github.com/soocke/pixel-mosaic/ui/presenter"
	"github.com/soocke/pixel-mosaic/ui/theme"
	"github.com/soocke/pixel-mosaic/ui/view"
)

// AppContainer assembles the pipeline, models, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Pipeline *Pipeline
	Capture  *model.CaptureModel
	Session  *model.SessionModel
	Regions  *model.RegionModel
	RootView *view.RootView

	// Presenters
	SessionPresenter *presenter.SessionPresenter
	MosaicPresenter  *presenter.MosaicPresenter
	CapturePresenter *presenter.CapturePresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. Widgets are created later by
// RootView.Build, so this is safe to call before the Tk window exists.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string, palette theme.Colors) (*AppContainer, error) {
	p, err := BuildPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}
	c := &AppContainer{Config: cfg, Logger: logger, Pipeline: p}
	c.Capture = &model.CaptureModel{}
	c.Session = model.NewSessionModel()
	c.Regions = model.NewRegionModel()
	c.RootView = view.NewRootView(cfg, cfgPath, logger, palette)

	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Capture, p.Channel, c.RootView)
	c.MosaicPresenter = presenter.NewMosaicPresenter(p.Compositor, c.RootView, c.Session, c.Regions, logger)
	c.CapturePresenter = presenter.NewCapturePresenter(c.Capture, p.Capture, c.RootView)
	return c, nil
}

// ToggleOverlay flips the region outline, redraws the preview and reports
// the new state.
func (c *AppContainer) ToggleOverlay() bool {
	on := !c.Regions.ShowOverlay()
	c.Regions.SetShowOverlay(on)
	c.MosaicPresenter.Refresh()
	return on
}
