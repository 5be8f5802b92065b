package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/debug"
	"github.com/soocke/pixel-mosaic/ui/presenter"
	"github.com/soocke/pixel-mosaic/ui/theme"
	"github.com/soocke/pixel-mosaic/ui/view"
)

const runtimeLogInterval = 5 * time.Second

type app struct {
	cfgPath string
	cfg     *config.Config
	logger  *slog.Logger

	container *AppContainer
	tick      time.Duration
	afterID   string
	stopDebug func()
}

// NewApp configures the Tk root window. Start builds the layout and blocks
// until the window closes.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{cfg: cfg, cfgPath: cfgPath, logger: logger, tick: cfg.TickInterval()}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

func (a *app) Start() error {
	palette := theme.Apply(a.cfg.Dark)
	c, err := BuildContainer(a.cfg, a.logger, a.cfgPath, palette)
	if err != nil {
		return err
	}
	a.container = c
	c.RootView.Build(view.Handlers{
		ToggleCapture: c.CapturePresenter.Toggle,
		ToggleOverlay: c.ToggleOverlay,
		MoveArea:      c.Pipeline.Capture.MoveTo,
		Exit:          a.exitHandler,
	})
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.MosaicPresenter, a.scheduleUpdate)

	if a.cfg.Debug {
		a.stopDebug = debug.StartRuntimeLogger(runtimeLogInterval, a.logger, func() []slog.Attr {
			return c.Pipeline.Stats().LogAttrs()
		})
	}

	a.scheduleUpdate()
	App.Wait()
	return nil
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.container != nil {
		a.container.CapturePresenter.Disable()
		if a.logger != nil {
			st := a.container.Pipeline.Stats()
			a.logger.Info("mosaic session ended", "updates", st.Compositor.Updates, "drops", st.Channel.Drops)
		}
	}
	if a.stopDebug != nil {
		a.stopDebug()
	}
	Destroy(App)
}

// scheduleUpdate re-arms the render tick on Tk's event loop thread.
func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(a.tick, func() {
		if a.container != nil {
			a.container.Loop.Tick()
		}
	})
}
