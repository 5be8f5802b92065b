package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	palette theme.Colors

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     MosaicPreview
	Area        CaptureArea

	// Widgets
	StateLabel *LabelWidget
	OverlayBtn *ButtonWidget
}

// Handlers groups the callbacks wired to the root view's buttons.
type Handlers struct {
	ToggleCapture func()
	ToggleOverlay func() bool // returns the new overlay state
	MoveArea      func(origin image.Point)
	Exit          func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger, palette theme.Colors) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger, palette: palette}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats (columns 0-2), state label, buttons frame
	rv.Session = NewSessionStats(nil, 0, 0)
	rv.StateLabel = Label(Txt("State: frozen"), Borderwidth(1), Relief("ridge"),
		Background(rv.palette.Surface), Foreground(rv.palette.Text))
	Grid(rv.StateLabel, Row(0), Column(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	captureBtn := Button(Txt("Toggle Capture"), Command(h.ToggleCapture))
	Grid(captureBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.OverlayBtn = Button(Txt("Overlay: off"), Command(func() {
		if h.ToggleOverlay == nil {
			return
		}
		label := "Overlay: off"
		if h.ToggleOverlay() {
			label = "Overlay: on"
		}
		rv.OverlayBtn.Configure(Txt(label))
	}))
	Grid(rv.OverlayBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.Area = NewCaptureArea(rv.cfg, rv.cfgPath, rv.logger, h.MoveArea)
	areaBtn := Button(Txt("Capture Area"), Command(rv.Area.OpenOrFocus))
	Grid(areaBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	endRow := rv.ConfigPanel.Build(1)

	rv.Preview = NewMosaicPreview(endRow)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// ConfigEditable toggles config panel editability.
func (rv *RootView) ConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// UpdateMosaic proxies to the preview.
func (rv *RootView) UpdateMosaic(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateMosaic(img)
	}
}

// SetSession updates both session and total capture durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

// SetCounters updates the mosaic counters.
func (rv *RootView) SetCounters(updates, squares, drops uint64) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetCounters(updates, squares, drops)
	}
}
