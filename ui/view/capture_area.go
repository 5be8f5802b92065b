package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/pixel-mosaic/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// CaptureArea is a transparent framed window the user drags over the
// screen to pick where the fixed-size capture rectangle sits.
type CaptureArea interface {
	OpenOrFocus()
}

type captureArea struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	onMove  func(origin image.Point)
	win     *ToplevelWidget
}

// NewCaptureArea creates the area picker. onMove receives the confirmed
// top-left corner; the size always stays cfg.Width x cfg.Height.
func NewCaptureArea(cfg *config.Config, cfgPath string, logger *slog.Logger, onMove func(image.Point)) CaptureArea {
	return &captureArea{logger: logger, cfg: cfg, cfgPath: cfgPath, onMove: onMove}
}

func (v *captureArea) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Capture Area")
	v.win = win
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", v.cfg.Width, v.cfg.Height, v.cfg.CaptureX, v.cfg.CaptureY))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.destroy))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.destroy))
}

func (v *captureArea) confirm() {
	if v.win == nil {
		return
	}
	rect, ok := parseGeometry(WmGeometry(v.win.Window))
	v.destroy()
	if !ok {
		return
	}
	origin := image.Pt(max(rect.Min.X, 0), max(rect.Min.Y, 0))
	if v.cfg != nil {
		v.cfg.CaptureX, v.cfg.CaptureY = origin.X, origin.Y
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	}
	if v.onMove != nil {
		v.onMove(origin)
	}
}

func (v *captureArea) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// geomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

func parseGeometry(g string) (image.Rectangle, bool) {
	m := geomRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
