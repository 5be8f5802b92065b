package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pixel-mosaic/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
// Compositor geometry is fixed at construction, so saved values take effect
// on the next start.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("source", "Source (screen/pattern)", c.Source)
	makeRow("captureX", "Capture X", strconv.Itoa(c.CaptureX))
	makeRow("captureY", "Capture Y", strconv.Itoa(c.CaptureY))
	makeRow("captureIntervalMs", "Capture Interval Ms", strconv.Itoa(c.CaptureIntervalMs))
	makeRow("updateIntervalMs", "Update Interval Ms", strconv.Itoa(c.UpdateIntervalMs))
	makeRow("squaresPerUpdate", "Squares Per Update", strconv.Itoa(c.SquaresPerUpdate))
	makeRow("minSquare", "Min Square Px", strconv.Itoa(c.MinSquare))
	makeRow("maxSquare", "Max Square Px", strconv.Itoa(c.MaxSquare))
	makeRow("alignment", "Alignment Px", strconv.Itoa(c.Alignment))
	makeRow("seed", "Seed", strconv.FormatInt(c.Seed, 10))
	makeRow("dark", "Dark (true/false)", fmt.Sprintf("%t", c.Dark))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, err := strconv.Atoi(s); err == nil {
				*dst = i
			}
		}
	}
	assignInt("captureX", &cfg.CaptureX)
	assignInt("captureY", &cfg.CaptureY)
	assignInt("captureIntervalMs", &cfg.CaptureIntervalMs)
	assignInt("updateIntervalMs", &cfg.UpdateIntervalMs)
	assignInt("squaresPerUpdate", &cfg.SquaresPerUpdate)
	assignInt("minSquare", &cfg.MinSquare)
	assignInt("maxSquare", &cfg.MaxSquare)
	assignInt("alignment", &cfg.Alignment)
	if s, ok := v.text("seed"); ok {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			cfg.Seed = i
		}
	}
	if s, ok := v.text("dark"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.Dark = b
		}
	}
	if s, ok := v.text("source"); ok && s != "" {
		cfg.Source = s
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		return
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
