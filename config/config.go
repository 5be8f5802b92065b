package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// Capture sources understood by the app.
const (
	SourceScreen  = "screen"
	SourcePattern = "pattern"
)

// Config holds runtime configuration for capture, compositing and the window.
// Fields may be loaded from a JSON or YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`
	Dark  bool `json:"dark" yaml:"dark"`

	// Frame geometry shared by capture and canvas.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	// Capture parameters
	Source            string `json:"source" yaml:"source"`
	CaptureX          int    `json:"capture_x" yaml:"capture_x"`
	CaptureY          int    `json:"capture_y" yaml:"capture_y"`
	CaptureIntervalMs int    `json:"capture_interval_ms" yaml:"capture_interval_ms"`

	// Mosaic parameters
	UpdateIntervalMs int   `json:"update_interval_ms" yaml:"update_interval_ms"`
	SquaresPerUpdate int   `json:"squares_per_update" yaml:"squares_per_update"`
	MinSquare        int   `json:"min_square" yaml:"min_square"`
	MaxSquare        int   `json:"max_square" yaml:"max_square"`
	Alignment        int   `json:"alignment" yaml:"alignment"`
	Seed             int64 `json:"seed" yaml:"seed"`

	// Render loop period.
	TickMs int `json:"tick_ms" yaml:"tick_ms"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		Dark:              false,
		Width:             1280,
		Height:            720,
		Source:            SourceScreen,
		CaptureX:          0,
		CaptureY:          0,
		CaptureIntervalMs: 33,
		UpdateIntervalMs:  200,
		SquaresPerUpdate:  20,
		MinSquare:         6,
		MaxSquare:         128,
		Alignment:         32,
		Seed:              42,
		TickMs:            16,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	switch strings.ToLower(strings.TrimSpace(c.Source)) {
	case SourcePattern:
		c.Source = SourcePattern
	default:
		c.Source = SourceScreen
	}
	if c.CaptureX < 0 {
		c.CaptureX = 0
	}
	if c.CaptureY < 0 {
		c.CaptureY = 0
	}
	if c.CaptureIntervalMs <= 0 {
		c.CaptureIntervalMs = 33
	}
	if c.UpdateIntervalMs < 0 {
		c.UpdateIntervalMs = 200
	}
	if c.SquaresPerUpdate < 0 {
		c.SquaresPerUpdate = 20
	}
	if c.MinSquare < 1 {
		c.MinSquare = 1
	}
	if c.MaxSquare < c.MinSquare {
		c.MaxSquare = c.MinSquare
	}
	if c.Alignment < 1 {
		c.Alignment = 32
	}
	if c.TickMs <= 0 {
		c.TickMs = 16
	}
	return nil
}

// MosaicOptions maps the config onto compositor options.
func (c *Config) MosaicOptions() mosaic.Options {
	return mosaic.Options{
		Width:            c.Width,
		Height:           c.Height,
		UpdateInterval:   time.Duration(c.UpdateIntervalMs) * time.Millisecond,
		SquaresPerUpdate: c.SquaresPerUpdate,
		MinSize:          c.MinSquare,
		MaxSize:          c.MaxSquare,
		Alignment:        c.Alignment,
		Seed:             c.Seed,
	}
}

// CaptureInterval is the pause between capture iterations.
func (c *Config) CaptureInterval() time.Duration {
	return time.Duration(c.CaptureIntervalMs) * time.Millisecond
}

// TickInterval is the render loop period.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given JSON or YAML file path. If the file does not
// exist it returns DefaultConfig(). On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if isYAML(path) {
		err = yaml.NewDecoder(f).Decode(cfg)
	} else {
		err = json.NewDecoder(f).Decode(cfg)
	}
	// An empty file decodes to io.EOF and means "all defaults".
	if err != nil && !errors.Is(err, io.EOF) {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, as YAML for .yaml/.yml
// paths and JSON otherwise.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
