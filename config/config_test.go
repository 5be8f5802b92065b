package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_JSONAndYAML(t *testing.T) {
	for _, name := range []string{"cfg.json", "cfg.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			want := DefaultConfig()
			want.Width, want.Height = 320, 240
			want.Seed = 7
			want.Source = SourcePattern
			if err := want.Save(path); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_YAMLPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yml")
	if err := os.WriteFile(path, []byte("width: 640\nseed: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 640 || cfg.Seed != 3 || cfg.Height != 720 || cfg.Alignment != 32 {
		t.Fatalf("unexpected merge result: %+v", cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || cfg.Width != 1280 {
		t.Fatalf("expected defaults alongside error, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	c := &Config{MinSquare: 40, MaxSquare: 10, Alignment: 0, Source: " PATTERN "}
	_ = c.Validate()
	if c.Width != 1280 || c.Height != 720 {
		t.Fatalf("dimensions not defaulted: %dx%d", c.Width, c.Height)
	}
	if c.MaxSquare != 40 {
		t.Fatalf("max square should follow min, got %d", c.MaxSquare)
	}
	if c.Alignment != 32 || c.TickMs != 16 || c.CaptureIntervalMs != 33 {
		t.Fatalf("unexpected clamps: %+v", c)
	}
	if c.Source != SourcePattern {
		t.Fatalf("source not normalised: %q", c.Source)
	}
}

func TestMosaicOptions(t *testing.T) {
	c := DefaultConfig()
	want := mosaic.Options{
		Width:            1280,
		Height:           720,
		UpdateInterval:   200 * time.Millisecond,
		SquaresPerUpdate: 20,
		MinSize:          6,
		MaxSize:          128,
		Alignment:        32,
		Seed:             42,
	}
	if diff := cmp.Diff(want, c.MosaicOptions()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if err := c.MosaicOptions().Validate(); err != nil {
		t.Fatalf("default options invalid: %v", err)
	}
}

func TestLoad_EmptyFileReturnsDefaults(t *testing.T) {
	for _, name := range []string{"empty.yaml", "empty.yml", "empty.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("empty file should load defaults, got %v", err)
			}
			if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
				t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
