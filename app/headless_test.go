package app

import (
	"context"
	"testing"
	"time"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/ui/theme"
)

func patternConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Source = config.SourcePattern
	cfg.Width, cfg.Height = 64, 48
	cfg.CaptureIntervalMs = 1
	cfg.UpdateIntervalMs = 5
	cfg.TickMs = 2
	cfg.MinSquare, cfg.MaxSquare = 8, 16
	cfg.Alignment = 8
	return cfg
}

func TestRunHeadless_PatternSourceFillsCanvas(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	res, err := RunHeadless(ctx, patternConfig(), nil)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	st := res.Stats
	if st.Capture.Captures == 0 || st.Channel.Published == 0 {
		t.Fatalf("capture never published: %+v", st)
	}
	if st.Compositor.Updates == 0 || st.Compositor.SquaresCopied == 0 {
		t.Fatalf("compositor never updated: %+v", st.Compositor)
	}
	if st.Compositor.MalformedFrames != 0 {
		t.Fatalf("pattern frames rejected: %+v", st.Compositor)
	}
	if b := res.Canvas.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("unexpected canvas bounds %v", b)
	}
	nonZero := false
	for _, v := range res.Canvas.Pix {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Fatalf("canvas still blank after run")
	}
}

func TestBuildPipeline_InvalidOptions(t *testing.T) {
	cfg := patternConfig()
	cfg.Width = 0 // bypasses Validate clamping
	if _, err := BuildPipeline(cfg, nil); err == nil {
		t.Fatalf("expected error for zero-width canvas")
	}
}

func TestPipelineStats_LogAttrs(t *testing.T) {
	p, err := BuildPipeline(patternConfig(), nil)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	attrs := p.Stats().LogAttrs()
	keys := map[string]bool{}
	for _, a := range attrs {
		keys[a.Key] = true
	}
	for _, k := range []string{"captures", "drops", "updates", "malformed"} {
		if !keys[k] {
			t.Fatalf("missing attr %q in %v", k, attrs)
		}
	}
}

func TestContainer_ToggleOverlayFlipsState(t *testing.T) {
	c, err := BuildContainer(patternConfig(), nil, "", theme.For(false))
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	if !c.ToggleOverlay() || !c.Regions.ShowOverlay() {
		t.Fatalf("first toggle should enable the overlay")
	}
	if c.ToggleOverlay() || c.Regions.ShowOverlay() {
		t.Fatalf("second toggle should disable the overlay")
	}
}
