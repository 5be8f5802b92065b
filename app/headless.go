package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/debug"
	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// HeadlessResult is what a headless run leaves behind.
type HeadlessResult struct {
	Stats  PipelineStats
	Canvas *image.RGBA // copy of the final canvas
}

// RunHeadless runs capture and compositor without a window until ctx is
// done, ticking the compositor every cfg.TickInterval with the measured
// wall time since the previous tick.
func RunHeadless(ctx context.Context, cfg *config.Config, logger *slog.Logger) (HeadlessResult, error) {
	p, err := BuildPipeline(cfg, logger)
	if err != nil {
		return HeadlessResult{}, err
	}
	if cfg.Debug {
		stop := debug.StartRuntimeLogger(runtimeLogInterval, logger, func() []slog.Attr {
			return p.Stats().LogAttrs()
		})
		defer stop()
	}

	p.Capture.Start()
	defer p.Capture.Stop()

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()
	last := time.Now()
	var malformed int
	// First tick at elapsed zero.
	if _, err := p.Compositor.Advance(0); err != nil {
		malformed++
	}
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case now := <-ticker.C:
			_, err := p.Compositor.Advance(now.Sub(last))
			last = now
			if err != nil {
				malformed++
			}
		}
	}
	p.Capture.Stop()

	res := HeadlessResult{Stats: p.Stats(), Canvas: canvasCopy(p.Compositor)}
	if logger != nil {
		logger.Info("headless run finished",
			"updates", res.Stats.Compositor.Updates,
			"squares", res.Stats.Compositor.SquaresCopied,
			"captures", res.Stats.Capture.Captures,
			"drops", res.Stats.Channel.Drops,
			"malformed", malformed,
		)
	}
	return res, nil
}

func canvasCopy(c *mosaic.Compositor) *image.RGBA {
	opts := c.Options()
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	copy(img.Pix, c.Canvas())
	return img
}
