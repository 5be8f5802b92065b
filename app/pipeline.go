package app

import (
	"image"
	"log/slog"

	"github.com/go-errors/errors"

	"github.com/soocke/pixel-mosaic/config"
	"github.com/soocke/pixel-mosaic/domain/capture"
	"github.com/soocke/pixel-mosaic/domain/mosaic"
)

// Pipeline is the frame path shared by the windowed and headless modes:
// capture service -> frame channel -> compositor, with one buffer pool
// feeding the grabs and collecting dropped or consumed frames.
type Pipeline struct {
	Pool       *mosaic.FramePool
	Channel    *mosaic.FrameChannel
	Compositor *mosaic.Compositor
	Capture    capture.CaptureService
}

// PipelineStats aggregates counters from every pipeline stage.
type PipelineStats struct {
	Capture    capture.CaptureStats
	Channel    mosaic.ChannelStats
	Compositor mosaic.CompositorStats
}

// grabberFor picks the frame source named by cfg.Source. For the screen it
// also verifies that the capture rectangle lies on screen.
func grabberFor(cfg *config.Config, rect image.Rectangle) (capture.Grabber, error) {
	if cfg.Source == config.SourcePattern {
		return capture.NewPatternGrabber(cfg.Seed), nil
	}
	screen, err := capture.ScreenBounds()
	if err != nil {
		return nil, errors.WrapPrefix(err, "screen bounds", 0)
	}
	if !rect.In(screen) {
		return nil, errors.Errorf("capture area %v exceeds screen %v", rect, screen)
	}
	return capture.ScreenGrabber(), nil
}

// BuildPipeline wires the frame path for cfg. Nothing runs until
// Capture.Start is called.
func BuildPipeline(cfg *config.Config, logger *slog.Logger) (*Pipeline, error) {
	rect := image.Rect(cfg.CaptureX, cfg.CaptureY, cfg.CaptureX+cfg.Width, cfg.CaptureY+cfg.Height)
	grabber, err := grabberFor(cfg, rect)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{Pool: mosaic.NewFramePool(cfg.Width, cfg.Height)}
	p.Channel = mosaic.NewFrameChannel(p.Pool)
	comp, err := mosaic.NewCompositor(p.Channel, cfg.MosaicOptions(), logger, mosaic.WithRecycler(p.Pool))
	if err != nil {
		return nil, errors.WrapPrefix(err, "compositor", 0)
	}
	p.Compositor = comp
	p.Capture = capture.NewCaptureService(logger, grabber, p.Channel, p.Pool, rect, cfg.CaptureInterval())
	return p, nil
}

// Stats snapshots all stage counters. Safe from any goroutine.
func (p *Pipeline) Stats() PipelineStats {
	return PipelineStats{
		Capture:    p.Capture.Stats(),
		Channel:    p.Channel.Stats(),
		Compositor: p.Compositor.Stats(),
	}
}

// LogAttrs flattens the stats for the debug runtime logger.
func (s PipelineStats) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Uint64("captures", s.Capture.Captures),
		slog.Uint64("capture_skipped", s.Capture.Skipped),
		slog.Duration("avg_capture", s.Capture.AvgCapture),
		slog.Uint64("published", s.Channel.Published),
		slog.Uint64("drops", s.Channel.Drops),
		slog.Uint64("ticks", s.Compositor.Ticks),
		slog.Uint64("updates", s.Compositor.Updates),
		slog.Uint64("squares", s.Compositor.SquaresCopied),
		slog.Uint64("malformed", s.Compositor.MalformedFrames),
	}
}
