package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/soocke/pixel-mosaic/app"
	"github.com/soocke/pixel-mosaic/ui/images"
)

func init() {
	rootCmd.AddCommand(headlessCmd)
	headlessCmd.Flags().DurationVar(&headlessDuration, `duration`, 10*time.Second, `how long to run; 0 runs until interrupted`)
	headlessCmd.Flags().StringVarP(&headlessOut, `out`, `o`, ``, `write the final canvas as PNG to this path`)
}

var (
	headlessDuration time.Duration
	headlessOut      string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "run capture and compositor without a window",
	Long: `Run capture and compositor without a window, then log the pipeline stats.

With --out the final canvas is written as a PNG.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := NewLogger(os.Stdout, levelFor(cfg.Debug))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if headlessDuration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, headlessDuration)
				defer cancel()
			}
			res, err := app.RunHeadless(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if headlessOut == `` {
				return nil
			}
			if err := os.WriteFile(headlessOut, images.EncodePNG(res.Canvas), 0o644); err != nil {
				return errors.WrapPrefix(err, "write canvas", 0)
			}
			logger.Info("canvas written", "path", headlessOut)
			return nil
		})
	},
}
