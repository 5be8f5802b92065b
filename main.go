package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/soocke/pixel-mosaic/app"
	"github.com/soocke/pixel-mosaic/config"
)

var rootCmd = &cobra.Command{
	Use:          "pixel-mosaic",
	Short:        "progressively mosaic a live screen region",
	Long:         "Capture a screen region and patch it square by square into a persistent canvas.",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := NewLogger(os.Stdout, levelFor(cfg.Debug))
			a := app.NewApp("Pixel Mosaic", 900, 900, cfg, flags.configPath, logger)
			return a.Start()
		})
	},
}

var flags struct {
	configPath string
	debug      bool
	seed       int64
	source     string
	width      int
	height     int
}

func init() {
	cobra.EnablePrefixMatching = true
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, `config`, `c`, `config.json`, `config file (.json, .yaml or .yml)`)
	pf.BoolVar(&flags.debug, `debug`, false, `debug logging, runtime stats and error stacks`)
	pf.Int64Var(&flags.seed, `seed`, 42, `square placement seed`)
	pf.StringVar(&flags.source, `source`, config.SourceScreen, `frame source: screen or pattern`)
	pf.IntVar(&flags.width, `width`, 0, `canvas and capture width in pixels`)
	pf.IntVar(&flags.height, `height`, 0, `canvas and capture height in pixels`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, errors.WrapPrefix(err, "load "+flags.configPath, 0)
	}
	applyFlags(cfg, func(name string) bool { return cmd.Flags().Changed(name) })
	_ = cfg.Validate()
	// debug from the file also enables error stacks.
	flags.debug = cfg.Debug
	return cfg, nil
}

func applyFlags(cfg *config.Config, changed func(string) bool) {
	if changed(`debug`) {
		cfg.Debug = flags.debug
	}
	if changed(`seed`) {
		cfg.Seed = flags.seed
	}
	if changed(`source`) {
		cfg.Source = flags.source
	}
	if changed(`width`) {
		cfg.Width = flags.width
	}
	if changed(`height`) {
		cfg.Height = flags.height
	}
}

func run(fn func() error) {
	err := fn()
	if err == nil {
		return
	}
	if stack, ok := errorStack(err); ok {
		fmt.Fprintln(os.Stderr, stack)
		os.Exit(1)
	}
	log.Fatal(err)
}

// errorStack returns the stack of err when debugging is on and err carries one.
func errorStack(err error) (string, bool) {
	stackFramer, ok := err.(interface{ ErrorStack() string })
	if !flags.debug || !ok {
		return "", false
	}
	return stackFramer.ErrorStack(), true
}
