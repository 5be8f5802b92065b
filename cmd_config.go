package main

import (
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() { rootCmd.AddCommand(configCmd) }

var configCmd = &cobra.Command{
	Use:   "config <path>",
	Short: "write the effective configuration",
	Long: `Write the effective configuration (file values plus flags) to path.

The format follows the extension: .yaml and .yml write YAML, anything else JSON.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		run(func() error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Save(args[0]); err != nil {
				return errors.WrapPrefix(err, "save "+args[0], 0)
			}
			return nil
		})
	},
}
