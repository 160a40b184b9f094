package main

import (
	"github.com/aretw0/diagtree/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored tree",
	Long:  `Loads the tree, checks that every question has both answers and prints its size and depth.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := cli.CreateLogger(cfg.Debug, cfg.LogFormat)
		return cli.Validate(cmd.Context(), cfg.Store, logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
