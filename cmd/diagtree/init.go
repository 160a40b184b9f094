package main

import (
	"github.com/aretw0/diagtree/internal/cli"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <diagnosis>",
	Short: "Create a tree holding a single diagnosis",
	Long:  `Writes a one-node tree to the store. The tree grows from there as sessions learn.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		logger := cli.CreateLogger(cfg.Debug, cfg.LogFormat)

		return cli.Init(cmd.Context(), cfg.Store, args[0], force, logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Replace an existing tree")
}
