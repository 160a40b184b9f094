package main

import (
	"github.com/aretw0/diagtree/internal/cli"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Copy the tree from one store to another",
	Example: `  diagtree copy --from diagnosis_tree.txt --to redis://localhost:6379/0
  diagtree copy --from sqlite://trees.db --to badger:///tmp/tree`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		logger := cli.CreateLogger(cfg.Debug, cfg.LogFormat)

		return cli.Copy(cmd.Context(), from, to, logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)

	copyCmd.Flags().String("from", "", "Source store")
	copyCmd.Flags().String("to", "", "Destination store")
	_ = copyCmd.MarkFlagRequired("from")
	_ = copyCmd.MarkFlagRequired("to")
}
