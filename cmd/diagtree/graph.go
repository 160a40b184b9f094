package main

import (
	"context"

	"github.com/aretw0/diagtree/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tree as a Mermaid flowchart",
	Long: `Prints the tree as a Mermaid diagram. With --watch, the diagram is printed again
every time the tree file changes (file stores only).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := cli.CreateLogger(cfg.Debug, cfg.LogFormat)

		out, _ := cmd.Flags().GetString("out")
		rawPath, _ := cmd.Flags().GetString("path")
		path, err := cli.ParsePath(rawPath)
		if err != nil {
			return err
		}
		opts := cli.GraphOptions{Out: out, Path: path}

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			sigCtx := cli.NewSignalContext(context.Background())
			defer sigCtx.Cancel()
			return cli.WatchGraph(sigCtx, cfg.Store, opts, logger, cmd.OutOrStdout())
		}
		return cli.Graph(cmd.Context(), cfg.Store, opts, logger, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("out", "o", "", "Write the diagram to a file instead of stdout")
	graphCmd.Flags().String("path", "", "Highlight a walk, e.g. yes,no,yes")
	graphCmd.Flags().BoolP("watch", "w", false, "Re-render when the tree file changes")
}
