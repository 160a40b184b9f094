package main

import (
	"context"
	"errors"

	"github.com/aretw0/diagtree/internal/cli"
	"github.com/aretw0/diagtree/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive diagnosis session",
	Long: `Loads the tree from the store and asks its questions until a diagnosis is reached.
A rejected diagnosis can be corrected on the spot; the tree is saved right away.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		formMode, _ := cmd.Flags().GetBool("form")
		if jsonMode && formMode {
			return errors.New("--json and --form cannot be used together")
		}

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunSession(sigCtx, cli.RunOptions{
			Config: cfg,
			JSON:   jsonMode,
			Form:   formMode,
			Rich:   !jsonMode && tui.Interactive(),
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addRunFlags(runCmd)
	addRunFlags(rootCmd)

	// 'run' is the default when no command is provided
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = runCmd.RunE
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("seed", "", "Diagnosis to start from when the store holds no tree")
	cmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	cmd.Flags().Bool("form", false, "Ask through interactive forms")
	cmd.Flags().Bool("repeat", false, "Offer another diagnosis after each one")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file when the session ends")
}
