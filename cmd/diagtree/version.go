package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/diagtree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of diagtree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "diagtree version %s\n", strings.TrimSpace(diagtree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
