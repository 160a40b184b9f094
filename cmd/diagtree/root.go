package main

import (
	"fmt"
	"os"

	"github.com/aretw0/diagtree/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "diagtree",
	Short: "diagtree is a yes/no diagnosis assistant that learns from its mistakes",
	Long: `diagtree walks you through yes/no questions stored in a decision tree until it
reaches a diagnosis. When the diagnosis is wrong, it asks what the right one is
and how to tell them apart, grows the tree and saves it.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("store", "", "Tree location: path, file://, mem://, redis://, badger:// or sqlite:// (default "+config.DefaultStore+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// loadConfig reads the configuration and applies the flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store, _ = flags.GetString("store")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed, _ = flags.GetString("seed")
	}
	if flags.Lookup("repeat") != nil && flags.Changed("repeat") {
		cfg.Repeat, _ = flags.GetBool("repeat")
	}
	if flags.Lookup("metrics-file") != nil && flags.Changed("metrics-file") {
		cfg.MetricsFile, _ = flags.GetString("metrics-file")
	}

	return cfg, cfg.Validate()
}
