package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/diagtree/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("store", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().String("log-format", "", "")
	addRunFlags(cmd)
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(newTestCommand())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DIAGTREE_SEED", "Flu")
	t.Setenv("DIAGTREE_STORE", "mem://")

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("seed", "Cold"))
	require.NoError(t, cmd.Flags().Set("repeat", "true"))

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Cold", cfg.Seed)
	assert.Equal(t, "mem://", cfg.Store)
	assert.True(t, cfg.Repeat)
}

func TestLoadConfig_InvalidLogFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newTestCommand()
	require.NoError(t, cmd.Flags().Set("log-format", "xml"))

	_, err := loadConfig(cmd)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "diagtree version ")
}
