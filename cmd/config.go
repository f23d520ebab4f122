package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage closet configuration",
	Long: `Provides commands for viewing and creating config.toml.

The config file sets the data directory, the default username and the key
derivation cost used when files are saved.

Examples:
  # Write a config file with the defaults
  closet config init

  # Show the effective configuration
  closet config show`,
}

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

func resetConfigCommandState() {
	resetConfigShowState()
	resetConfigInitState()
}
