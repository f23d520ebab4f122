package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/closet/internal/configs"
	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/vault"

	"github.com/spf13/cobra"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitForce = false
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with the default settings",
	Long: `Writes config.toml with the default key derivation settings.

The global --user and --data-dir flags, when given, are saved as the default
username and data directory.

Examples:
  closet config init
  closet config init --user alice --data-dir ~/Sync/closet`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		settings, err := configs.ResolveSettings()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to resolve settings: %v", err)
		}
		path := settings.ConfigPath()

		if _, err := os.Stat(path); err == nil && !configInitForce {
			fmt.Println(ui.WarningMark() + " A config file already exists at " + ui.Path.Sprint(path))
			fmt.Println(ui.InfoMark() + " Use " + ui.Flag.Sprint("--force") + " to overwrite it")
			return nil
		}

		config := configs.DefaultConfig()
		if userFlag != "" {
			if err := vault.ValidateUsername(userFlag); err != nil {
				return reportError(err)
			}
			config.User.DefaultUsername = userFlag
		}
		if dataDirFlag != "" {
			abs, err := filepath.Abs(dataDirFlag)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to resolve data directory: %v", err)
			}
			config.Storage.DataDir = abs
		}

		Logger.Debugf("Writing config to %s", path)
		if err := configs.SaveConfig(path, config); err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		fmt.Println(ui.SuccessMark() + " Wrote " + ui.Path.Sprint(path))
		return nil
	},
}
