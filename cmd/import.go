package cmd

import (
	"context"

	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/utils"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	importForce            bool
	importDryRun           bool
	importSeparatePassword bool
)

func init() {
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "replace an existing data file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "check the legacy file without writing anything")
	importCmd.Flags().BoolVar(&importSeparatePassword, "separate-password", false, "ask for the legacy file's password separately")
}

func resetImportCommandState() {
	importForce = false
	importDryRun = false
	importSeparatePassword = false
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a data file from the previous version of closet",
	Long: `Converts a legacy data file (data/<username>.json) into the current format.

The legacy file is opened with your password and saved again with a fresh
salt under the same password. Use --separate-password when the legacy file
was protected by a different password. With --password-stdin the new
password is the first line of stdin and the legacy password the second.

Examples:
  closet import data/alice.json --user alice
  closet import old.json --dry-run
  closet import old.json --force --separate-password`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		Logger.Debugf("Flags: force=%t, dry-run=%t, separate-password=%t", importForce, importDryRun, importSeparatePassword)
		ctx := context.Background()

		env, err := loadEnvironment()
		if err != nil {
			return reportError(err)
		}

		password, err := readPassword(env.username, true)
		if err != nil {
			return reportError(err)
		}

		legacyPassword := ""
		if importSeparatePassword {
			legacyPassword, err = readLegacyPassword()
			if err != nil {
				return reportError(err)
			}
		}

		spinner, cleanup := startSpinner("Importing "+args[0]+"...", verbose)
		defer cleanup()

		result, err := workflows.ImportLegacy(ctx, workflows.ImportOptions{
			Path:           args[0],
			Username:       env.username,
			Password:       password,
			LegacyPassword: legacyPassword,
			Force:          importForce,
			DryRun:         importDryRun,
			Vault:          env.vault(),
			Logger:         Logger,
		})
		if err != nil {
			spinner.FinalMSG = formatError(err)
			if isUnexpectedError(err) {
				return reportedError{err}
			}
			return nil
		}

		spinner.FinalMSG = formatImport(result)
		return nil
	},
}

func readLegacyPassword() (string, error) {
	if passwordStdin {
		return utils.ReadPasswordLine(input())
	}
	raw, err := readPassphrase("Password for the legacy file: ")
	if err != nil {
		return "", err
	}
	defer clear(raw)
	return string(raw), nil
}

func formatImport(result *workflows.ImportResult) string {
	summary := utils.Plural(result.Drawers, "drawer") + " and " + utils.Plural(result.Items, "item")
	if result.DryRun {
		msg := ui.InfoMark() + " Dry run: would import " + summary + " into " + ui.Path.Sprint(result.Target)
		if result.Replaced {
			msg += "\n" + ui.WarningMark() + " The existing data file would be replaced"
		}
		return msg
	}

	verb := "Imported "
	if result.Replaced {
		verb = "Replaced existing data file with "
	}
	return ui.SuccessMark() + " " + verb + summary + "\n" +
		ui.InfoMark() + " Saved to " + ui.Path.Sprint(result.Target)
}
