package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/PolarWolf314/closet/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

// effectiveConfig is what config show prints: the file's settings with
// flags, environment and defaults applied.
type effectiveConfig struct {
	ConfigFile string `json:"config_file"`
	FileExists bool   `json:"file_exists"`
	DataDir    string `json:"data_dir"`
	Username   string `json:"username"`
	KDF        struct {
		Time      uint32 `json:"time"`
		MemoryKiB uint32 `json:"memory_kib"`
		Threads   uint8  `json:"threads"`
	} `json:"kdf"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the configuration closet is using.

Values come from the command line, then CLOSET_DATA_DIR, then config.toml,
then the built-in defaults.

Examples:
  closet config show
  closet config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		env, err := loadEnvironment()
		if err != nil {
			return reportError(err)
		}

		shown := effectiveConfig{
			ConfigFile: env.settings.ConfigPath(),
			DataDir:    env.dataDir,
			Username:   env.username,
		}
		if _, err := os.Stat(shown.ConfigFile); err == nil {
			shown.FileExists = true
		}
		shown.KDF.Time = env.params.Time
		shown.KDF.MemoryKiB = env.params.MemoryKiB
		shown.KDF.Threads = env.params.Threads

		if configShowJSON {
			Logger.Debugf("Outputting config as JSON")
			output, err := json.MarshalIndent(shown, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(output))
			return nil
		}

		outputConfigText(shown)
		return nil
	},
}

func outputConfigText(shown effectiveConfig) {
	fileNote := ""
	if !shown.FileExists {
		fileNote = color.HiBlackString(" (not created, using defaults)")
	}
	fmt.Println(color.CyanString("Configuration") + " " + ui.Path.Sprint(shown.ConfigFile) + fileNote)
	fmt.Println()
	fmt.Printf("  %-16s %s\n", "Data directory:", ui.Path.Sprint(shown.DataDir))
	fmt.Printf("  %-16s %s\n", "Username:", color.GreenString(shown.Username))
	fmt.Println()
	fmt.Println(color.CyanString("Key derivation") + " (Argon2id):")
	fmt.Printf("  %-16s %d\n", "Time:", shown.KDF.Time)
	fmt.Printf("  %-16s %d KiB\n", "Memory:", shown.KDF.MemoryKiB)
	fmt.Printf("  %-16s %d\n", "Threads:", shown.KDF.Threads)

	if !shown.FileExists {
		fmt.Println()
		fmt.Println(ui.InfoMark() + " Run " + ui.Code.Sprint("closet config init") + " to create it")
	}
}
