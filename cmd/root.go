package cmd

import (
	"bufio"
	"fmt"
	"io"

	logger "github.com/PolarWolf314/closet/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose       bool
	debug         bool
	userFlag      string
	dataDirFlag   string
	passwordStdin bool
	Logger        logger.Logger

	// stdin is shared by password, confirmation and shell input so that
	// lines buffered by one reader are not lost to the next.
	stdin *bufio.Reader

	RootCmd = &cobra.Command{
		Use:   "closet",
		Short: "closet - a password-protected inventory of drawers and the items in them",
		Long: `closet keeps track of what is in your drawers, boxes and shelves.

Each user's inventory is stored in a single encrypted file. The password is
never stored; it is used to derive the encryption key each time the file is
opened or saved.

Examples:
  closet drawer create Top pen=3 stapler=1
  closet item add Top clip 10
  closet search 'pen*'
  closet shell`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			stdin = bufio.NewReader(cmd.InOrStdin())
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to closet! Run 'closet --help' to see available commands.")
		},
	}
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&debug, "debug", "d", false, "enable debug output")
	flags.StringVarP(&userFlag, "user", "u", "", "username whose closet to open (default: config or OS user)")
	flags.StringVar(&dataDirFlag, "data-dir", "", "directory holding the data files")
	flags.BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")

	RootCmd.AddCommand(drawerCmd)
	RootCmd.AddCommand(itemCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(shellCmd)
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(doctorCmd)
	RootCmd.AddCommand(ConfigCmd)
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	userFlag = ""
	dataDirFlag = ""
	passwordStdin = false
	stdin = nil
	resetDrawerCommandState()
	resetItemCommandState()
	resetSearchCommandState()
	resetImportCommandState()
	resetLogCommandState()
	resetDoctorCommandState()
	resetConfigCommandState()
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState clears the Changed marker on every flag so a previous
// test's flags do not leak into the next.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		_ = flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetCobraFlagState(child)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// input returns the shared stdin reader, creating it if a command ran
// without the root pre-run.
func input() *bufio.Reader {
	if stdin == nil {
		stdin = bufio.NewReader(RootCmd.InOrStdin())
	}
	return stdin
}

// readLine reads one line from the shared stdin reader without its line
// ending. io.EOF is returned only when no data at all was left.
func readLine() (string, error) {
	line, err := input().ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
