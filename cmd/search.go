package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/spf13/cobra"
)

var searchIgnoreCase bool

func init() {
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "match names regardless of case")
}

func resetSearchCommandState() {
	searchIgnoreCase = false
}

var searchCmd = &cobra.Command{
	Use:   "search PATTERN",
	Short: "Find which drawer an item is in",
	Long: `Searches every drawer for items named PATTERN.

PATTERN is either an exact item name or a glob: * matches any run of
characters, ? a single character, [abc] a set, and {a,b} alternatives.
Quote globs so your shell does not expand them.

Examples:
  closet search pen
  closet search 'pen*'
  closet search -i '{tape,glue}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting search command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := workflows.Search(ctx, session, workflows.SearchOptions{
			Pattern:    args[0],
			IgnoreCase: searchIgnoreCase,
		})
		if err != nil {
			return reportError(err)
		}
		fmt.Print(ui.EnsureNewline(formatSearch(result)))
		return nil
	},
}
