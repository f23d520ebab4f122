package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add and remove items in a drawer",
}

func init() {
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemRemoveCmd)

	itemAddCmd.SetFlagErrorFunc(itemAddFlagError)
}

// itemAddFlagError turns a negative quantity that pflag took for a
// shorthand flag back into a quantity error.
func itemAddFlagError(_ *cobra.Command, err error) error {
	msg := err.Error()
	if idx := strings.LastIndex(msg, " in -"); idx >= 0 {
		arg := msg[idx+len(" in "):]
		if _, convErr := strconv.Atoi(arg); convErr == nil {
			return reportError(fmt.Errorf("%w: %w: got %s", kerrors.ErrValidation, kerrors.ErrInvalidQuantity, arg))
		}
	}
	return reportError(fmt.Errorf("%w: %v, put -- before arguments starting with '-'", kerrors.ErrValidation, err))
}

func resetItemCommandState() {}

var itemAddCmd = &cobra.Command{
	Use:   "add DRAWER ITEM QUANTITY",
	Short: "Add an item to a drawer",
	Long: `Adds an item to the end of an existing drawer.

QUANTITY must be a whole number of at least 1. Adding an item whose name is
already in the drawer adds a second entry; it does not change the first.

Examples:
  closet item add Top clip 10
  closet item add "Tool box" "allen key" 12`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting item add command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := workflows.AddItem(ctx, session, workflows.AddItemOptions{
			Drawer:   args[0],
			Name:     args[1],
			Quantity: args[2],
		})
		if err != nil {
			return reportError(err)
		}

		if err := commitSession(ctx, session); err != nil {
			return reportError(err)
		}
		fmt.Println(formatItemAdded(result))
		return nil
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:     "remove DRAWER ITEM",
	Aliases: []string{"rm"},
	Short:   "Remove an item from a drawer",
	Long: `Removes the first item with the given name from a drawer.

The drawer is kept even when its last item is removed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting item remove command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := workflows.RemoveItem(ctx, session, workflows.RemoveItemOptions{
			Drawer: args[0],
			Name:   args[1],
		})
		if err != nil {
			return reportError(err)
		}

		if err := commitSession(ctx, session); err != nil {
			return reportError(err)
		}
		fmt.Println(formatItemRemoved(result))
		return nil
	},
}
