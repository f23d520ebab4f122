package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	drawerCreateForce bool
	drawerRemoveForce bool
)

var drawerCmd = &cobra.Command{
	Use:   "drawer",
	Short: "Create, show, list and remove drawers",
}

func init() {
	drawerCreateCmd.Flags().BoolVarP(&drawerCreateForce, "force", "f", false, "replace an existing drawer without asking")
	drawerRemoveCmd.Flags().BoolVarP(&drawerRemoveForce, "force", "f", false, "remove without asking")

	drawerCmd.AddCommand(drawerCreateCmd)
	drawerCmd.AddCommand(drawerShowCmd)
	drawerCmd.AddCommand(drawerListCmd)
	drawerCmd.AddCommand(drawerRemoveCmd)
}

func resetDrawerCommandState() {
	drawerCreateForce = false
	drawerRemoveForce = false
}

var drawerCreateCmd = &cobra.Command{
	Use:   "create NAME ITEM=QUANTITY...",
	Short: "Create a drawer with its first items",
	Long: `Creates a drawer holding the given items.

If a drawer with that name already exists you are asked whether to replace
it. Replacing discards the old contents; nothing is merged.

Examples:
  closet drawer create Top pen=3 stapler=1
  closet drawer create "Tool box" "allen key=12" --force`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting drawer create command")
		ctx := context.Background()

		items := make([]inventory.Item, 0, len(args)-1)
		for _, arg := range args[1:] {
			item, err := inventory.ParseAssignment(arg)
			if err != nil {
				return reportError(err)
			}
			items = append(items, item)
		}

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := createDrawer(ctx, session, args[0], items, drawerCreateForce)
		if err != nil {
			return reportError(err)
		}
		if result == nil {
			fmt.Println(ui.InfoMark() + " Left " + ui.Drawer.Sprint(args[0]) + " unchanged")
			return nil
		}

		if err := commitSession(ctx, session); err != nil {
			return reportError(err)
		}
		fmt.Println(formatCreated(result))
		return nil
	},
}

// createDrawer creates the drawer, asking before replacing an existing one
// unless force is set. A nil result with no error means the user declined.
func createDrawer(ctx context.Context, session *workflows.Session, name string, items []inventory.Item, force bool) (*workflows.CreateDrawerResult, error) {
	opts := workflows.CreateDrawerOptions{Name: name, Items: items, Overwrite: force}
	result, err := workflows.CreateDrawer(ctx, session, opts)
	if !errors.Is(err, kerrors.ErrDrawerExists) {
		return result, err
	}

	if !confirm(fmt.Sprintf("Drawer %s already exists. Replace its contents?", ui.Drawer.Sprint(name))) {
		return nil, nil
	}
	opts.Overwrite = true
	return workflows.CreateDrawer(ctx, session, opts)
}

var drawerShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show the items in a drawer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting drawer show command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := workflows.ShowDrawer(ctx, session, args[0])
		if err != nil {
			return reportError(err)
		}
		fmt.Print(formatDrawer(result.Name, result.Items))
		return nil
	},
}

var drawerListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all drawers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting drawer list command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		result, err := workflows.ListDrawers(ctx, session)
		if err != nil {
			return reportError(err)
		}
		fmt.Print(ui.EnsureNewline(formatDrawerList(result)))
		return nil
	},
}

var drawerRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a drawer and everything in it",
	Long: `Removes a drawer and all of its items.

The drawer's contents are shown and you are asked to confirm unless
--force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting drawer remove command")
		ctx := context.Background()

		_, session, err := openSession(ctx)
		if err != nil {
			return reportError(err)
		}
		defer session.Close()

		removed, err := removeDrawer(ctx, session, args[0], drawerRemoveForce)
		if err != nil {
			return reportError(err)
		}
		if removed == nil {
			fmt.Println(ui.InfoMark() + " Kept " + ui.Drawer.Sprint(args[0]))
			return nil
		}

		if err := commitSession(ctx, session); err != nil {
			return reportError(err)
		}
		fmt.Println(formatDrawerRemoved(removed))
		return nil
	},
}

// removeDrawer shows the drawer and asks before removing it unless force is
// set. A nil result with no error means the user declined.
func removeDrawer(ctx context.Context, session *workflows.Session, name string, force bool) (*workflows.RemoveDrawerResult, error) {
	if !force {
		shown, err := workflows.ShowDrawer(ctx, session, name)
		if err != nil {
			return nil, err
		}
		fmt.Print(formatDrawer(shown.Name, shown.Items))
		if !confirm("Remove this drawer?") {
			return nil, nil
		}
	}
	return workflows.RemoveDrawer(ctx, session, name)
}
