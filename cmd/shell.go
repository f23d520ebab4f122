package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/closet/internal/errors"
	"github.com/PolarWolf314/closet/internal/inventory"
	"github.com/PolarWolf314/closet/internal/ui"
	"github.com/PolarWolf314/closet/internal/utils"
	"github.com/PolarWolf314/closet/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const shellPrompt = "closet> "

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open your closet for a series of edits",
	Long: `Opens an interactive session. The password is asked for once, edits are
kept in memory and the closet is saved when you type exit or press Ctrl-D.
Use save to write changes without leaving.

Type help inside the shell for the list of commands. Names containing
spaces can be quoted: add "Tool box" "allen key" 12`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting shell command")
	ctx := context.Background()

	env, session, err := openSession(ctx)
	if err != nil {
		return reportError(err)
	}
	defer session.Close()

	if utils.IsTerminal() && !passwordStdin {
		fmt.Println()
		figure.NewColorFigure("closet", "alligator2", "green", true).Print()
		fmt.Println()
	}
	fmt.Println(ui.SuccessMark() + " Opened the closet of " + ui.Drawer.Sprint(env.username) +
		". Type " + ui.Code.Sprint("help") + " for commands.")

	sh := &shell{session: session}
	for {
		eof, err := sh.run(ctx)
		if err != nil {
			return err
		}

		_, cleanup := startSpinner("Saving closet...", verbose)
		result, err := workflows.EndShell(ctx, session)
		cleanup()
		if err != nil {
			if eof {
				return reportError(err)
			}
			// Edits are still in memory and the save can be retried.
			fmt.Println(formatError(err))
			fmt.Println(ui.InfoMark() + " Nothing was lost. Fix the problem, then type " +
				ui.Code.Sprint("save") + " or " + ui.Code.Sprint("exit") + " again")
			sh.done = false
			continue
		}

		if result.Saved {
			fmt.Println(ui.SuccessMark() + " Saved " + utils.Plural(result.Drawers, "drawer") +
				" and " + utils.Plural(result.Items, "item"))
		} else {
			fmt.Println(ui.InfoMark() + " No changes to save")
		}
		return nil
	}
}

// run reads and dispatches lines until exit or end of input. eof reports
// which one ended it.
func (sh *shell) run(ctx context.Context) (eof bool, err error) {
	for !sh.done {
		fmt.Print(shellPrompt)
		line, err := readLine()
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return true, nil
		}
		if err != nil {
			return false, Logger.ErrorfAndReturn("Failed to read input: %v", err)
		}

		words, err := utils.SplitWords(line)
		if err != nil {
			fmt.Println(ui.ErrorMark() + " " + err.Error())
			continue
		}
		if len(words) == 0 {
			continue
		}

		if err := sh.dispatch(ctx, words); err != nil {
			fmt.Println(formatError(err))
		}
	}
	return false, nil
}

// shell holds the state of one interactive session.
type shell struct {
	session *workflows.Session
	done    bool
}

type shellCommand struct {
	usage   string
	summary string
	// minArgs and maxArgs bound the positional arguments; maxArgs < 0 means
	// no limit.
	minArgs, maxArgs int
	flags            func(fs *pflag.FlagSet)
	run              func(ctx context.Context, sh *shell, fs *pflag.FlagSet, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"create": {
			usage: "create NAME ITEM=QTY... [-f]", summary: "create a drawer, -f replaces an existing one",
			minArgs: 2, maxArgs: -1, flags: forceFlag, run: shellCreate,
		},
		"add": {
			usage: "add DRAWER ITEM QTY", summary: "add an item to a drawer",
			minArgs: 3, maxArgs: 3, run: shellAdd,
		},
		"remove": {
			usage: "remove DRAWER ITEM", summary: "remove the first item with that name",
			minArgs: 2, maxArgs: 2, run: shellRemove,
		},
		"drop": {
			usage: "drop NAME [-f]", summary: "remove a drawer and its items",
			minArgs: 1, maxArgs: 1, flags: forceFlag, run: shellDrop,
		},
		"show": {
			usage: "show NAME", summary: "show a drawer's items",
			minArgs: 1, maxArgs: 1, run: shellShow,
		},
		"list": {
			usage: "list", summary: "list all drawers",
			minArgs: 0, maxArgs: 0, run: shellList,
		},
		"search": {
			usage: "search PATTERN [-i]", summary: "find items by name or glob",
			minArgs: 1, maxArgs: 1, run: shellSearch,
			flags: func(fs *pflag.FlagSet) {
				fs.BoolP("ignore-case", "i", false, "match names regardless of case")
			},
		},
		"save": {
			usage: "save", summary: "write changes now",
			minArgs: 0, maxArgs: 0, run: shellSave,
		},
		"help": {
			usage: "help", summary: "show this list",
			minArgs: 0, maxArgs: 0, run: shellHelp,
		},
		"exit": {
			usage: "exit", summary: "save and leave (also quit, Ctrl-D)",
			minArgs: 0, maxArgs: 0, run: shellExit,
		},
	}
	shellCommands["quit"] = shellCommands["exit"]
}

func forceFlag(fs *pflag.FlagSet) {
	fs.BoolP("force", "f", false, "do not ask for confirmation")
}

// dispatch runs one shell line. Errors are for the user and never end the
// session.
func (sh *shell) dispatch(ctx context.Context, words []string) error {
	name := strings.ToLower(words[0])
	command, ok := shellCommands[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q, type help for the list", kerrors.ErrValidation, words[0])
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	args := words[1:]
	// Commands without flags take every word as an argument, -3 included.
	if command.flags != nil {
		command.flags(fs)
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("%w: %v, put -- before arguments starting with '-', usage: %s",
				kerrors.ErrValidation, err, command.usage)
		}
		args = fs.Args()
	}

	if len(args) < command.minArgs || (command.maxArgs >= 0 && len(args) > command.maxArgs) {
		return fmt.Errorf("%w: usage: %s", kerrors.ErrValidation, command.usage)
	}

	Logger.Debugf("Shell command %s with %d arguments", name, len(args))
	return command.run(ctx, sh, fs, args)
}

func shellCreate(ctx context.Context, sh *shell, fs *pflag.FlagSet, args []string) error {
	force, _ := fs.GetBool("force")

	items := make([]inventory.Item, 0, len(args)-1)
	for _, arg := range args[1:] {
		item, err := inventory.ParseAssignment(arg)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	result, err := createDrawer(ctx, sh.session, args[0], items, force)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println(ui.InfoMark() + " Left " + ui.Drawer.Sprint(args[0]) + " unchanged")
		return nil
	}
	fmt.Println(formatCreated(result))
	return nil
}

func shellAdd(ctx context.Context, sh *shell, _ *pflag.FlagSet, args []string) error {
	result, err := workflows.AddItem(ctx, sh.session, workflows.AddItemOptions{
		Drawer:   args[0],
		Name:     args[1],
		Quantity: args[2],
	})
	if err != nil {
		return err
	}
	fmt.Println(formatItemAdded(result))
	return nil
}

func shellRemove(ctx context.Context, sh *shell, _ *pflag.FlagSet, args []string) error {
	result, err := workflows.RemoveItem(ctx, sh.session, workflows.RemoveItemOptions{
		Drawer: args[0],
		Name:   args[1],
	})
	if err != nil {
		return err
	}
	fmt.Println(formatItemRemoved(result))
	return nil
}

func shellDrop(ctx context.Context, sh *shell, fs *pflag.FlagSet, args []string) error {
	force, _ := fs.GetBool("force")
	result, err := removeDrawer(ctx, sh.session, args[0], force)
	if err != nil {
		return err
	}
	if result == nil {
		fmt.Println(ui.InfoMark() + " Kept " + ui.Drawer.Sprint(args[0]))
		return nil
	}
	fmt.Println(formatDrawerRemoved(result))
	return nil
}

func shellShow(ctx context.Context, sh *shell, _ *pflag.FlagSet, args []string) error {
	result, err := workflows.ShowDrawer(ctx, sh.session, args[0])
	if err != nil {
		return err
	}
	fmt.Print(formatDrawer(result.Name, result.Items))
	return nil
}

func shellList(ctx context.Context, sh *shell, _ *pflag.FlagSet, _ []string) error {
	result, err := workflows.ListDrawers(ctx, sh.session)
	if err != nil {
		return err
	}
	fmt.Print(ui.EnsureNewline(formatDrawerList(result)))
	return nil
}

func shellSearch(ctx context.Context, sh *shell, fs *pflag.FlagSet, args []string) error {
	ignoreCase, _ := fs.GetBool("ignore-case")
	result, err := workflows.Search(ctx, sh.session, workflows.SearchOptions{
		Pattern:    args[0],
		IgnoreCase: ignoreCase,
	})
	if err != nil {
		return err
	}
	fmt.Print(ui.EnsureNewline(formatSearch(result)))
	return nil
}

func shellSave(ctx context.Context, sh *shell, _ *pflag.FlagSet, _ []string) error {
	if !sh.session.Dirty() {
		fmt.Println(ui.InfoMark() + " No changes to save")
		return nil
	}
	if err := commitSession(ctx, sh.session); err != nil {
		return err
	}
	fmt.Println(ui.SuccessMark() + " Saved")
	return nil
}

func shellHelp(_ context.Context, _ *shell, _ *pflag.FlagSet, _ []string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		if name != "quit" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{shellCommands[name].usage, shellCommands[name].summary})
	}
	cols := []ui.Column{
		{Format: ui.Code, AlignLeft: true},
		{Format: ui.Muted, AlignLeft: true},
	}
	fmt.Print(ui.Columns("  ", cols, rows))
	return nil
}

func shellExit(_ context.Context, sh *shell, _ *pflag.FlagSet, _ []string) error {
	sh.done = true
	return nil
}
