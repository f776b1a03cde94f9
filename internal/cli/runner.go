package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/surface"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// usageError marks failures caused by how the command was invoked (exit 2).
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return &usageError{msg: fmt.Sprintf(format, a...)} }

// usageArgs tags positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{msg: err.Error()}
		}
		return nil
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue *usageError
	if errors.As(err, &ue) {
		ui.Hint(stderr, "Run `tada --help` for usage, `tada ls` to see ids.")
		return 2
	}
	return 1
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var group bool

	root := &cobra.Command{
		Use:   "tada",
		Short: "tada - a tiny task list",
		Long: `tada keeps a short task list in a JSON file and edits it in the terminal.

Run without a subcommand for the interactive editor.

Examples:
  tada add "Buy milk"
  tada ls
  tada done 2
  tada edit 1 "Buy oat milk"
  tada rm 3`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := open(cmd.Flags())
			if err != nil {
				return err
			}
			defer a.Close()
			if err := tui.Run(a.root, a.view); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
	config.RegisterFlags(root.PersistentFlags())

	addCmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new task (text can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return usagef("add: empty text")
			}
			return withApp(cmd, func(a *app) error {
				a.submit(text)
				if err := a.saved(); err != nil {
					return err
				}
				items := a.coord.Items()
				ui.OK(stdout, fmt.Sprintf("added #%d", items[len(items)-1].ID))
				return nil
			})
		},
	}

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				fmt.Fprintln(stdout, listing(a, group))
				return nil
			})
		},
	}
	lsCmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle done for the task with id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRow(cmd, stdout, args[0], "toggled", func(a *app, row *surface.Node) {
				a.toggle(row)
			})
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove the task with id",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRow(cmd, stdout, args[0], "removed", func(a *app, row *surface.Node) {
				a.remove(row)
			})
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of the task with id",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if text == "" {
				return usagef("edit: empty text")
			}
			return withRow(cmd, stdout, args[0], "edited", func(a *app, row *surface.Node) {
				a.edit(row, text)
			})
		},
	}

	root.AddCommand(addCmd, lsCmd, doneCmd, rmCmd, editCmd)
	return root
}

func withApp(cmd *cobra.Command, fn func(*app) error) error {
	a, err := open(cmd.Flags())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// withRow applies fn to the row for rawID and reports "<verb> #id" once the change is saved.
func withRow(cmd *cobra.Command, stdout io.Writer, rawID, verb string, fn func(a *app, row *surface.Node)) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return usagef("not a number: %s", rawID)
	}
	return withApp(cmd, func(a *app) error {
		row, ok := a.coord.RowByID(id)
		if !ok {
			return usagef("no task with id %d (have %d tasks)", id, len(a.coord.Items()))
		}
		fn(a, row)
		if err := a.saved(); err != nil {
			return err
		}
		ui.OK(stdout, fmt.Sprintf("%s #%d", verb, id))
		return nil
	})
}

// listing paints every row with its id, optionally grouped by pending/done.
func listing(a *app, group bool) string {
	t := ui.Current()
	items := a.coord.Items()
	rows := a.view.Rows()

	done := 0
	var all, pending, finished []string
	for i, row := range rows {
		line := fmt.Sprintf("%s %s", t.Muted.Render(fmt.Sprintf("%3d", items[i].ID)), ui.Paint(row, ui.PaintOptions{}))
		all = append(all, line)
		if items[i].Complete {
			done++
			finished = append(finished, line)
		} else {
			pending = append(pending, line)
		}
	}

	lines := []string{ui.Header(done, len(items)-done), ui.ProgressBar(done, len(items), 28), ""}
	switch {
	case len(items) == 0:
		lines = append(lines, t.Muted.Render("No tasks yet. Add one with `tada add <text>`."))
	case group:
		lines = append(lines, t.Pending.Render("Pending"))
		lines = append(lines, pending...)
		lines = append(lines, "", t.Success.Render("Done"))
		lines = append(lines, finished...)
	default:
		lines = append(lines, all...)
	}
	return ui.Panel(lines)
}
