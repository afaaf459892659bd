package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

// newToggleCommand creates the toggle command.
func newToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <path>",
		Short: "Flip a task's completed flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{Path: p})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", checkbox(out.Change.Completed), out.Change.Name, p)
			return nil
		},
	}
}

// newCheckCommand creates the check command, or uncheck when completed is false.
func newCheckCommand(c *app.Container, completed bool) *cobra.Command {
	use, short := "check", "Mark a task or every task in a group completed"
	if !completed {
		use, short = "uncheck", "Mark a task or every task in a group not completed"
	}

	return &cobra.Command{
		Use:   use + " <path>",
		Short: short,
		Long: short + `.

A task or subtask path sets that task only. A category, phase or
subcategory path sets every task below it, nested ones included.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.SetCompletedUseCase().Execute(cmd.Context(), usecase.SetCompletedInput{
				Path:      p,
				Completed: completed,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if p.IsTask() {
				_, _ = fmt.Fprintf(w, "%s %s (%s)\n", checkbox(completed), out.Change.Name, p)
			} else {
				_, _ = fmt.Fprintf(w, "Updated %d tasks in %s (%s)\n", out.Change.Affected, p.Level(), p)
			}
			return nil
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "move <path> <to>",
		Short: "Reorder a phase, subcategory or task among its siblings",
		Long: `Move a phase (c.p), subcategory (c.p.s) or task (c.p.s.t) to index <to>
among its siblings.

Task indices count tasks only: groups mixed into a subcategory keep their
positions and are skipped when counting. Passing the number of tasks as
<to> moves the task to the very end.

Examples:
  # Make the third task the first one
  tick move 0.0.0.2 0

  # Move the second phase to the front
  tick move 0.1 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: destination %q is not an index", domain.ErrInvalidMove, args[1])
			}

			out, err := c.MoveEntryUseCase().Execute(cmd.Context(), usecase.MoveEntryInput{Path: p, To: to})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s %d -> %d\n", p.Level(), out.Change.From, out.Change.To)
			return nil
		},
	}
}

// newAddCommand creates the add command with one subcommand per level.
func newAddCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a category, phase, subcategory or task",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newAddLevelCommand(c, "category", "", nil),
		newAddLevelCommand(c, "phase", "<category>", []int{domain.DepthCategory}),
		newAddLevelCommand(c, "subcategory", "<phase>", []int{domain.DepthPhase}),
		newAddLevelCommand(c, "task", "<subcategory|task>", []int{domain.DepthSubcategory, domain.DepthTask}),
	)

	return cmd
}

// newAddLevelCommand creates an add subcommand. parentDepths lists the
// accepted parent path depths; nil means the root.
func newAddLevelCommand(c *app.Container, level, parentArg string, parentDepths []int) *cobra.Command {
	use := level + " <name>"
	nargs := 1
	if parentArg != "" {
		use = level + " " + parentArg + " <name>"
		nargs = 2
	}

	return &cobra.Command{
		Use:   use,
		Short: "Append a " + level,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var parent domain.Path
			if parentArg != "" {
				p, err := parsePathArg(args[0])
				if err != nil {
					return err
				}
				if !containsDepth(parentDepths, len(p)) {
					return fmt.Errorf("%w: a %s needs a %s parent", domain.ErrInvalidPath, level, parentArg)
				}
				parent = p
			}

			out, err := c.AddEntryUseCase().Execute(cmd.Context(), usecase.AddEntryInput{
				Name:   args[nargs-1],
				Parent: parent,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s)\n", out.Change.Path.Level(), out.Change.Name, out.Change.Path)
			return nil
		},
	}
}

func containsDepth(depths []int, depth int) bool {
	for _, d := range depths {
		if d == depth {
			return true
		}
	}
	return false
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a node and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.DeleteEntryUseCase().Execute(cmd.Context(), usecase.DeleteEntryInput{Path: p})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %q (%d tasks removed)\n", p.Level(), out.Change.Name, out.Change.Affected)
			return nil
		},
	}
}

// newRenameCommand creates the rename command.
func newRenameCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <name>",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.RenameEntryUseCase().Execute(cmd.Context(), usecase.RenameEntryInput{Path: p, Name: args[1]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", p.Level(), out.Change.Name)
			return nil
		},
	}
}
