package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/usecase"
)

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var hideCompleted bool

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Display the checklist or one node",
		Long: `Display the checklist as an indented outline.

With a task path, show the task with its tags, links and subtasks.
With a group path, show that subtree only.

Examples:
  # Whole checklist
  tick show

  # One phase, without finished work
  tick show 0.1 --hide-completed

  # One task
  tick show 0.0.0.2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			p, err := parsePathArg(arg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if p.IsTask() {
				out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{Path: p})
				if err != nil {
					return err
				}
				subtasks := out.Subtasks
				if hideCompleted {
					subtasks = usecase.FilterCompleted(subtasks)
				}
				printTaskDetails(w, p, out.Task, subtasks, out.Progress)
				return nil
			}

			out, err := c.ShowChecklistUseCase().Execute(cmd.Context(), usecase.ShowChecklistInput{
				Path:          p,
				HideCompleted: hideCompleted,
			})
			if err != nil {
				return err
			}
			if len(out.Nodes) == 0 {
				_, _ = fmt.Fprintln(w, "No tasks.")
			}
			printOutline(w, out.Nodes, "")
			_, _ = fmt.Fprintf(w, "\nProgress: %s\n", formatProgress(out.Progress))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "Hide completed tasks and finished groups")

	return cmd
}

// newProgressCommand creates the progress command.
func newProgressCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "progress [path]",
		Short: "Display completion counts",
		Long: `Display how many tasks are completed under a node, or in the whole
checklist. Tasks nested in groups and subtasks are counted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			p, err := parsePathArg(arg)
			if err != nil {
				return err
			}

			out, err := c.CountProgressUseCase().Execute(cmd.Context(), usecase.CountProgressInput{Path: p})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Name == "" {
				_, _ = fmt.Fprintf(w, "%s: %s\n", out.Level, formatProgress(out.Progress))
			} else {
				_, _ = fmt.Fprintf(w, "%s %q: %s\n", out.Level, out.Name, formatProgress(out.Progress))
			}
			return nil
		},
	}
}

// newLinksCommand creates the links command.
func newLinksCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "links <path>",
		Short: "List a task's links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePathArg(args[0])
			if err != nil {
				return err
			}
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{Path: p})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Task.Links) == 0 {
				_, _ = fmt.Fprintln(w, "No links.")
				return nil
			}
			for _, l := range out.Task.Links {
				_, _ = fmt.Fprintln(w, l)
			}
			return nil
		},
	}
}

// newFindCommand creates the find command.
func newFindCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy search task names",
		Long: `Fuzzy search the names of all addressable tasks and subtasks.
Matches are printed best first with their paths.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.FindTasksUseCase().Execute(cmd.Context(), usecase.FindTasksInput{
				Query: args[0],
				Limit: limit,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Matches) == 0 {
				_, _ = fmt.Fprintln(w, "No matches.")
				return nil
			}
			for _, m := range out.Matches {
				_, _ = fmt.Fprintf(w, "%-12s %s %s\n", m.Path, checkbox(m.Completed), m.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of matches (0 for all)")

	return cmd
}
