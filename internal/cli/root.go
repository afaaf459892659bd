// Package cli provides the command-line interface for tick.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/tui"
)

// Command group IDs.
const (
	groupSetup     = "setup"
	groupChecklist = "checklist"
	groupEdit      = "edit"
	groupServer    = "server"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tick.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tick",
		Short: "Checklist manager for phased projects",
		Long: `tick keeps a checklist of categories, phases, subcategories and tasks
in a JSON or YAML document and tracks how much of it is done.

Nodes are addressed by dot-separated 0-based paths:
  c        category
  c.p      phase
  c.p.s    subcategory
  c.p.s.t  task (t counts tasks only)
  c.p.s.t.n subtask

Run without arguments to open the interactive checklist.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupChecklist, Title: "Checklist Commands:"},
		&cobra.Group{ID: groupEdit, Title: "Editing Commands:"},
		&cobra.Group{ID: groupServer, Title: "Server Commands:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, cmd := range cmds {
			cmd.GroupID = group
			root.AddCommand(cmd)
		}
	}

	add(groupSetup,
		newInitCommand(c),
		newConfigCommand(c),
	)
	add(groupChecklist,
		newShowCommand(c),
		newProgressCommand(c),
		newLinksCommand(c),
		newFindCommand(c),
		newHistoryCommand(c),
		newExportCommand(c),
		newTUICommand(c),
	)
	add(groupEdit,
		newToggleCommand(c),
		newCheckCommand(c, true),
		newCheckCommand(c, false),
		newMoveCommand(c),
		newAddCommand(c),
		newRmCommand(c),
		newRenameCommand(c),
		newImportCommand(c),
	)
	add(groupServer,
		newServeCommand(c),
		newMCPCommand(c, version),
	)

	return root
}

// newTUICommand creates the tui command for launching the interactive TUI.
// This is the same as running `tick` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for the checklist.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}

// launchTUI runs the checklist browser on the alternate screen.
func launchTUI(c *app.Container) error {
	model := tui.New(c)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
