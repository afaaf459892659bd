package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions",
		Long: `List saved revisions of the checklist, newest first.

Only the git and sqlite backends keep revisions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListHistoryUseCase().Execute(cmd.Context(), usecase.ListHistoryInput{Limit: limit})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, rev := range out.Revisions {
				id := rev.ID
				if len(id) > 8 {
					id = id[:8]
				}
				_, _ = fmt.Fprintf(w, "%s  %s  %-8s %s\n",
					id,
					rev.CreatedAt.Local().Format(time.DateTime),
					fmt.Sprintf("%d/%d", rev.Progress.Completed, rev.Progress.Total),
					rev.Message,
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of revisions (0 for all)")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the checklist document to stdout",
		Long: `Write the checklist document to stdout as YAML (default) or JSON.
Field order and unknown fields are preserved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := domain.ParseFormat(format)
			if err != nil {
				return fmt.Errorf("%w: %q", err, format)
			}
			out, err := c.ExportChecklistUseCase().Execute(cmd.Context(), usecase.ExportChecklistInput{Format: f})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out.Data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the checklist with a JSON or YAML document",
		Long: `Replace the whole checklist with the document in <file>.
Use "-" to read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			out, err := c.ImportChecklistUseCase().Execute(cmd.Context(), usecase.ImportChecklistInput{Document: data})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported checklist: %s\n", formatProgress(out.Progress))
			return nil
		},
	}
}
