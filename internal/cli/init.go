package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the checklist store",
		Long: `Initialize the checklist store for this project.

The store lives in .tick/ at the git repository root, or in the current
directory outside a repository. The backend is chosen by [store] backend
in the configuration (file, git or sqlite).

Use --from to seed the store with an existing JSON or YAML document.

Error conditions:
- Already initialized: "tick already initialized"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var doc []byte
			if from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return fmt.Errorf("read seed document: %w", err)
				}
				doc = data
			}

			uc := c.InitChecklistUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitChecklistInput{Document: doc})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized tick in %s (%s backend, %d tasks)\n",
				c.Config.TickDir, c.Config.Backend, out.Progress.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Seed the store with a JSON or YAML document")

	return cmd
}
