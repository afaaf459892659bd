package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/infra/httpapi"
	"github.com/runoshun/tick/internal/infra/mcpserver"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checklist over HTTP",
		Long: `Serve a JSON API for reading and updating the checklist.

Routes:
  GET  /api/checklist              outline (?path=, ?hide_completed=true)
  PUT  /api/checklist              replace the document
  GET  /api/export                 document (?format=yaml|json)
  GET  /api/progress[/:path]       completion counts
  GET  /api/tasks                  fuzzy search (?q=, ?limit=)
  GET  /api/tasks/:path            one task
  POST /api/tasks/:path/toggle     flip a task
  PUT  /api/tasks/:path/completed  set a task {"completed": bool}
  PUT  /api/groups/:path/completed set every task in a group
  POST /api/move                   reorder {"path": "c.p.s.t", "to": n}

The listen address defaults to [server] addr in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(c, c.State)
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Serving checklist on http://%s\n", addr)
			c.Logger.Info("server", "listening on "+addr)
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// newMCPCommand creates the mcp command.
func newMCPCommand(c *app.Container, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve checklist tools over MCP (stdio)",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
tools show, progress, get_task, toggle_task, set_completed, move and find.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := mcpserver.NewServer(c, c.State, version)
			c.Logger.Info("mcp", "serving on stdio")
			return srv.ServeStdio()
		},
	}
}
