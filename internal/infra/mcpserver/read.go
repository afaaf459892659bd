package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

const pathHelp = "Dot-separated 0-based path: category.phase.subcategory.task[.subtask] (task indices count tasks only)"

// RegisterReadTools adds the read-only checklist tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, uc UseCases, lock Serializer) {
	s.AddTool(showTool(), exclusive(lock, showHandler(uc)))
	s.AddTool(progressTool(), exclusive(lock, progressHandler(uc)))
	s.AddTool(getTaskTool(), exclusive(lock, getTaskHandler(uc)))
	s.AddTool(findTool(), exclusive(lock, findHandler(uc)))
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show the checklist, or one subtree, as an indented outline with paths and completion counts."),
		mcp.WithString("path",
			mcp.Description(pathHelp+". Omit to show everything."),
		),
		mcp.WithBoolean("hide_completed",
			mcp.Description("Skip completed tasks and fully completed groups"),
		),
	)
}

func showHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := optionalPath(req)
		if err != nil {
			return toolError(err)
		}

		out, err := uc.ShowChecklistUseCase().Execute(ctx, usecase.ShowChecklistInput{
			Path:          p,
			HideCompleted: req.GetBool("hide_completed", false),
		})
		if err != nil {
			return toolError(err)
		}
		if len(out.Nodes) == 0 {
			return mcp.NewToolResultText("No tasks."), nil
		}

		var sb strings.Builder
		renderOutline(&sb, out.Nodes)
		fmt.Fprintf(&sb, "Progress: %s\n", formatProgress(out.Progress))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- progress ---

func progressTool() mcp.Tool {
	return mcp.NewTool("progress",
		mcp.WithDescription("Count completed and total tasks under a node, nested tasks included."),
		mcp.WithString("path",
			mcp.Description(pathHelp+". Omit to count the whole checklist."),
		),
	)
}

func progressHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := optionalPath(req)
		if err != nil {
			return toolError(err)
		}

		out, err := uc.CountProgressUseCase().Execute(ctx, usecase.CountProgressInput{Path: p})
		if err != nil {
			return toolError(err)
		}
		if out.Name == "" {
			return mcp.NewToolResultText(fmt.Sprintf("%s: %s", out.Level, formatProgress(out.Progress))), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s %q: %s", out.Level, out.Name, formatProgress(out.Progress))), nil
	}
}

// --- get_task ---

func getTaskTool() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Show one task with its tags, links and subtasks."),
		mcp.WithString("path",
			mcp.Description(pathHelp),
			mcp.Required(),
		),
	)
}

func getTaskHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := requiredPath(req)
		if err != nil {
			return toolError(err)
		}

		out, err := uc.ShowTaskUseCase().Execute(ctx, usecase.ShowTaskInput{Path: p})
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%s %s  %s\n", checkbox(out.Task.Completed), out.Task.Name, p)
		if len(out.Task.Tags) > 0 {
			fmt.Fprintf(&sb, "tags: %s\n", strings.Join(out.Task.Tags, ", "))
		}
		for _, l := range out.Task.Links {
			fmt.Fprintf(&sb, "link: %s\n", l)
		}
		if len(out.Subtasks) > 0 {
			fmt.Fprintf(&sb, "subtasks: %s\n", formatProgress(out.Progress))
			renderOutline(&sb, out.Subtasks)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- find ---

func findTool() mcp.Tool {
	return mcp.NewTool("find",
		mcp.WithDescription("Fuzzy search task names. Returns matching tasks with their paths, best match first."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches (default 20)"),
		),
	)
}

func findHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		out, err := uc.FindTasksUseCase().Execute(ctx, usecase.FindTasksInput{
			Query: query,
			Limit: req.GetInt("limit", 20),
		})
		if err != nil {
			return toolError(err)
		}
		if len(out.Matches) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, m := range out.Matches {
			fmt.Fprintf(&sb, "%s  %s %s\n", m.Path, checkbox(m.Completed), m.Name)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// renderOutline writes nodes indented relative to the first one.
func renderOutline(sb *strings.Builder, nodes []domain.Node) {
	base := nodes[0].Depth
	for _, n := range nodes {
		sb.WriteString(strings.Repeat("  ", max(n.Depth-base, 0)))
		if n.IsTask() {
			fmt.Fprintf(sb, "%s %s", checkbox(n.Task.Completed), n.Name())
		} else {
			fmt.Fprintf(sb, "%s (%s)", n.Name(), formatProgress(n.Progress()))
		}
		if n.Path != nil {
			fmt.Fprintf(sb, "  %s", n.Path)
		}
		sb.WriteByte('\n')
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func formatProgress(p domain.Progress) string {
	return fmt.Sprintf("%d/%d done", p.Completed, p.Total)
}

func optionalPath(req mcp.CallToolRequest) (domain.Path, error) {
	raw := req.GetString("path", "")
	if raw == "" {
		return nil, nil
	}
	return domain.ParsePath(raw)
}

func requiredPath(req mcp.CallToolRequest) (domain.Path, error) {
	raw := req.GetString("path", "")
	if raw == "" {
		return nil, fmt.Errorf("path is required")
	}
	return domain.ParsePath(raw)
}
