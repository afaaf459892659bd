package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

// RegisterWriteTools adds the checklist mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, uc UseCases, lock Serializer) {
	s.AddTool(toggleTaskTool(), exclusive(lock, toggleTaskHandler(uc)))
	s.AddTool(setCompletedTool(), exclusive(lock, setCompletedHandler(uc)))
	s.AddTool(moveTool(), exclusive(lock, moveHandler(uc)))
}

// --- toggle_task ---

func toggleTaskTool() mcp.Tool {
	return mcp.NewTool("toggle_task",
		mcp.WithDescription("Flip the completed flag of a task or subtask."),
		mcp.WithString("path",
			mcp.Description(pathHelp),
			mcp.Required(),
		),
	)
}

func toggleTaskHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := requiredPath(req)
		if err != nil {
			return toolError(err)
		}

		out, err := uc.ToggleTaskUseCase().Execute(ctx, usecase.ToggleTaskInput{Path: p})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s %s  %s", checkbox(out.Change.Completed), out.Change.Name, p)), nil
	}
}

// --- set_completed ---

func setCompletedTool() mcp.Tool {
	return mcp.NewTool("set_completed",
		mcp.WithDescription("Set the completed flag of a task, or of every task under a category, phase or subcategory."),
		mcp.WithString("path",
			mcp.Description(pathHelp),
			mcp.Required(),
		),
		mcp.WithBoolean("completed",
			mcp.Description("New completed value"),
			mcp.Required(),
		),
	)
}

func setCompletedHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := requiredPath(req)
		if err != nil {
			return toolError(err)
		}
		completed, err := req.RequireBool("completed")
		if err != nil {
			return toolError(err)
		}

		out, err := uc.SetCompletedUseCase().Execute(ctx, usecase.SetCompletedInput{Path: p, Completed: completed})
		if err != nil {
			return toolError(err)
		}
		if p.IsTask() {
			return mcp.NewToolResultText(fmt.Sprintf("%s %s  %s", checkbox(completed), out.Change.Name, p)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated %d tasks in %s %s", out.Change.Affected, p.Level(), p)), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Reorder a phase, subcategory or task among its siblings. Task indices count tasks only; passing the task count moves a task to the very end."),
		mcp.WithString("path",
			mcp.Description("Path of the phase (c.p), subcategory (c.p.s) or task (c.p.s.t) to move"),
			mcp.Required(),
		),
		mcp.WithNumber("to",
			mcp.Description("Destination index among its siblings"),
			mcp.Required(),
		),
	)
}

func moveHandler(uc UseCases) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		p, err := requiredPath(req)
		if err != nil {
			return toolError(err)
		}
		to, err := req.RequireInt("to")
		if err != nil {
			return toolError(fmt.Errorf("%w: %v", domain.ErrInvalidMove, err))
		}

		out, err := uc.MoveEntryUseCase().Execute(ctx, usecase.MoveEntryInput{Path: p, To: to})
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Moved %s in %q from %d to %d", p.Level(), out.Change.Name, out.Change.From, out.Change.To)), nil
	}
}
