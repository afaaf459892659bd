// Package mcpserver exposes checklist tools over the Model Context Protocol.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/runoshun/tick/internal/usecase"
)

// UseCases provides the use cases the tools call.
type UseCases interface {
	ShowChecklistUseCase() *usecase.ShowChecklist
	ShowTaskUseCase() *usecase.ShowTask
	CountProgressUseCase() *usecase.CountProgress
	ToggleTaskUseCase() *usecase.ToggleTask
	SetCompletedUseCase() *usecase.SetCompleted
	MoveEntryUseCase() *usecase.MoveEntry
	FindTasksUseCase() *usecase.FindTasks
}

// Serializer runs fn with exclusive access to the checklist.
type Serializer interface {
	Exclusive(fn func())
}

// Server wraps an MCP server with the checklist tools registered.
type Server struct {
	mcp *server.MCPServer
}

// NewServer creates a server with every checklist tool registered.
func NewServer(uc UseCases, lock Serializer, version string) *Server {
	s := server.NewMCPServer(
		"tick",
		version,
		server.WithToolCapabilities(true),
	)
	RegisterReadTools(s, uc, lock)
	RegisterWriteTools(s, uc, lock)
	return &Server{mcp: s}
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves on stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// exclusive wraps a handler so that calls never interleave.
func exclusive(lock Serializer, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var (
			res *mcp.CallToolResult
			err error
		)
		lock.Exclusive(func() {
			res, err = h(ctx, req)
		})
		return res, err
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
