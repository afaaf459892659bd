package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/testutil"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockChecklistRepository) {
	t.Helper()
	repo := testutil.NewMockChecklistRepository(testutil.SampleChecklist())
	c := app.NewWithDeps(app.Config{}, repo, repo, repo, nil)
	return NewServer(c, c.State, "test"), repo
}

// call invokes a registered tool and returns its text and error flag.
func call(t *testing.T, s *Server, name string, args map[string]any) (string, bool) {
	t.Helper()
	tool := s.MCPServer().GetTool(name)
	require.NotNil(t, tool, "tool %s is not registered", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestNewServer_RegistersTools(t *testing.T) {
	s, _ := newTestServer(t)

	tools := s.MCPServer().ListTools()
	for _, name := range []string{"show", "progress", "get_task", "find", "toggle_task", "set_completed", "move"} {
		assert.Contains(t, tools, name)
	}
}

// =============================================================================
// Read Tool Tests
// =============================================================================

func TestShowTool(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s, "show", nil)
	require.False(t, isErr, text)
	assert.Contains(t, text, "Launch (2/7 done)  0\n")
	assert.Contains(t, text, "    [x] A  0.0.0.0\n")
	assert.Contains(t, text, "      [ ] C\n", "tasks inside a nested group have no path")
	assert.Contains(t, text, "Progress: 2/7 done")

	text, isErr = call(t, s, "show", map[string]any{"path": "0.0.0", "hide_completed": true})
	require.False(t, isErr, text)
	assert.NotContains(t, text, "] A ")
	assert.Contains(t, text, "[ ] B  0.0.0.1")

	text, isErr = call(t, s, "show", map[string]any{"path": "0.0.1"})
	require.False(t, isErr)
	assert.Contains(t, text, "Empty (0/0 done)")
}

func TestProgressTool(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s, "progress", nil)
	assert.False(t, isErr)
	assert.Equal(t, "root: 2/7 done", text)

	text, isErr = call(t, s, "progress", map[string]any{"path": "0.0.0.2"})
	assert.False(t, isErr)
	assert.Equal(t, `task "D": 1/3 done`, text)

	text, isErr = call(t, s, "progress", map[string]any{"path": "3"})
	assert.True(t, isErr)
	assert.Equal(t, domain.ErrCategoryNotFound.Error(), text)
}

func TestGetTaskTool(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s, "get_task", map[string]any{"path": "0.0.0.0"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "[x] A  0.0.0.0")
	assert.Contains(t, text, "link: Runbook <https://example.com/runbook>")

	text, isErr = call(t, s, "get_task", map[string]any{"path": "0.0.0.2"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "subtasks: 1/3 done")
	assert.Contains(t, text, "[x] D1  0.0.0.2.0")

	_, isErr = call(t, s, "get_task", map[string]any{})
	assert.True(t, isErr)

	_, isErr = call(t, s, "get_task", map[string]any{"path": "x"})
	assert.True(t, isErr)
}

func TestFindTool(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s, "find", map[string]any{"query": "E"})
	require.False(t, isErr, text)
	assert.Contains(t, text, "0.1.0.0  [ ] E")

	text, isErr = call(t, s, "find", map[string]any{"query": "zzz"})
	assert.False(t, isErr)
	assert.Equal(t, "No results found.", text)

	_, isErr = call(t, s, "find", map[string]any{})
	assert.True(t, isErr)
}

// =============================================================================
// Write Tool Tests
// =============================================================================

func TestToggleTaskTool(t *testing.T) {
	s, repo := newTestServer(t)

	text, isErr := call(t, s, "toggle_task", map[string]any{"path": "0.0.0.2.1"})
	require.False(t, isErr, text)
	assert.Equal(t, "[x] D2  0.0.0.2.1", text)
	assert.Equal(t, domain.Progress{Completed: 3, Total: 7}, repo.Checklist.CountAll())

	_, isErr = call(t, s, "toggle_task", map[string]any{"path": "0.0"})
	assert.True(t, isErr, "phase is not a task")
	assert.Equal(t, 1, repo.SaveCount)
}

func TestSetCompletedTool(t *testing.T) {
	s, repo := newTestServer(t)

	text, isErr := call(t, s, "set_completed", map[string]any{"path": "0.1", "completed": true})
	require.False(t, isErr, text)
	assert.Equal(t, "Updated 1 tasks in phase 0.1", text)

	text, isErr = call(t, s, "set_completed", map[string]any{"path": "0.0.0.0", "completed": false})
	require.False(t, isErr, text)
	assert.Equal(t, "[ ] A  0.0.0.0", text)
	assert.Equal(t, domain.Progress{Completed: 2, Total: 7}, repo.Checklist.CountAll())

	_, isErr = call(t, s, "set_completed", map[string]any{"path": "0.0.0.0"})
	assert.True(t, isErr, "completed is required")
}

func TestMoveTool(t *testing.T) {
	s, repo := newTestServer(t)

	// JSON numbers arrive as float64.
	text, isErr := call(t, s, "move", map[string]any{"path": "0.0.0.0", "to": float64(3)})
	require.False(t, isErr, text)

	var names []string
	for i := 0; i < 3; i++ {
		task, ok := repo.Checklist.Task(domain.TaskPath(0, 0, 0, i))
		require.True(t, ok)
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"B", "D", "A"}, names)

	_, isErr = call(t, s, "move", map[string]any{"path": "0", "to": float64(0)})
	assert.True(t, isErr, "categories cannot be moved")

	_, isErr = call(t, s, "move", map[string]any{"path": "0.0.0.0"})
	assert.True(t, isErr)
}
