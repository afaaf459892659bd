package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/tick/internal/app"
	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, c *domain.Checklist) (*Server, *testutil.MockChecklistRepository) {
	t.Helper()
	repo := testutil.NewMockChecklistRepository(c)
	container := app.NewWithDeps(app.Config{}, repo, repo, repo, nil)
	return NewServer(container, container.State), repo
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// =============================================================================
// Read Tests
// =============================================================================

func TestHandleChecklist(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodGet, "/api/checklist", "")
	require.Equal(t, http.StatusOK, w.Code)

	out := decode[outlineJSON](t, w)
	assert.Equal(t, progressJSON{Completed: 2, Total: 7, Percent: 28}, out.Progress)
	require.NotEmpty(t, out.Nodes)
	assert.Equal(t, "Launch", out.Nodes[0].Name)
	assert.Equal(t, "0", out.Nodes[0].Path)

	var d nodeJSON
	for _, n := range out.Nodes {
		if n.Name == "D" {
			d = n
		}
	}
	assert.Equal(t, "0.0.0.2", d.Path)
	assert.True(t, d.Task)
	assert.Equal(t, 3, d.Progress.Total)
}

func TestHandleChecklist_Subtree(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodGet, "/api/checklist?path=0.1&hide_completed=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[outlineJSON](t, w)
	require.Len(t, out.Nodes, 3)
	assert.Equal(t, "Phase 2", out.Nodes[0].Name)
	assert.Equal(t, "E", out.Nodes[2].Name)
	assert.Equal(t, 1, out.Progress.Total)

	w = do(t, s, http.MethodGet, "/api/checklist?path=0.9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodGet, "/api/checklist?path=a.b", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleProgress(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	tests := []struct {
		name   string
		target string
		status int
		want   countJSON
	}{
		{
			name:   "root",
			target: "/api/progress",
			status: http.StatusOK,
			want:   countJSON{Level: "root", Progress: progressJSON{Completed: 2, Total: 7, Percent: 28}},
		},
		{
			name:   "subcategory",
			target: "/api/progress/0.0.0",
			status: http.StatusOK,
			want:   countJSON{Path: "0.0.0", Name: "Prep", Level: "subcategory", Progress: progressJSON{Completed: 2, Total: 6, Percent: 33}},
		},
		{
			name:   "empty subcategory",
			target: "/api/progress/0.0.1",
			status: http.StatusOK,
			want:   countJSON{Path: "0.0.1", Name: "Empty", Level: "subcategory", Progress: progressJSON{}},
		},
		{
			name:   "missing phase",
			target: "/api/progress/0.5",
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.want, decode[countJSON](t, w))
			}
		})
	}
}

func TestHandleTask(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodGet, "/api/tasks/0.0.0.0", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[taskJSON](t, w)
	assert.Equal(t, "A", out.Task.Name)
	assert.True(t, out.Task.Completed)
	assert.Equal(t, []linkJSON{{Title: "Runbook", URL: "https://example.com/runbook"}}, out.Task.Links)

	w = do(t, s, http.MethodGet, "/api/tasks/0.0.0.2", "")
	require.Equal(t, http.StatusOK, w.Code)
	out = decode[taskJSON](t, w)
	require.Len(t, out.Subtasks, 2)
	assert.Equal(t, "0.0.0.2.1", out.Subtasks[1].Path)

	w = do(t, s, http.MethodGet, "/api/tasks/0.0.0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "group path is not a task")

	w = do(t, s, http.MethodGet, "/api/tasks/0.0.0.3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleFind(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodGet, "/api/tasks?q=D2", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[struct {
		Matches []matchJSON `json:"matches"`
	}](t, w)
	require.NotEmpty(t, out.Matches)
	assert.Equal(t, "0.0.0.2.1", out.Matches[0].Path)

	w = do(t, s, http.MethodGet, "/api/tasks?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleExport(t *testing.T) {
	s, _ := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodGet, "/api/export?format=json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.True(t, json.Valid(w.Body.Bytes()))

	w = do(t, s, http.MethodGet, "/api/export?format=xml", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotInitialized(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/api/checklist", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

// =============================================================================
// Mutation Tests
// =============================================================================

func TestHandleToggle(t *testing.T) {
	s, repo := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodPost, "/api/tasks/0.0.0.1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[changeJSON](t, w)
	assert.Equal(t, domain.ChangeToggle, out.Change.Kind)
	assert.True(t, out.Change.Completed)
	assert.Equal(t, 3, out.Progress.Completed)

	task, ok := repo.Checklist.Task(domain.TaskPath(0, 0, 0, 1))
	require.True(t, ok)
	assert.True(t, task.Completed)

	w = do(t, s, http.MethodPost, "/api/tasks/0.0.0.9/toggle", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, repo.SaveCount)
}

func TestHandleSetCompleted(t *testing.T) {
	t.Run("task", func(t *testing.T) {
		s, repo := newTestServer(t, testutil.SampleChecklist())

		w := do(t, s, http.MethodPut, "/api/tasks/0.0.0.0/completed", `{"completed": false}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, decode[changeJSON](t, w).Progress.Completed)

		task, _ := repo.Checklist.Task(domain.TaskPath(0, 0, 0, 0))
		assert.False(t, task.Completed)
	})

	t.Run("group", func(t *testing.T) {
		s, repo := newTestServer(t, testutil.SampleChecklist())

		w := do(t, s, http.MethodPut, "/api/groups/0.0/completed", `{"completed": true}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		out := decode[changeJSON](t, w)
		assert.Equal(t, domain.ChangeSetGroupCompleted, out.Change.Kind)
		assert.Equal(t, domain.Progress{Completed: 6, Total: 7}, repo.Checklist.CountAll())
	})

	t.Run("missing body", func(t *testing.T) {
		s, repo := newTestServer(t, testutil.SampleChecklist())

		w := do(t, s, http.MethodPut, "/api/tasks/0.0.0.0/completed", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, repo.SaveCount)
	})

	t.Run("task path on group route", func(t *testing.T) {
		s, _ := newTestServer(t, testutil.SampleChecklist())

		w := do(t, s, http.MethodPut, "/api/groups/0.0.0.0/completed", `{"completed": true}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleMove(t *testing.T) {
	s, repo := newTestServer(t, testutil.SampleChecklist())

	w := do(t, s, http.MethodPost, "/api/move", `{"path": "0.0.0.2", "to": 0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[changeJSON](t, w)
	assert.Equal(t, domain.ChangeReorder, out.Change.Kind)

	first, ok := repo.Checklist.Task(domain.TaskPath(0, 0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, "D", first.Name)

	w = do(t, s, http.MethodPost, "/api/move", `{"path": "0.0.0.0", "to": 7}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/move", `{"path": "0.0.0.0"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleImport(t *testing.T) {
	s, repo := newTestServer(t, testutil.SampleChecklist())

	doc := `[{"Solo": [{"Only": [{"One": [{"name": "T", "completed": true}]}]}]}]`
	w := do(t, s, http.MethodPut, "/api/checklist", doc)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[changeJSON](t, w)
	assert.Equal(t, domain.ChangeReplace, out.Change.Kind)
	assert.Equal(t, progressJSON{Completed: 1, Total: 1, Percent: 100, Done: true}, out.Progress)
	assert.Equal(t, domain.Progress{Completed: 1, Total: 1}, repo.Checklist.CountAll())

	w = do(t, s, http.MethodPut, "/api/checklist", strings.Repeat("[", 3))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
