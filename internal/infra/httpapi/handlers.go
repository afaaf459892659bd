package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/tick/internal/domain"
	"github.com/runoshun/tick/internal/usecase"
)

func (s *Server) handleChecklist(c *gin.Context) {
	p, ok := queryPath(c)
	if !ok {
		return
	}
	hide, _ := strconv.ParseBool(c.DefaultQuery("hide_completed", "false"))

	out, err := s.uc.ShowChecklistUseCase().Execute(c.Request.Context(), usecase.ShowChecklistInput{
		Path:          p,
		HideCompleted: hide,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, outlineJSON{
		Nodes:    newNodesJSON(out.Nodes),
		Progress: newProgressJSON(out.Progress),
	})
}

func (s *Server) handleImport(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	if len(data) > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
		return
	}

	out, err := s.uc.ImportChecklistUseCase().Execute(c.Request.Context(), usecase.ImportChecklistInput{Document: data})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, changeJSON{Change: out.Change, Progress: newProgressJSON(out.Progress)})
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := domain.ParseFormat(c.DefaultQuery("format", "yaml"))
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := s.uc.ExportChecklistUseCase().Execute(c.Request.Context(), usecase.ExportChecklistInput{Format: format})
	if err != nil {
		writeError(c, err)
		return
	}

	contentType := "application/yaml"
	if format == domain.FormatJSON {
		contentType = "application/json"
	}
	c.Data(http.StatusOK, contentType, out.Data)
}

func (s *Server) handleProgress(c *gin.Context) {
	var p domain.Path
	if c.Param("path") != "" {
		var ok bool
		if p, ok = paramPath(c); !ok {
			return
		}
	}

	out, err := s.uc.CountProgressUseCase().Execute(c.Request.Context(), usecase.CountProgressInput{Path: p})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, countJSON{
		Path:     p.String(),
		Name:     out.Name,
		Level:    out.Level,
		Progress: newProgressJSON(out.Progress),
	})
}

func (s *Server) handleFind(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
		return
	}

	out, err := s.uc.FindTasksUseCase().Execute(c.Request.Context(), usecase.FindTasksInput{
		Query: c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": newMatchesJSON(out.Matches)})
}

func (s *Server) handleTask(c *gin.Context) {
	p, ok := paramTaskPath(c)
	if !ok {
		return
	}

	out, err := s.uc.ShowTaskUseCase().Execute(c.Request.Context(), usecase.ShowTaskInput{Path: p})
	if err != nil {
		writeError(c, err)
		return
	}

	task := newNodeJSON(domain.Node{Path: p, Task: out.Task, Depth: len(p) - 1})
	c.JSON(http.StatusOK, taskJSON{
		Task:     task,
		Subtasks: newNodesJSON(out.Subtasks),
		Progress: newProgressJSON(out.Progress),
	})
}

func (s *Server) handleToggle(c *gin.Context) {
	p, ok := paramTaskPath(c)
	if !ok {
		return
	}

	out, err := s.uc.ToggleTaskUseCase().Execute(c.Request.Context(), usecase.ToggleTaskInput{Path: p})
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeChange(c, out.Change)
}

func (s *Server) handleSetTaskCompleted(c *gin.Context) {
	p, ok := paramTaskPath(c)
	if !ok {
		return
	}
	s.setCompleted(c, p)
}

func (s *Server) handleSetGroupCompleted(c *gin.Context) {
	p, ok := paramPath(c)
	if !ok {
		return
	}
	if len(p) > domain.DepthSubcategory {
		writeError(c, fmt.Errorf("%w: %s is not a group", domain.ErrInvalidPath, p))
		return
	}
	s.setCompleted(c, p)
}

func (s *Server) setCompleted(c *gin.Context, p domain.Path) {
	var req completedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := s.uc.SetCompletedUseCase().Execute(c.Request.Context(), usecase.SetCompletedInput{
		Path:      p,
		Completed: *req.Completed,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeChange(c, out.Change)
}

func (s *Server) handleMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := domain.ParsePath(req.Path)
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := s.uc.MoveEntryUseCase().Execute(c.Request.Context(), usecase.MoveEntryInput{Path: p, To: *req.To})
	if err != nil {
		writeError(c, err)
		return
	}
	s.writeChange(c, out.Change)
}

// writeChange responds with the change and the checklist's new rollup.
func (s *Server) writeChange(c *gin.Context, change domain.Change) {
	out, err := s.uc.CountProgressUseCase().Execute(c.Request.Context(), usecase.CountProgressInput{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, changeJSON{Change: change, Progress: newProgressJSON(out.Progress)})
}

// paramPath parses the :path parameter, responding 400 on failure.
func paramPath(c *gin.Context) (domain.Path, bool) {
	p, err := domain.ParsePath(c.Param("path"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return p, true
}

// paramTaskPath parses the :path parameter and requires task depth.
func paramTaskPath(c *gin.Context) (domain.Path, bool) {
	p, ok := paramPath(c)
	if !ok {
		return nil, false
	}
	if !p.IsTask() {
		writeError(c, fmt.Errorf("%w: %s is not a task", domain.ErrInvalidPath, p))
		return nil, false
	}
	return p, true
}

// queryPath parses the optional ?path= query. An empty value is the root.
func queryPath(c *gin.Context) (domain.Path, bool) {
	raw := c.Query("path")
	if raw == "" {
		return nil, true
	}
	p, err := domain.ParsePath(raw)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return p, true
}

// writeError maps domain errors to status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPath),
		errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrMalformedDocument),
		errors.Is(err, domain.ErrUnknownFormat):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotInitialized):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
