// Package httpapi serves the checklist over a JSON REST API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/tick/internal/usecase"
)

// UseCases provides the use cases the API exposes.
type UseCases interface {
	ShowChecklistUseCase() *usecase.ShowChecklist
	ShowTaskUseCase() *usecase.ShowTask
	CountProgressUseCase() *usecase.CountProgress
	ToggleTaskUseCase() *usecase.ToggleTask
	SetCompletedUseCase() *usecase.SetCompleted
	MoveEntryUseCase() *usecase.MoveEntry
	FindTasksUseCase() *usecase.FindTasks
	ExportChecklistUseCase() *usecase.ExportChecklist
	ImportChecklistUseCase() *usecase.ImportChecklist
}

// Serializer runs fn with exclusive access to the checklist.
type Serializer interface {
	Exclusive(fn func())
}

const (
	maxDocumentSize = 4 << 20 // 4MB
	shutdownTimeout = 5 * time.Second
)

// Server is the checklist HTTP server.
type Server struct {
	uc     UseCases
	lock   Serializer
	router *gin.Engine
}

// NewServer creates a new server. Every request runs under lock so that a
// load-mutate-save sequence is never interleaved with another request.
func NewServer(uc UseCases, lock Serializer) *Server {
	router := gin.Default()

	s := &Server{
		uc:     uc,
		lock:   lock,
		router: router,
	}

	api := router.Group("/api", s.serialize)
	{
		api.GET("/checklist", s.handleChecklist)
		api.PUT("/checklist", s.handleImport)
		api.GET("/export", s.handleExport)
		api.GET("/progress", s.handleProgress)
		api.GET("/progress/:path", s.handleProgress)
		api.GET("/tasks", s.handleFind)
		api.GET("/tasks/:path", s.handleTask)
		api.POST("/tasks/:path/toggle", s.handleToggle)
		api.PUT("/tasks/:path/completed", s.handleSetTaskCompleted)
		api.PUT("/groups/:path/completed", s.handleSetGroupCompleted)
		api.POST("/move", s.handleMove)
	}

	return s
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) serialize(c *gin.Context) {
	s.lock.Exclusive(c.Next)
}
