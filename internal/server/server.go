// Package server exposes the task store over HTTP with a JSON API.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Martinez1337/go-kanban/internal/manager"
)

// Server wraps a TaskManager behind a gin engine.
type Server struct {
	manager manager.TaskManager
	engine  *gin.Engine
	logger  *slog.Logger
}

// New builds the HTTP surface over m. The logger must not be nil.
func New(m manager.TaskManager, logger *slog.Logger) *Server {
	s := &Server{manager: m, logger: logger}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/tasks", s.listTasks)
	engine.GET("/tasks/:id", s.getTask)
	engine.POST("/tasks", s.postTask)
	engine.DELETE("/tasks", s.deleteAllTasks)
	engine.DELETE("/tasks/:id", s.deleteTask)

	engine.GET("/subtasks", s.listSubtasks)
	engine.GET("/subtasks/:id", s.getSubtask)
	engine.POST("/subtasks", s.postSubtask)
	engine.DELETE("/subtasks", s.deleteAllSubtasks)
	engine.DELETE("/subtasks/:id", s.deleteSubtask)

	engine.GET("/epics", s.listEpics)
	engine.GET("/epics/:id", s.getEpic)
	engine.GET("/epics/:id/subtasks", s.listEpicSubtasks)
	engine.POST("/epics", s.postEpic)
	engine.DELETE("/epics", s.deleteAllEpics)
	engine.DELETE("/epics/:id", s.deleteEpic)

	engine.GET("/history", s.getHistory)
	engine.GET("/prioritized", s.getPrioritized)

	s.engine = engine
	return s
}

// Handler returns the root http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.engine.Run(addr)
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Next()
		s.logger.Info("request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// writeError maps store errors onto HTTP statuses. Anything outside
// the store's taxonomy is a 500.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, manager.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, manager.ErrTimeConflict):
		status = http.StatusNotAcceptable
	case errors.Is(err, manager.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, manager.ErrInvalidArgument):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "path", c.Request.URL.Path)
	}
	c.JSON(status, errorPayload{Error: err.Error()})
}
