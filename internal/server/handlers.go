package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Martinez1337/go-kanban/internal/domain"
	"github.com/Martinez1337/go-kanban/internal/manager"
)

func idParam(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", manager.ErrInvalidArgument, c.Param("id"))
	}
	return id, nil
}

func (s *Server) listTasks(c *gin.Context) {
	c.JSON(http.StatusOK, fromTasks(s.manager.ListTasks()))
}

func (s *Server) getTask(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	task, err := s.manager.GetTask(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTask(task))
}

// postTask creates when the payload carries no id and updates in
// place otherwise.
func (s *Server) postTask(c *gin.Context) {
	var payload taskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	task, err := payload.toTask()
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	if payload.ID == 0 {
		id, err := s.manager.CreateTask(task)
		if err != nil {
			s.writeError(c, err)
			return
		}
		task.ID = id
		c.JSON(http.StatusCreated, fromTask(task))
		return
	}
	if err := s.manager.UpdateTask(task); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTask(task))
}

func (s *Server) deleteTask(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.manager.DeleteTask(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// deleteAllTasks clears the whole task collection.
func (s *Server) deleteAllTasks(c *gin.Context) {
	if err := s.manager.DeleteAllTasks(); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "tasks"})
}

func (s *Server) listSubtasks(c *gin.Context) {
	c.JSON(http.StatusOK, fromSubtasks(s.manager.ListSubtasks()))
}

func (s *Server) getSubtask(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	sub, err := s.manager.GetSubtask(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSubtask(sub))
}

func (s *Server) postSubtask(c *gin.Context) {
	var payload subtaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	sub, err := payload.toSubtask()
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	if payload.ID == 0 {
		id, err := s.manager.CreateSubtask(sub)
		if err != nil {
			s.writeError(c, err)
			return
		}
		sub.ID = id
		c.JSON(http.StatusCreated, fromSubtask(sub))
		return
	}
	if err := s.manager.UpdateSubtask(sub); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSubtask(sub))
}

func (s *Server) deleteSubtask(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.manager.DeleteSubtask(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// deleteAllSubtasks clears every subtask and resets every epic's
// derived fields.
func (s *Server) deleteAllSubtasks(c *gin.Context) {
	if err := s.manager.DeleteAllSubtasks(); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "subtasks"})
}

func (s *Server) listEpics(c *gin.Context) {
	c.JSON(http.StatusOK, fromEpics(s.manager.ListEpics()))
}

func (s *Server) getEpic(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	epic, err := s.manager.GetEpic(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromEpic(epic))
}

func (s *Server) listEpicSubtasks(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	subs, err := s.manager.ListEpicSubtasks(id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromSubtasks(subs))
}

func (s *Server) postEpic(c *gin.Context) {
	var payload epicPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	epic, err := payload.toEpic()
	if err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", manager.ErrInvalidArgument, err))
		return
	}
	if payload.ID == 0 {
		id, err := s.manager.CreateEpic(epic)
		if err != nil {
			s.writeError(c, err)
			return
		}
		// Mirror what the store keeps for a fresh epic without a
		// Get, which would pollute the history.
		c.JSON(http.StatusCreated, fromEpic(domain.NewEpic(id, epic.Name, epic.Description)))
		return
	}
	if err := s.manager.UpdateEpic(epic); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromEpic(epic))
}

func (s *Server) deleteEpic(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.manager.DeleteEpic(id); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// deleteAllEpics clears every epic and, with them, every subtask.
func (s *Server) deleteAllEpics(c *gin.Context) {
	if err := s.manager.DeleteAllEpics(); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": "epics"})
}

func (s *Server) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, fromTasks(s.manager.History()))
}

func (s *Server) getPrioritized(c *gin.Context) {
	c.JSON(http.StatusOK, fromTasks(s.manager.ListPrioritized()))
}
