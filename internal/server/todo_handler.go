package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

type toggleRequest struct {
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

func (s *Server) createTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input service.TodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Title is required"))
		return
	}

	todo, err := s.deps.Todos.Create(c.Request.Context(), user, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, todo)
}

func (s *Server) updateTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo id"))
		return
	}

	var update service.TodoUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo update"))
		return
	}

	todo, err := s.deps.Todos.Update(c.Request.Context(), user, id, update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, todo)
}

func (s *Server) toggleTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo id"))
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "isCompleted is required"))
		return
	}

	todo, err := s.deps.Todos.Toggle(c.Request.Context(), user, id, *req.IsCompleted)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo id"))
		return
	}

	if err := s.deps.Todos.Delete(c.Request.Context(), user, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) assignTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	todoID, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo id"))
		return
	}
	assigneeID, ok := idParam(c, "assigneeID")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid assignee id"))
		return
	}

	if err := s.deps.Assignees.Assign(c.Request.Context(), user, todoID, assigneeID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) unassignTodo(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	todoID, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid todo id"))
		return
	}
	assigneeID, ok := idParam(c, "assigneeID")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid assignee id"))
		return
	}

	if err := s.deps.Assignees.Unassign(c.Request.Context(), user, todoID, assigneeID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
