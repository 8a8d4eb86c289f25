package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

func (s *Server) createAssignee(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input service.AssigneeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Assignee name is required"))
		return
	}

	assignee, err := s.deps.Assignees.Create(c.Request.Context(), user, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, assignee)
}

func (s *Server) deleteAssignee(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid assignee id"))
		return
	}

	if err := s.deps.Assignees.Delete(c.Request.Context(), user, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
