package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
)

type generateRequest struct {
	Text string `json:"text" binding:"required"`
}

// generateTodos asks the language model to break free text into a todo plan.
// The plan is returned to the client; nothing is persisted here.
func (s *Server) generateTodos(c *gin.Context) {
	if _, err := s.requireUser(c); err != nil {
		respondErr(c, err)
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Input text is required"))
		return
	}

	plan, err := s.deps.Generator.Generate(c.Request.Context(), req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, plan)
}
