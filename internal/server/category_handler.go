package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

func (s *Server) createCategory(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Category name and color are required"))
		return
	}

	category, err := s.deps.Categories.Create(c.Request.Context(), user, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid category id"))
		return
	}

	var update service.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid category update"))
		return
	}

	category, err := s.deps.Categories.Update(c.Request.Context(), user, id, update)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid category id"))
		return
	}

	if err := s.deps.Categories.Delete(c.Request.Context(), user, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}
