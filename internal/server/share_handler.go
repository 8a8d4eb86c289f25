package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

func (s *Server) createShare(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var input service.ShareInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Category and username are required"))
		return
	}

	share, err := s.deps.Shares.Share(c.Request.Context(), user, input)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, share)
}

func (s *Server) revokeShare(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		respondErr(c, apperr.New(apperr.Invalid, "Invalid share id"))
		return
	}

	if err := s.deps.Shares.Revoke(c.Request.Context(), user, id); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) ownedShares(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	categories, err := s.deps.Shares.OwnedCategoriesWithShares(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, categories)
}

func (s *Server) sharedWithMe(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	shares, err := s.deps.Shares.SharedWithMe(c.Request.Context(), user)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, shares)
}
