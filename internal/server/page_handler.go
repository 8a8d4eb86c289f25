package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
)

// home renders the signed-in overview: the user's categories plus the
// today/overdue/history buckets.
func (s *Server) home(c *gin.Context) {
	user, err := s.currentUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if user == nil {
		// The token verified but the account is gone; drop the cookie and
		// start over.
		s.clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx := c.Request.Context()
	categories, err := s.deps.Categories.ListOwned(ctx, user)
	if err != nil {
		respondErr(c, err)
		return
	}
	overview, err := s.deps.Overview.Build(ctx, user, time.Now())
	if err != nil {
		respondErr(c, err)
		return
	}

	respondOK(c, gin.H{
		"user":       user,
		"categories": categories,
		"overview":   overview,
	})
}

func (s *Server) loginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username and password to /login"})
}

func (s *Server) signupPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "POST username and password to /signup"})
}

// settingsPage shows both sides of the sharing ledger for the caller.
func (s *Server) settingsPage(c *gin.Context) {
	user, err := s.currentUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	if user == nil {
		s.clearSessionCookie(c)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	ctx := c.Request.Context()
	owned, err := s.deps.Shares.OwnedCategoriesWithShares(ctx, user)
	if err != nil {
		respondErr(c, err)
		return
	}
	received, err := s.deps.Shares.SharedWithMe(ctx, user)
	if err != nil {
		respondErr(c, err)
		return
	}

	respondOK(c, gin.H{
		"user":         user,
		"owned":        owned,
		"sharedWithMe": received,
	})
}

// sharedCategoryPage renders a category by id. Malformed ids and categories
// the caller may not see are both hard 404s, so ids cannot be probed.
func (s *Server) sharedCategoryPage(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	user, err := s.currentUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	page, err := s.deps.Categories.Page(c.Request.Context(), user, id)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		respondErr(c, err)
		return
	}
	respondOK(c, page)
}
