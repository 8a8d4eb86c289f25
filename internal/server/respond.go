package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
	"github.com/Gerald-Wheaton/personal-todos/internal/model"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Invalid:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.NotOwner:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// respondErr converts any failure into the {success:false, error} envelope.
// Untyped errors are logged and hidden behind a generic message.
func respondErr(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Printf("[error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong"})
		return
	}
	if e.Err != nil {
		log.Printf("[error] %s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
	}
	c.JSON(statusFor(e.Kind), gin.H{"success": false, "error": e.Message})
}

// currentUser resolves the session cookie to a live user, nil for anonymous.
func (s *Server) currentUser(c *gin.Context) (*model.User, error) {
	raw, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, nil
	}
	return s.deps.Sessions.ResolveUser(c.Request.Context(), raw)
}

// requireUser is currentUser plus the structured not-authenticated failure.
func (s *Server) requireUser(c *gin.Context) (*model.User, error) {
	user, err := s.currentUser(c)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Failed to resolve session", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.Unauthenticated, "Not authenticated")
	}
	return user, nil
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
