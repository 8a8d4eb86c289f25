package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/apperr"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

func (s *Server) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Username and password are required"))
		return
	}

	ctx := c.Request.Context()
	user, err := s.deps.Auth.Signup(ctx, req.Username, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	// One-shot: if this browser carried a pending-share token, clone the
	// referenced category into the new account and consume the token either
	// way, so a second signup with the same cookie clones nothing.
	if token, cookieErr := c.Cookie(pendingCookie); cookieErr == nil && token != "" {
		categoryID, ok, err := s.deps.Pending.Lookup(ctx, token, time.Now())
		if err != nil {
			log.Printf("[error] pending share lookup: %v", err)
		} else if ok {
			if err := s.deps.Clone.CloneForUser(ctx, categoryID, user.ID); err != nil {
				log.Printf("[error] clone shared category: %v", err)
			}
		}
		if err := s.deps.Pending.Consume(ctx, token); err != nil {
			log.Printf("[error] consume pending share: %v", err)
		}
		s.clearPendingCookie(c)
	}

	if err := s.issueSession(c, user.ID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"user": user})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Username and password are required"))
		return
	}

	user, err := s.deps.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondErr(c, err)
		return
	}

	if err := s.issueSession(c, user.ID); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"user": user})
}

func (s *Server) logout(c *gin.Context) {
	s.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

func (s *Server) changePassword(c *gin.Context) {
	user, err := s.requireUser(c)
	if err != nil {
		respondErr(c, err)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, apperr.New(apperr.Invalid, "Current password is required"))
		return
	}

	if err := s.deps.Auth.ChangePassword(c.Request.Context(), user, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, nil)
}

func (s *Server) issueSession(c *gin.Context, userID uint) error {
	token, err := s.deps.Sessions.IssueToken(userID, time.Now())
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Failed to create session", err)
	}
	s.setSessionCookie(c, token)
	return nil
}
