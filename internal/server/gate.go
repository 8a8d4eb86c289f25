package server

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

const (
	sessionCookie = "session"
	pendingCookie = "pending_category_id"
)

var sharedTodoPattern = regexp.MustCompile(`^/todo/(\d+)$`)

// routeGate runs before every handler and decides, per path, whether the
// request may proceed, gets bounced to login, or — for an anonymous visit to
// a shared-category link — gets a pending-share token and a redirect to
// signup. It never checks category-level permission; that stays with the
// page handler.
func (s *Server) routeGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		// API handlers resolve the session themselves and answer with the
		// structured not-authenticated result instead of a redirect.
		if path == "/api" || strings.HasPrefix(path, "/api/") {
			return
		}

		raw, _ := c.Cookie(sessionCookie)
		_, authed := s.deps.Sessions.ParseToken(raw)

		switch {
		case path == "/login" || path == "/signup":
			// No re-login while a session is live.
			if authed {
				c.Redirect(http.StatusFound, "/")
				c.Abort()
			}
		case sharedTodoPattern.MatchString(path):
			if !authed {
				s.rememberSharedVisit(c, path)
				c.Redirect(http.StatusFound, "/signup")
				c.Abort()
			}
		default:
			if !authed {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
			}
		}
	}
}

// rememberSharedVisit mints a pending-share token for the category in the
// path and hands it to the browser.
func (s *Server) rememberSharedVisit(c *gin.Context, path string) {
	match := sharedTodoPattern.FindStringSubmatch(path)
	if match == nil {
		return
	}
	id, err := strconv.ParseUint(match[1], 10, 64)
	if err != nil || id == 0 {
		return
	}
	token, err := s.deps.Pending.Issue(c.Request.Context(), uint(id), time.Now())
	if err != nil {
		// The visitor still lands on signup, just without the clone.
		log.Printf("[error] issue pending share: %v", err)
		return
	}
	s.setPendingCookie(c, token)
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(service.SessionTTL.Seconds()), "/", "", s.cfg.Production, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cfg.Production, true)
}

func (s *Server) setPendingCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(pendingCookie, token, int(service.PendingShareTTL.Seconds()), "/", "", s.cfg.Production, true)
}

func (s *Server) clearPendingCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(pendingCookie, "", -1, "/", "", s.cfg.Production, true)
}
