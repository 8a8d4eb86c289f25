// Package server is the HTTP transport: gin routes, the route gate, and the
// cookie plumbing around the service layer.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Gerald-Wheaton/personal-todos/internal/config"
	"github.com/Gerald-Wheaton/personal-todos/internal/service"
)

// Deps bundles the services the server routes to.
type Deps struct {
	Sessions   *service.SessionService
	Pending    *service.PendingShareService
	Auth       *service.AuthService
	Clone      *service.CloneService
	Categories *service.CategoryService
	Todos      *service.TodoService
	Assignees  *service.AssigneeService
	Shares     *service.ShareService
	Overview   *service.OverviewService
	Generator  *service.GeneratorService
}

// Server wires handlers to services.
type Server struct {
	cfg  config.Config
	deps Deps
}

func New(cfg config.Config, deps Deps) *Server {
	return &Server{cfg: cfg, deps: deps}
}

// Router builds the gin engine with the route gate in front of every page.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(s.routeGate())

	// Pages. The gate has already redirected anonymous visitors away from
	// everything but login, signup and shared links.
	router.GET("/", s.home)
	router.GET("/login", s.loginPage)
	router.GET("/signup", s.signupPage)
	router.GET("/settings", s.settingsPage)
	router.GET("/todo/:id", s.sharedCategoryPage)

	// Auth actions live on the page paths so the gate's login/signup rules
	// apply to them too.
	router.POST("/login", s.login)
	router.POST("/signup", s.signup)
	router.POST("/logout", s.logout)

	// The API group bypasses the gate; every handler resolves the session
	// itself and reports not-authenticated as a structured result.
	api := router.Group("/api")
	{
		api.POST("/password", s.changePassword)

		api.POST("/todos", s.createTodo)
		api.PATCH("/todos/:id", s.updateTodo)
		api.POST("/todos/:id/toggle", s.toggleTodo)
		api.DELETE("/todos/:id", s.deleteTodo)
		api.POST("/todos/:id/assignees/:assigneeID", s.assignTodo)
		api.DELETE("/todos/:id/assignees/:assigneeID", s.unassignTodo)

		api.POST("/categories", s.createCategory)
		api.PATCH("/categories/:id", s.updateCategory)
		api.DELETE("/categories/:id", s.deleteCategory)

		api.POST("/assignees", s.createAssignee)
		api.DELETE("/assignees/:id", s.deleteAssignee)

		api.POST("/shares", s.createShare)
		api.DELETE("/shares/:id", s.revokeShare)
		api.GET("/shares/owned", s.ownedShares)
		api.GET("/shares/received", s.sharedWithMe)

		api.POST("/generate", s.generateTodos)
	}

	return router
}
