// Package api exposes the analysis pipeline over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server wraps the gin engine and its handlers.
type Server struct {
	router  *gin.Engine
	handler *Handler
}

// NewServer creates the HTTP server. devMode keeps gin's debug output.
func NewServer(devMode bool) *Server {
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.Default(),
		handler: NewHandler(),
	}
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", s.handler.Health)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/analyze", s.handler.Analyze)
		v1.POST("/optimize", s.handler.Optimize)
	}
}

// Router exposes the engine, used by the handler tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
