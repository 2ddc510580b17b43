// Package http exposes the auth and bookmark operations over a JSON HTTP API.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/linkvault/internal/logging"
	"github.com/dmitrijs2005/linkvault/internal/server/services"
)

type Server struct {
	address   string
	auth      *services.AuthService
	bookmarks *services.BookmarkService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, as *services.AuthService, bs *services.BookmarkService, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		auth:      as,
		bookmarks: bs,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Router builds the gin engine with all routes registered. Split out from Run
// so tests can drive it with httptest.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", s.handleSignUp)
		authRoutes.POST("/signin", s.handleSignIn)
	}

	bookmarkRoutes := router.Group("/bookmarks")
	bookmarkRoutes.Use(s.requireAuth())
	{
		bookmarkRoutes.GET("", s.handleListBookmarks)
		bookmarkRoutes.POST("", s.handleCreateBookmark)
		bookmarkRoutes.DELETE("/:id", s.handleDeleteBookmark)
	}

	return router
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
