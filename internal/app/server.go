// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"homequest_backend/internal/auth"
	"homequest_backend/internal/config"
	"homequest_backend/internal/identity"
	"homequest_backend/internal/jobs"
	"homequest_backend/internal/middleware"
	"homequest_backend/internal/profile"
	"homequest_backend/internal/search"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	authHandler    *auth.Handler
	profileHandler *profile.Handler
	searchHandler  *search.Handler

	archiveJob *jobs.CatalogArchiveJob

	authMW gin.HandlerFunc
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	verifier identity.Verifier,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	searchHandler *search.Handler,
	archiveJob *jobs.CatalogArchiveJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	authMW := middleware.AuthMiddleware(verifier, logger.Named("AuthMiddleware"))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/")
	authHandler.RegisterRoutes(root)
	searchHandler.RegisterRoutes(root)
	profileHandler.RegisterRoutes(root, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		authHandler:    authHandler,
		profileHandler: profileHandler,
		searchHandler:  searchHandler,
		archiveJob:     archiveJob,
		authMW:         authMW,
	}, nil
}

// Router exposes the underlying Gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Start() error {
	if s.archiveJob != nil {
		if err := s.archiveJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start listing archive job", zap.Error(err))
		}
	} else {
		s.logger.Info("Listing archive job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.archiveJob != nil {
		s.archiveJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
