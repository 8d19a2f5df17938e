package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"account-service/config"
	"account-service/internal/handler"
	"account-service/internal/middleware"
	"account-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	User   *handler.UserHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if l == nil {
		l = logger.NewNop()
	}
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = cfg.MaxUploadBytes

	s := &Server{
		engine: engine,
		config: cfg,
		logger: l,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the engine wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(s.engine)
}

// SetupRoutes binds the route table. limiter may be nil, in which case login
// attempts are not rate limited.
func (s *Server) SetupRoutes(handlers *Handlers, limiter middleware.LoginLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", handlers.Health.Ping)
	s.engine.GET("/health", handlers.Health.Health)

	login := []gin.HandlerFunc{}
	if limiter != nil {
		login = append(login, middleware.LoginRateLimitMiddleware(limiter))
	}
	login = append(login, middleware.EmailValidator(), handlers.User.Login)

	s.engine.POST("/login", login...)
	s.engine.POST("/profile",
		middleware.MultipartForm(s.config.MaxUploadBytes),
		middleware.EmailValidator(),
		handlers.User.UpdateProfile,
	)
	s.engine.GET("/profile/:email", handlers.User.GetProfile)
	s.engine.DELETE("/deleteUser", middleware.EmailValidator(), handlers.User.DeleteUser)
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		s.logger.Errorf("Error in starting the server: %s", err)
		return err
	case <-quit:
	}

	s.logger.Infof("Quitting signal received.. Shutting down within %s", s.config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")
	return nil
}
