package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

// Server is a gin engine wrapped in an http.Server.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logger.Logger
	cfg    Config
}

// NewServer applies the standard middleware chain, then routes.
func NewServer(cfg Config, log logger.Logger, routes func(*gin.Engine)) *Server {
	cfg.setDefaults()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Recovery wraps everything; the access log reads the request id set
	// before it.
	router.Use(
		RecoveryMiddleware(log),
		RequestIDLoggerMiddleware(log),
		LoggerMiddleware(log),
		CORSMiddleware(cfg.CORSOrigins),
	)

	if routes != nil {
		routes(router)
	}

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: log,
		cfg:    cfg,
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled or the listener fails. On cancellation
// in-flight requests get ShutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		logger.String("address", s.server.Addr),
		logger.String("version", s.cfg.ServiceVersion),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.server.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server", logger.Duration("timeout", s.cfg.ShutdownTimeout))

	// ctx is already done; the drain gets a fresh deadline.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	s.logger.Info("HTTP server stopped")
	return nil
}
