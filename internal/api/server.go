package api

import (
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/link-checker/infrastructure/gin"
	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/config"
	"github.com/jonesrussell/north-cloud/link-checker/internal/metrics"
)

const (
	defaultReadTimeout = 10 * time.Second
	// Starting a scan runs discovery inline, so writes get more room.
	defaultWriteTimeout = 5 * time.Minute
	defaultIdleTimeout  = 60 * time.Second
)

// ServerDeps bundles what NewServer wires into the router.
type ServerDeps struct {
	Handler *Handler
	Metrics *metrics.Metrics
	// Nil pings skip the corresponding health check.
	DatabasePing func() error
	RedisPing    func() error
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Config, deps ServerDeps, log infralogger.Logger) *infragin.Server {
	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout)

	if deps.DatabasePing != nil {
		builder = builder.WithDatabaseHealthCheck(deps.DatabasePing)
	}
	if deps.RedisPing != nil {
		builder = builder.WithRedisHealthCheck(deps.RedisPing)
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, deps.Handler, deps.Metrics)
		}).
		Build()
}
