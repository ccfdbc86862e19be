package gin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

// ServerBuilder assembles a Server step by step.
type ServerBuilder struct {
	cfg          Config
	logger       logger.Logger
	routes       func(*gin.Engine)
	healthChecks map[string]HealthChecker
}

// NewServerBuilder starts a builder for a service listening on port.
func NewServerBuilder(serviceName string, port int) *ServerBuilder {
	return &ServerBuilder{
		cfg:          Config{ServiceName: serviceName, Port: port},
		healthChecks: make(map[string]HealthChecker),
	}
}

func (b *ServerBuilder) WithLogger(log logger.Logger) *ServerBuilder {
	b.logger = log
	return b
}

func (b *ServerBuilder) WithDebug(debug bool) *ServerBuilder {
	b.cfg.Debug = debug
	return b
}

func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.cfg.ServiceVersion = version
	return b
}

func (b *ServerBuilder) WithCORSOrigins(origins []string) *ServerBuilder {
	b.cfg.CORSOrigins = origins
	return b
}

// WithTimeouts sets read, write and idle timeouts. Zero keeps the default.
func (b *ServerBuilder) WithTimeouts(read, write, idle time.Duration) *ServerBuilder {
	b.cfg.ReadTimeout = read
	b.cfg.WriteTimeout = write
	b.cfg.IdleTimeout = idle
	return b
}

// WithHealthCheck registers a named check reported by GET /health.
func (b *ServerBuilder) WithHealthCheck(name string, checker HealthChecker) *ServerBuilder {
	b.healthChecks[name] = checker
	return b
}

// WithDatabaseHealthCheck reports unhealthy when ping fails.
func (b *ServerBuilder) WithDatabaseHealthCheck(ping func() error) *ServerBuilder {
	return b.WithHealthCheck("database", PingHealthChecker("Database", HealthStatusUnhealthy, ping))
}

// WithRedisHealthCheck reports degraded when ping fails; scans keep running
// on Postgres alone.
func (b *ServerBuilder) WithRedisHealthCheck(ping func() error) *ServerBuilder {
	return b.WithHealthCheck("redis", PingHealthChecker("Redis", HealthStatusDegraded, ping))
}

func (b *ServerBuilder) WithRoutes(routes func(*gin.Engine)) *ServerBuilder {
	b.routes = routes
	return b
}

// Build creates the Server. Health routes are registered before service routes.
func (b *ServerBuilder) Build() *Server {
	log := b.logger
	if log == nil {
		log = logger.NewNop()
	}

	cfg := b.cfg
	checks := b.healthChecks
	routes := b.routes

	return NewServer(cfg, log, func(router *gin.Engine) {
		RegisterHealthRoutes(router, HealthOptions{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Checks:         checks,
		})
		if routes != nil {
			routes(router)
		}
	})
}
