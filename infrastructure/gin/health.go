package gin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the state reported for the service or one dependency.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  HealthStatus           `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Uptime  string                 `json:"uptime"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is one dependency's health.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
	Latency string       `json:"latency,omitempty"`
}

// HealthChecker probes one dependency.
type HealthChecker func() CheckResult

// HealthOptions configures RegisterHealthRoutes.
type HealthOptions struct {
	ServiceName    string
	ServiceVersion string
	Checks         map[string]HealthChecker
}

// RegisterHealthRoutes adds GET and HEAD /health. GET runs every check and
// answers 503 when any of them is unhealthy; a degraded check still
// answers 200.
func RegisterHealthRoutes(router *gin.Engine, opts HealthOptions) {
	started := time.Now()

	router.HEAD("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) {
		resp := HealthResponse{
			Status:  HealthStatusHealthy,
			Service: opts.ServiceName,
			Version: opts.ServiceVersion,
			Uptime:  time.Since(started).Truncate(time.Second).String(),
		}

		if len(opts.Checks) > 0 {
			resp.Checks = make(map[string]CheckResult, len(opts.Checks))
			for name, check := range opts.Checks {
				result := check()
				resp.Checks[name] = result
				resp.Status = worse(resp.Status, result.Status)
			}
		}

		code := http.StatusOK
		if resp.Status == HealthStatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	})
}

func worse(a, b HealthStatus) HealthStatus {
	rank := map[HealthStatus]int{HealthStatusHealthy: 0, HealthStatusDegraded: 1, HealthStatusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// PingHealthChecker wraps a ping. failStatus is reported when it fails, so
// optional dependencies can degrade instead of fail.
func PingHealthChecker(name string, failStatus HealthStatus, ping func() error) HealthChecker {
	return func() CheckResult {
		start := time.Now()
		err := ping()
		result := CheckResult{
			Status:  HealthStatusHealthy,
			Message: name + " reachable",
			Latency: time.Since(start).Round(time.Microsecond).String(),
		}
		if err != nil {
			result.Status = failStatus
			result.Message = name + " unreachable: " + err.Error()
		}
		return result
	}
}
