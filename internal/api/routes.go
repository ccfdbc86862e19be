package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/link-checker/internal/metrics"
)

// SetupRoutes configures all API routes.
// Health routes are registered by the infrastructure gin builder.
func SetupRoutes(router *gin.Engine, h *Handler, m *metrics.Metrics) {
	router.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(m.Middleware())

	scans := v1.Group("/scans")
	scans.POST("", h.StartScan)
	scans.GET("", h.ListScans)
	scans.GET("/progress", h.GetProgress)
	scans.POST("/stop", h.StopScan)
	scans.POST("/force-stop", h.ForceStopScan)
	scans.POST("/cleanup", h.CleanupStaleScans)

	links := v1.Group("/links")
	links.GET("", h.ListLinks)
	links.GET("/:id", h.GetLink)
	links.POST("/:id/dismiss", h.DismissLink)
	links.POST("/:id/restore", h.RestoreLink)
	links.POST("/:id/recheck", h.RecheckLink)

	v1.POST("/check", h.CheckURL)
	v1.POST("/recheck", h.RecheckBroken)
	v1.GET("/stats", h.GetStats)
}
