package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/scan"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

type startScanRequest struct {
	Type string `json:"type"`
}

// StartScan handles POST /api/v1/scans.
func (h *Handler) StartScan(c *gin.Context) {
	var req startScanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	scanType := req.Type
	switch scanType {
	case "":
		scanType = domain.ScanTypeFull
	case domain.ScanTypeFull, domain.ScanTypeScheduled:
	default:
		respondError(c, http.StatusBadRequest, "unknown scan type")
		return
	}

	s, err := h.scans.Start(c.Request.Context(), scanType)
	if err != nil {
		if errors.Is(err, scan.ErrScanAlreadyRunning) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		h.internalError(c, "failed to start scan", err)
		return
	}

	h.log(c).Info("Scan started via API",
		infralogger.Int64("scan_id", s.ID),
		infralogger.Int("total_links", s.TotalLinks),
	)
	c.JSON(http.StatusAccepted, s)
}

// StopScan handles POST /api/v1/scans/stop.
func (h *Handler) StopScan(c *gin.Context) {
	stopped, err := h.scans.StopScan(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to stop scan", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": stopped})
}

// ForceStopScan handles POST /api/v1/scans/force-stop.
func (h *Handler) ForceStopScan(c *gin.Context) {
	n, err := h.scans.ForceStopScan(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to force-stop scans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": n})
}

// CleanupStaleScans handles POST /api/v1/scans/cleanup. It shares the
// cleanup job's lock and answers 409 while that job runs anywhere.
func (h *Handler) CleanupStaleScans(c *gin.Context) {
	var n int
	ran, err := h.jobs.Trigger(c.Request.Context(), tasks.JobCleanup, func(ctx context.Context) error {
		var cleanupErr error
		n, cleanupErr = h.scans.CleanupStaleScans(ctx)
		return cleanupErr
	})
	switch {
	case err != nil:
		h.internalError(c, "failed to clean up stale scans", err)
	case !ran:
		respondError(c, http.StatusConflict, "cleanup already running")
	default:
		c.JSON(http.StatusOK, gin.H{"failed": n})
	}
}

// GetProgress handles GET /api/v1/scans/progress.
func (h *Handler) GetProgress(c *gin.Context) {
	p, err := h.scans.GetProgress(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to get scan progress", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListScans handles GET /api/v1/scans.
func (h *Handler) ListScans(c *gin.Context) {
	limit, offset := pagination(c)

	scans, err := h.scans.History(c.Request.Context(), limit, offset)
	if err != nil {
		h.internalError(c, "failed to list scans", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": scans, "limit": limit, "offset": offset})
}

// RecheckBroken handles POST /api/v1/recheck. It shares the recheck job's
// lock and answers 409 while that job runs anywhere.
func (h *Handler) RecheckBroken(c *gin.Context) {
	var n int
	ran, err := h.jobs.Trigger(c.Request.Context(), tasks.JobRecheck, func(ctx context.Context) error {
		var recheckErr error
		n, recheckErr = h.scans.RecheckBrokenLinks(ctx)
		return recheckErr
	})
	switch {
	case err != nil:
		h.internalError(c, "failed to recheck links", err)
	case !ran:
		respondError(c, http.StatusConflict, "recheck already running")
	default:
		c.JSON(http.StatusOK, gin.H{"rechecked": n})
	}
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.scans.Stats(c.Request.Context())
	if err != nil {
		h.internalError(c, "failed to get stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
