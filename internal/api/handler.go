// Package api exposes scans and links over HTTP.
package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ScanService is the scan orchestration surface used by the handlers.
type ScanService interface {
	Start(ctx context.Context, scanType string) (*domain.Scan, error)
	StopScan(ctx context.Context) (bool, error)
	ForceStopScan(ctx context.Context) (int, error)
	CleanupStaleScans(ctx context.Context) (int, error)
	GetProgress(ctx context.Context) (domain.Progress, error)
	History(ctx context.Context, limit, offset int) ([]*domain.Scan, error)
	RecheckBrokenLinks(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*domain.LinkStats, error)
	InvalidateStats(ctx context.Context)
}

// LinkService reads and updates individual links.
type LinkService interface {
	GetByID(ctx context.Context, id int64) (*domain.Link, error)
	List(ctx context.Context, filter domain.LinkFilter) ([]*domain.Link, error)
	Count(ctx context.Context, filter domain.LinkFilter) (int, error)
	SetDismissed(ctx context.Context, id int64, dismissed bool) error
	UpdateLinkResult(ctx context.Context, id int64, result domain.CheckResult, checkedAt time.Time) error
}

// JobTrigger runs a maintenance job under the same lock as its scheduled
// runs and reports whether it ran.
type JobTrigger interface {
	Trigger(ctx context.Context, name string, fn tasks.Handler) (bool, error)
}

// URLChecker probes one URL.
type URLChecker interface {
	Check(ctx context.Context, rawURL string) domain.CheckResult
}

// Handler serves the link checker API.
type Handler struct {
	scans   ScanService
	links   LinkService
	checker URLChecker
	jobs    JobTrigger
	logger  infralogger.Logger
	now     func() time.Time
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(scans ScanService, links LinkService, checker URLChecker, jobs JobTrigger, log infralogger.Logger) *Handler {
	if log == nil {
		log = infralogger.NewNop()
	}
	return &Handler{
		scans:   scans,
		links:   links,
		checker: checker,
		jobs:    jobs,
		logger:  log,
		now:     time.Now,
	}
}

// log returns the request-scoped logger set by the request id middleware,
// falling back to the handler's own.
func (h *Handler) log(c *gin.Context) infralogger.Logger {
	return infralogger.FromContext(c.Request.Context(), h.logger).With(infralogger.Component("api"))
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// internalError logs err and answers 500 without leaking details.
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.log(c).Error(msg,
		infralogger.String("path", c.FullPath()),
		infralogger.Error(err),
	)
	respondError(c, http.StatusInternalServerError, msg)
}

// pagination reads limit and offset, clamping limit to [1, maxListLimit].
func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultListLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, maxListLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid link id")
		return 0, false
	}
	return id, true
}
