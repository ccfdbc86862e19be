package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/database"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// ListLinks handles GET /api/v1/links.
// Query: status (broken|warning|ok|unchecked), type, dismissed=true, limit, offset.
func (h *Handler) ListLinks(c *gin.Context) {
	limit, offset := pagination(c)
	filter := domain.LinkFilter{
		Status:           c.Query("status"),
		LinkType:         c.Query("type"),
		IncludeDismissed: c.Query("dismissed") == "true",
		Limit:            limit,
		Offset:           offset,
	}

	ctx := c.Request.Context()
	links, err := h.links.List(ctx, filter)
	if err != nil {
		if errors.Is(err, database.ErrInvalidFilter) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(c, "failed to list links", err)
		return
	}

	total, err := h.links.Count(ctx, filter)
	if err != nil {
		h.internalError(c, "failed to count links", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"links":  links,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetLink handles GET /api/v1/links/:id.
func (h *Handler) GetLink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	link, err := h.links.GetByID(c.Request.Context(), id)
	if err != nil {
		h.linkError(c, "failed to get link", err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// DismissLink handles POST /api/v1/links/:id/dismiss.
func (h *Handler) DismissLink(c *gin.Context) {
	h.setDismissed(c, true)
}

// RestoreLink handles POST /api/v1/links/:id/restore.
func (h *Handler) RestoreLink(c *gin.Context) {
	h.setDismissed(c, false)
}

func (h *Handler) setDismissed(c *gin.Context, dismissed bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.links.SetDismissed(ctx, id, dismissed); err != nil {
		h.linkError(c, "failed to update link", err)
		return
	}
	h.scans.InvalidateStats(ctx)

	c.JSON(http.StatusOK, gin.H{"id": id, "is_dismissed": dismissed})
}

// RecheckLink handles POST /api/v1/links/:id/recheck. The verdict is stored
// like a scan result.
func (h *Handler) RecheckLink(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	link, err := h.links.GetByID(ctx, id)
	if err != nil {
		h.linkError(c, "failed to get link", err)
		return
	}

	result := h.checker.Check(ctx, link.URL)
	if err := h.links.UpdateLinkResult(ctx, id, result, h.now()); err != nil {
		h.linkError(c, "failed to save link result", err)
		return
	}
	h.scans.InvalidateStats(ctx)

	h.log(c).Debug("Link rechecked",
		infralogger.Int64("link_id", id),
		infralogger.String("outcome", result.Outcome()),
	)
	c.JSON(http.StatusOK, result)
}

type checkRequest struct {
	URL string `binding:"required" json:"url"`
}

// CheckURL handles POST /api/v1/check, an ad hoc probe that stores nothing.
func (h *Handler) CheckURL(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "url is required")
		return
	}

	c.JSON(http.StatusOK, h.checker.Check(c.Request.Context(), req.URL))
}

func (h *Handler) linkError(c *gin.Context, msg string, err error) {
	if errors.Is(err, database.ErrLinkNotFound) {
		respondError(c, http.StatusNotFound, "link not found")
		return
	}
	h.internalError(c, msg, err)
}
