package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/sirupsen/logrus"
)

// Pinger is satisfied by the database connection
type Pinger interface {
	PingContext(ctx context.Context) error
}

// SiteHandler serves the sitemap, robots.txt and the health probe
type SiteHandler struct {
	sitemapService *services.SitemapService
	db             Pinger
	logger         *logrus.Logger
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(sitemapService *services.SitemapService, db Pinger, logger *logrus.Logger) *SiteHandler {
	return &SiteHandler{
		sitemapService: sitemapService,
		db:             db,
		logger:         logger,
	}
}

// Sitemap serves /sitemap.xml
func (h *SiteHandler) Sitemap(c *gin.Context) {
	doc, err := h.sitemapService.Document(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build sitemap")
		c.String(http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}

// Robots serves /robots.txt
func (h *SiteHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.sitemapService.Robots())
}

// Health reports whether the database answers
func (h *SiteHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
			"error":    "Database connection failed",
		})
		return
	}

	resp := gin.H{
		"status":   "healthy",
		"database": "connected",
	}
	if built := h.sitemapService.BuiltAt(); !built.IsZero() {
		resp["sitemap_built_at"] = built.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
