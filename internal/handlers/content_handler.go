package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/sirupsen/logrus"
)

// ContentHandler serves news articles and destination cards
type ContentHandler struct {
	contentService *services.ContentService
	logger         *logrus.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *services.ContentService, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// GetNews lists active articles, or returns one article when slug is given
// @Summary List news
// @Produce json
// @Param slug query string false "Article slug"
// @Param featured query bool false "Featured only"
// @Param category query string false "Category"
// @Param limit query int false "Max results"
// @Success 200 {array} models.News
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/news [get]
func (h *ContentHandler) GetNews(c *gin.Context) {
	if slug, ok := c.GetQuery("slug"); ok {
		article, err := h.contentService.GetNewsBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, services.ErrArticleNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Article not found"})
				return
			}
			h.logger.WithError(err).WithField("slug", slug).Error("Failed to fetch article")
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch news"})
			return
		}
		c.JSON(http.StatusOK, article)
		return
	}

	filter := models.NewsFilter{
		FeaturedOnly: c.Query("featured") == "true",
		Category:     c.Query("category"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit", Code: services.CodeInvalidField})
			return
		}
		filter.Limit = limit
	}

	news, err := h.contentService.ListNews(c.Request.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch news")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch news"})
		return
	}

	c.JSON(http.StatusOK, news)
}

// GetDestinations lists active destination cards
// @Summary List destinations
// @Produce json
// @Success 200 {array} models.Destination
// @Failure 500 {object} models.ErrorResponse
// @Router /api/destinations [get]
func (h *ContentHandler) GetDestinations(c *gin.Context) {
	destinations, err := h.contentService.ListDestinations(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch destinations")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch destinations"})
		return
	}

	c.JSON(http.StatusOK, destinations)
}
