package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/middleware"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves the read-only operator views of stored leads
type AdminHandler struct {
	leadService *services.LeadService
	logger      *logrus.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(leadService *services.LeadService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// ListLeads returns the newest leads of one kind
// @Summary List leads
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param kind path string true "booking, multi-city, contact, enterprise-inquiry or services"
// @Param limit query int false "Max results"
// @Success 200 {object} models.LeadList
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/leads/{kind} [get]
func (h *AdminHandler) ListLeads(c *gin.Context) {
	kind, ok := models.ParseRequestType(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Unknown lead kind"})
		return
	}

	limit := services.DefaultLeadLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid limit", Code: services.CodeInvalidField})
			return
		}
		limit = parsed
	}

	list, err := h.leadService.List(c.Request.Context(), kind, limit)
	if err != nil {
		h.logger.WithError(err).WithField("kind", kind).Error("Failed to list leads")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch leads"})
		return
	}

	entry := h.logger.WithFields(logrus.Fields{"kind": kind, "count": list.Count})
	if op, ok := middleware.GetOperatorContext(c); ok {
		entry = entry.WithField("operator", op.Email)
	}
	entry.Debug("Leads listed")

	c.JSON(http.StatusOK, list)
}
