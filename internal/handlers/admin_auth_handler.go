package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/middleware"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/sirupsen/logrus"
)

// AdminAuthHandler handles operator authentication HTTP requests
type AdminAuthHandler struct {
	adminAuthService *services.AdminAuthService
	logger           *logrus.Logger
}

// NewAdminAuthHandler creates a new admin auth handler
func NewAdminAuthHandler(adminAuthService *services.AdminAuthService, logger *logrus.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminAuthService: adminAuthService,
		logger:           logger,
	}
}

// Login handles operator login requests
// @Summary Operator login
// @Description Authenticate the operator and return an access token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.AdminLoginRequest true "Login credentials"
// @Success 200 {object} models.AdminLoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/admin/login [post]
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	response, err := h.adminAuthService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.WithField("email", req.Email).Warn("Admin login failed")
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
			return
		}
		h.logger.WithError(err).Error("Admin login error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	h.logger.WithField("email", response.Email).Info("Admin login successful")
	c.JSON(http.StatusOK, response)
}

// GetProfile returns the authenticated operator
// @Summary Get operator profile
// @Tags Admin Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} middleware.OperatorContext
// @Failure 401 {object} models.ErrorResponse
// @Router /api/admin/profile [get]
func (h *AdminAuthHandler) GetProfile(c *gin.Context) {
	op, exists := middleware.GetOperatorContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, op)
}
