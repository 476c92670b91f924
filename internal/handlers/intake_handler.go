package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pfjetdev/pfgrouptravel/internal/middleware"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/pfjetdev/pfgrouptravel/internal/utils"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps an intake payload. Multi-city bodies with five legs stay
// well under it.
const maxBodyBytes = 64 << 10

// IntakeHandler serves the lead intake endpoints
type IntakeHandler struct {
	intakeService *services.IntakeService
	logger        *logrus.Logger
	exposeDetails bool
}

// NewIntakeHandler creates a new intake handler. exposeDetails controls whether
// store error details reach the response body.
func NewIntakeHandler(intakeService *services.IntakeService, logger *logrus.Logger, exposeDetails bool) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// RegisterRoutes mounts one POST route per request type on rg
func (h *IntakeHandler) RegisterRoutes(rg gin.IRoutes) {
	for _, t := range models.RequestTypes {
		rg.POST("/"+string(t), h.Submit(t))
	}
}

// Submit returns the handler for one request type
// @Summary Submit a lead
// @Accept json
// @Produce json
// @Success 200 {object} models.SubmissionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
func (h *IntakeHandler) Submit(t models.RequestType) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Invalid request body",
				Code:  services.CodeInvalidJSON,
			})
			return
		}

		meta := services.SubmissionMeta{
			ClientIP:   utils.GetRealIP(c),
			UserAgent:  utils.GetUserAgent(c),
			RequestID:  middleware.GetRequestID(c),
			ReceivedAt: time.Now(),
		}

		submission, err := h.intakeService.Submit(c.Request.Context(), t, body, meta)
		if err != nil {
			h.respondError(c, t, err)
			return
		}

		c.JSON(http.StatusOK, models.SubmissionResponse{
			Success: true,
			Message: submission.Message,
			ID:      submission.ID,
		})
	}
}

func (h *IntakeHandler) respondError(c *gin.Context, t models.RequestType, err error) {
	var verr *services.ValidationError
	var perr *services.PersistenceError

	switch {
	case errors.As(err, &verr):
		h.logger.WithFields(logrus.Fields{
			"request_type": t,
			"code":         verr.Code,
			"fields":       verr.Fields,
		}).Info("Submission rejected")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:  verr.Message,
			Code:   verr.Code,
			Fields: verr.Fields,
		})
	case errors.As(err, &perr):
		resp := models.ErrorResponse{Error: perr.Error()}
		if h.exposeDetails && perr.Err != nil {
			resp.Details = perr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	default:
		h.logger.WithError(err).WithField("request_type", t).Error("Unexpected intake failure")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
	}
}
