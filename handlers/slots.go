package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"meetbridge/models"
	"meetbridge/services/auth"
	"meetbridge/services/calendar"
	"meetbridge/utils"
)

// SchedulingHandler serves the public scheduling endpoints.
type SchedulingHandler struct {
	Svc    calendar.SchedulingService
	Logger *zap.Logger
}

// NewSchedulingHandler returns a handler backed by the given service.
func NewSchedulingHandler(svc calendar.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Svc: svc, Logger: logger}
}

// AvailableSlotsHandler handles GET /gmeet-api/available-slots.
func (h *SchedulingHandler) AvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")

	slots, err := h.Svc.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		h.respondError(c, err, "failed to compute available slots")
		return
	}

	c.JSON(http.StatusOK, models.AvailableSlotsResponse{AvailableSlots: slots})
}

// respondError maps service errors onto the HTTP surface: client input to
// 4xx, token issuance to 502, and calendar API failures to whatever status
// the backend returned, body passed through unchanged.
func (h *SchedulingHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, calendar.ErrInvalidDate):
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
	case errors.Is(err, auth.ErrTokenExchange):
		h.Logger.Error(logMsg, zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Calendar authorization failed", "")
	default:
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			h.Logger.Error(logMsg, zap.Int("status", apiErr.Code), zap.Error(err))
			c.Data(apiErr.Code, "application/json", []byte(apiErr.Body))
			return
		}
		h.Logger.Error(logMsg, zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Calendar service unavailable", "")
	}
}
