package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetbridge/models"
	"meetbridge/services/calendar"
)

// CreateMeetingHandler handles POST /gmeet-api/create-meeting.
func (h *SchedulingHandler) CreateMeetingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid form payload", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateMeeting(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidTimeSlot) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No correct time slot selected"})
			return
		}
		h.respondError(c, err, "failed to create meeting")
		return
	}

	h.Logger.Info("booking confirmed",
		zap.String("date", req.SelectedDate),
		zap.String("time", req.Timetable))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Meeting created successfully",
		"data":    created,
	})
}
