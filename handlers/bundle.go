package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Scheduling endpoints
	AvailableSlotsHandler gin.HandlerFunc
	CreateMeetingHandler  gin.HandlerFunc
}
