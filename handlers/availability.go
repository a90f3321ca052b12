package handlers

import (
	"net/http"

	"clinicbook/services/availability"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the slot listing endpoint.
type AvailabilityHandler struct {
	Service availability.Service
}

func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailableSlots handles GET /api/availability/:professionalId?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	professionalID := c.Param("professionalId")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'date' is required"})
		return
	}

	result, err := h.Service.GetAvailableSlots(c.Request.Context(), professionalID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
