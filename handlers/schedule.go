package handlers

import (
	"net/http"

	blockeddayRepo "clinicbook/database/repository/blockedday"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler manages the weekly schedule blocks and blocked days a
// professional maintains.
type ScheduleHandler struct {
	Schedules   scheduleRepo.ScheduleRepository
	BlockedDays blockeddayRepo.BlockedDayRepository
}

func NewScheduleHandler(schedules scheduleRepo.ScheduleRepository, blockedDays blockeddayRepo.BlockedDayRepository) *ScheduleHandler {
	return &ScheduleHandler{Schedules: schedules, BlockedDays: blockedDays}
}

// CreateBlock handles POST /api/schedule-blocks.
func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	var block models.ScheduleBlock
	if err := c.ShouldBindJSON(&block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := block.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.Schedules.Create(c.Request.Context(), &block); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlocks handles GET /api/schedule-blocks/:professionalId.
func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.Schedules.GetByProfessional(c.Request.Context(), c.Param("professionalId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

// DeleteBlock handles DELETE /api/schedule-blocks/:professionalId/:blockId.
func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	err := h.Schedules.DeleteByID(c.Request.Context(), c.Param("professionalId"), c.Param("blockId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBlockedDay handles POST /api/blocked-days.
func (h *ScheduleHandler) CreateBlockedDay(c *gin.Context) {
	var day models.BlockedDay
	if err := c.ShouldBindJSON(&day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if day.ProfessionalID == "" || day.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "professionalId and date are required"})
		return
	}

	if err := h.BlockedDays.Create(c.Request.Context(), &day); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// ListBlockedDays handles GET /api/blocked-days/:professionalId.
func (h *ScheduleHandler) ListBlockedDays(c *gin.Context) {
	days, err := h.BlockedDays.GetByProfessional(c.Request.Context(), c.Param("professionalId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedDays": days})
}

// DeleteBlockedDay handles DELETE /api/blocked-days/:professionalId/:id.
func (h *ScheduleHandler) DeleteBlockedDay(c *gin.Context) {
	err := h.BlockedDays.Delete(c.Request.Context(), c.Param("professionalId"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
