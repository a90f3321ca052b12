package handlers

import (
	"net/http"

	"clinicbook/models"
	"clinicbook/services/confirmation"

	"github.com/gin-gonic/gin"
)

// ConfirmationHandler serves the public, token-based endpoints a patient hits
// from their confirmation link. No authentication beyond the token itself.
type ConfirmationHandler struct {
	Tokens confirmation.Service
}

func NewConfirmationHandler(tokens confirmation.Service) *ConfirmationHandler {
	return &ConfirmationHandler{Tokens: tokens}
}

// ResolveToken handles GET /api/confirm/:token.
func (h *ConfirmationHandler) ResolveToken(c *gin.Context) {
	summary, err := h.Tokens.ResolveToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Confirm handles POST /api/confirm/:token.
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	result, err := h.Tokens.ConfirmByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Cancel handles POST /api/confirm/:token/cancel.
func (h *ConfirmationHandler) Cancel(c *gin.Context) {
	result, err := h.Tokens.CancelByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RequestReschedule handles POST /api/confirm/:token/reschedule.
func (h *ConfirmationHandler) RequestReschedule(c *gin.Context) {
	var req models.RescheduleByTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Tokens.RequestRescheduleByToken(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
