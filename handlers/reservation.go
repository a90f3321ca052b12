package handlers

import (
	"net/http"

	"clinicbook/models"
	"clinicbook/services/confirmation"
	"clinicbook/services/reservation"

	"github.com/gin-gonic/gin"
)

// ReservationHandler serves the professional-facing reservation endpoints.
type ReservationHandler struct {
	Ledger reservation.Service
	Tokens confirmation.Service
}

func NewReservationHandler(ledger reservation.Service, tokens confirmation.Service) *ReservationHandler {
	return &ReservationHandler{Ledger: ledger, Tokens: tokens}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := h.Ledger.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// UpdateReservation handles PATCH /api/reservations/:id.
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	var req models.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := h.Ledger.UpdateReservation(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AddSession handles POST /api/reservations/:id/sessions.
func (h *ReservationHandler) AddSession(c *gin.Context) {
	var req models.AddSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := h.Ledger.AddSession(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ReleaseDate handles POST /api/reservations/release. It clears the date on
// every affected reservation and returns them so the caller sees who was hit.
func (h *ReservationHandler) ReleaseDate(c *gin.Context) {
	var req models.ReleaseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	affected, err := h.Ledger.ReleaseDate(c.Request.Context(), req.ProfessionalID, req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": len(affected), "reservations": affected})
}

// GenerateConfirmationLink handles POST /api/reservations/:id/confirmation-link.
func (h *ReservationHandler) GenerateConfirmationLink(c *gin.Context) {
	actor := c.GetString("professionalID")
	if actor == "" {
		actor = "staff"
	}

	link, err := h.Tokens.GenerateLink(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// ResendConfirmationLink handles POST /api/reservations/:id/confirmation-link/resend.
func (h *ReservationHandler) ResendConfirmationLink(c *gin.Context) {
	link, err := h.Tokens.ResendLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}
