package models

import "time"

// Explicit per-operation request/response schemas. Binding is strict: missing
// required fields fail validation instead of silently defaulting.

// CreateReservationRequest is the booking payload.
type CreateReservationRequest struct {
	ProfessionalID string     `json:"professionalId" binding:"required"`
	Patient        PatientRef `json:"patient" binding:"required"`
	Date           string     `json:"date" binding:"required"` // "YYYY-MM-DD"
	Time           string     `json:"time" binding:"required"` // "HH:MM"
	BranchID       string     `json:"branchId,omitempty"`
	Service        string     `json:"service,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// UpdateReservationRequest patches mutable reservation fields. Nil pointers
// leave the stored value untouched. Changing Date, Time or ProfessionalID
// re-runs the full availability and conflict check before committing.
type UpdateReservationRequest struct {
	Date           *string `json:"date,omitempty"`
	Time           *string `json:"time,omitempty"`
	ProfessionalID *string `json:"professionalId,omitempty"`
	Diagnosis      *string `json:"diagnosis,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Service        *string `json:"service,omitempty"`
}

// AddSessionRequest appends one visit to a reservation's history.
type AddSessionRequest struct {
	Date  string `json:"date" binding:"required"`
	Notes string `json:"notes,omitempty"`
}

// ReleaseDateRequest clears every reservation of one professional on one date.
type ReleaseDateRequest struct {
	ProfessionalID string `json:"professionalId" binding:"required"`
	Date           string `json:"date" binding:"required"`
}

// RescheduleByTokenRequest is the patient-facing reschedule payload.
type RescheduleByTokenRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	NewTime string `json:"newTime" binding:"required"`
	Reason  string `json:"reason,omitempty"`
}

// AvailabilityResult is the slot listing for one professional on one date.
// Hint is a human-readable reason when Times is empty (ineligible date vs no
// schedule); both cases present as zero slots.
type AvailabilityResult struct {
	ProfessionalID string   `json:"professionalId"`
	Date           string   `json:"date"`
	Times          []string `json:"times"`
	Hint           string   `json:"hint,omitempty"`
}

// ConfirmationLink is returned when a confirmation link is generated or
// resent. URL is empty on resend when the stored token is still valid: the
// server holds only a hash and cannot reproduce the plaintext.
type ConfirmationLink struct {
	ReservationID string    `json:"reservationId"`
	URL           string    `json:"url,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// TokenSummary is what an unauthenticated patient sees after resolving their
// confirmation token.
type TokenSummary struct {
	ReservationID string        `json:"reservationId"`
	Status        ConfirmStatus `json:"status"`
	PatientName   string        `json:"patientName"`
	Professional  string        `json:"professional,omitempty"`
	Date          string        `json:"date"`
	Time          string        `json:"time"`
	Service       string        `json:"service,omitempty"`
}

// TransitionResult reports the confirmation state after a token-driven action.
// Changed is false when the action was an idempotent re-application.
type TransitionResult struct {
	ReservationID string        `json:"reservationId"`
	Status        ConfirmStatus `json:"status"`
	Changed       bool          `json:"changed"`
}
