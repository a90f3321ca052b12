package models

import "time"

// ConfirmStatus is the confirmation state of a reservation.
type ConfirmStatus string

const (
	StatusPending             ConfirmStatus = "pending"
	StatusConfirmed           ConfirmStatus = "confirmed"
	StatusCancelled           ConfirmStatus = "cancelled"
	StatusRescheduleRequested ConfirmStatus = "reschedule_requested"
)

// Audit log actions recorded on the confirmation record.
const (
	ActionCreated             = "created"
	ActionGenerated           = "generated"
	ActionConfirmed           = "confirmed"
	ActionCancelled           = "cancelled"
	ActionRescheduleRequested = "reschedule_requested"
	ActionLinkResent          = "link_resent"
	ActionDateReleased        = "date_released"
	ActionRescheduled         = "rescheduled"
)

// ConfirmationLogEntry is one append-only audit record.
type ConfirmationLogEntry struct {
	Action    string            `bson:"action" json:"action"`
	Timestamp time.Time         `bson:"timestamp" json:"timestamp"`
	Meta      map[string]string `bson:"meta,omitempty" json:"meta,omitempty"`
}

// ConfirmationRecord holds the token-driven confirmation state embedded in a
// reservation. Only the SHA-256 hash of the token is ever stored; the
// plaintext is disclosed exactly once when the link is generated.
type ConfirmationRecord struct {
	Status          ConfirmStatus          `bson:"status" json:"status"`
	TokenHash       string                 `bson:"tokenHash,omitempty" json:"-"`
	TokenExpiry     time.Time              `bson:"tokenExpiry,omitempty" json:"tokenExpiry,omitempty"`
	ConfirmedAt     *time.Time             `bson:"confirmedAt,omitempty" json:"confirmedAt,omitempty"`
	RequestedDate   string                 `bson:"requestedDate,omitempty" json:"requestedDate,omitempty"`
	RequestedTime   string                 `bson:"requestedTime,omitempty" json:"requestedTime,omitempty"`
	RequestedReason string                 `bson:"requestedReason,omitempty" json:"requestedReason,omitempty"`
	Log             []ConfirmationLogEntry `bson:"log,omitempty" json:"log,omitempty"`
}

// PatientRef identifies the patient on a reservation and carries the contact
// details the notification dispatcher needs. Full patient records live elsewhere.
type PatientRef struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Session is one past visit appended to a reservation's history.
type Session struct {
	Date  string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Reservation links a patient to a professional across booking, rescheduling
// and session history. Reservations are never hard-deleted: cancellation is a
// state, so history survives.
type Reservation struct {
	ID             string     `bson:"id" json:"id"`
	Patient        PatientRef `bson:"patient" json:"patient"`
	ProfessionalID string     `bson:"professionalId" json:"professionalId"`
	BranchID       string     `bson:"branchId,omitempty" json:"branchId,omitempty"`
	Service        string     `bson:"service,omitempty" json:"service,omitempty"`

	FirstVisitDate string    `bson:"firstVisitDate,omitempty" json:"firstVisitDate,omitempty"`
	NextVisitDate  string    `bson:"nextVisitDate,omitempty" json:"nextVisitDate,omitempty"` // "YYYY-MM-DD"
	Time           string    `bson:"time,omitempty" json:"time,omitempty"`                   // "HH:MM"
	Sessions       []Session `bson:"sessions,omitempty" json:"sessions,omitempty"`

	Diagnosis string `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Notes     string `bson:"notes,omitempty" json:"notes,omitempty"`

	Confirmation ConfirmationRecord `bson:"confirmation" json:"confirmation"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the reservation still occupies its slot.
func (r *Reservation) Active() bool {
	return r.Confirmation.Status != StatusCancelled && r.NextVisitDate != "" && r.Time != ""
}
