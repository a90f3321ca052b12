package models

import "time"

// BlockedDay is a professional-specific opt-out for a single date,
// independent of regional holidays.
type BlockedDay struct {
	ID             string    `bson:"id" json:"id"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	Date           string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason         string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
