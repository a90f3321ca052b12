package models

// Holiday is read-only reference data fetched from the external calendar API.
type Holiday struct {
	Date   string `json:"date"` // "YYYY-MM-DD"
	Region string `json:"region"`
	Name   string `json:"name,omitempty"`
}
