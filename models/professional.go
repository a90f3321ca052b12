package models

import "time"

// Professional is the minimal record the booking engine needs: identity,
// holiday region and notification address. Full profile CRUD lives in the
// admin service.
type Professional struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Region    string    `bson:"region" json:"region"` // ISO country code for the holiday calendar
	BranchIDs []string  `bson:"branchIds,omitempty" json:"branchIds,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
