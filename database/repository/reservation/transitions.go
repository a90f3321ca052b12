// File: database/repository/reservation/transitions.go
package reservationRepo

import (
	"context"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SetToken stores a new token hash and expiry, sets the status and appends a
// log entry in one write. The previous hash (if any) stops matching lookups
// immediately.
func (r *mongoReservationRepo) SetToken(ctx context.Context, id, tokenHash string, expiry time.Time, status models.ConfirmStatus, entry models.ConfirmationLogEntry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"confirmation.tokenHash":   tokenHash,
			"confirmation.tokenExpiry": expiry,
			"confirmation.status":      status,
			"updatedAt":                time.Now(),
		},
		"$push": bson.M{"confirmation.log": entry},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.NewNotFound("reservation not found")
	}
	return nil
}

// TransitionStatus applies a confirmation transition atomically: the filter
// pins the token hash and the expected current status, so two concurrent
// writers converge on a single log entry. Returns false when the document
// exists but its status already left the expected set.
func (r *mongoReservationRepo) TransitionStatus(ctx context.Context, id, tokenHash string, from []models.ConfirmStatus, upd TransitionUpdate) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                     id,
		"confirmation.tokenHash": tokenHash,
		"confirmation.status":    bson.M{"$in": from},
	}

	set := bson.M{
		"confirmation.status": upd.To,
		"updatedAt":           time.Now(),
	}
	if upd.ConfirmedAt != nil {
		set["confirmation.confirmedAt"] = *upd.ConfirmedAt
	}
	if upd.RequestedDate != "" {
		set["confirmation.requestedDate"] = upd.RequestedDate
		set["confirmation.requestedTime"] = upd.RequestedTime
		set["confirmation.requestedReason"] = upd.RequestedReason
	}

	update := bson.M{
		"$set":  set,
		"$push": bson.M{"confirmation.log": upd.Entry},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
