// File: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reservations collection.
// The partial unique index over non-cancelled (professionalId, nextVisitDate,
// time) is the authoritative guard for the booking critical section: of two
// concurrent inserts for the same triple, exactly one lands.
func (r *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{
				{Key: "professionalId", Value: 1},
				{Key: "nextVisitDate", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_slot").
				SetPartialFilterExpression(bson.M{
					"confirmation.status": bson.M{"$ne": models.StatusCancelled},
					"nextVisitDate":       bson.M{"$gt": ""},
					"time":                bson.M{"$gt": ""},
				}),
		},
		{
			Keys:    bson.D{{Key: "confirmation.tokenHash", Value: 1}},
			Options: options.Index().SetName("token_hash_idx").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "nextVisitDate", Value: 1}},
			Options: options.Index().SetName("professional_date_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
