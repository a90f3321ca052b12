// File: database/repository/reservation/queries.go
package reservationRepo

import (
	"context"
	"errors"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (r *mongoReservationRepo) GetByTokenHash(ctx context.Context, hash string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"confirmation.tokenHash": hash}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFound("no reservation matches this token")
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetActiveByProfessionalAndDate returns every non-cancelled reservation
// occupying a slot for the professional on the given date.
func (r *mongoReservationRepo) GetActiveByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"professionalId":      professionalID,
		"nextVisitDate":       date,
		"confirmation.status": bson.M{"$ne": models.StatusCancelled},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// ReleaseByProfessionalAndDate clears nextVisitDate/time on every reservation
// for the professional on that date and returns the affected records so the
// caller can notify patients. The rest of each record is kept.
func (r *mongoReservationRepo) ReleaseByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	affected, err := r.GetActiveByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	if len(affected) == 0 {
		return nil, nil
	}

	ids := make([]string, len(affected))
	for i, res := range affected {
		ids[i] = res.ID
	}

	now := time.Now()
	entry := models.ConfirmationLogEntry{
		Action:    models.ActionDateReleased,
		Timestamp: now,
		Meta:      map[string]string{"date": date},
	}
	update := bson.M{
		"$set": bson.M{
			"nextVisitDate": "",
			"time":          "",
			"updatedAt":     now,
		},
		"$push": bson.M{"confirmation.log": entry},
	}
	if _, err := r.coll.UpdateMany(ctx, bson.M{"id": bson.M{"$in": ids}}, update); err != nil {
		return nil, err
	}

	for i := range affected {
		affected[i].NextVisitDate = ""
		affected[i].Time = ""
		affected[i].UpdatedAt = now
		affected[i].Confirmation.Log = append(affected[i].Confirmation.Log, entry)
	}
	return affected, nil
}
