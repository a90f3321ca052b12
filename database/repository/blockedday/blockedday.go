// File: database/repository/blockedday/blockedday.go
package blockeddayRepo

import (
	"context"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlockedDayRepository stores professional-specific blocked dates.
type BlockedDayRepository interface {
	Create(ctx context.Context, day *models.BlockedDay) error
	GetByProfessional(ctx context.Context, professionalID string) ([]models.BlockedDay, error)
	Delete(ctx context.Context, professionalID, id string) error
	EnsureIndexes() error
}

type mongoBlockedDayRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedDayRepo constructs a new MongoDB BlockedDayRepository.
func NewMongoBlockedDayRepo() BlockedDayRepository {
	return &mongoBlockedDayRepo{
		coll: database.DB().Collection("blocked_days"),
	}
}

func (r *mongoBlockedDayRepo) Create(ctx context.Context, day *models.BlockedDay) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if day.ID == "" {
		day.ID = uuid.New().String()
	}
	if day.CreatedAt.IsZero() {
		day.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, day); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewConflict("date already blocked")
		}
		return err
	}
	return nil
}

func (r *mongoBlockedDayRepo) GetByProfessional(ctx context.Context, professionalID string) ([]models.BlockedDay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"professionalId": professionalID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var days []models.BlockedDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (r *mongoBlockedDayRepo) Delete(ctx context.Context, professionalID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "professionalId": professionalID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFound("blocked day not found")
	}
	return nil
}

func (r *mongoBlockedDayRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "professionalId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("professional_date_unique"),
	})
	return err
}
