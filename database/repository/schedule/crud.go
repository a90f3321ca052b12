// File: database/repository/schedule/crud.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoScheduleRepo) Create(ctx context.Context, block *models.ScheduleBlock) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if block.ID == "" {
		block.ID = uuid.New().String()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, block)
	return err
}

func (r *mongoScheduleRepo) GetByProfessional(ctx context.Context, professionalID string) ([]models.ScheduleBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"professionalId": professionalID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blocks []models.ScheduleBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *mongoScheduleRepo) DeleteByID(ctx context.Context, professionalID, blockID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": blockID, "professionalId": professionalID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.NewNotFound("schedule block not found")
	}
	return nil
}

// EnsureIndexes creates the necessary indexes on the schedule_blocks collection.
func (r *mongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}},
			Options: options.Index().SetName("professional_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create schedule block indexes: %w", err)
	}
	return nil
}
