// File: database/repository/schedule/interface.go
package scheduleRepo

import (
	"context"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ScheduleRepository stores the recurring weekly schedule blocks.
type ScheduleRepository interface {
	Create(ctx context.Context, block *models.ScheduleBlock) error
	GetByProfessional(ctx context.Context, professionalID string) ([]models.ScheduleBlock, error)
	DeleteByID(ctx context.Context, professionalID, blockID string) error
	EnsureIndexes() error
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new MongoDB ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	return &mongoScheduleRepo{
		coll: database.DB().Collection("schedule_blocks"),
	}
}
