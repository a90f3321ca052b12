// File: database/repository/professional/professional.go
package professionalRepo

import (
	"context"
	"errors"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfessionalRepository exposes the minimal professional lookups the booking
// engine needs. Profile administration lives in a separate service.
type ProfessionalRepository interface {
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	Create(ctx context.Context, p *models.Professional) error
}

type mongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo constructs a new MongoDB ProfessionalRepository.
func NewMongoProfessionalRepo() ProfessionalRepository {
	return &mongoProfessionalRepo{
		coll: database.DB().Collection("professionals"),
	}
}

func (r *mongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFound("professional not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, p)
	return err
}
