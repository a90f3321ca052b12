// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransitionUpdate describes one confirmation state transition applied with
// compare-and-swap semantics: the write only lands if the stored status is
// still one of the expected values.
type TransitionUpdate struct {
	To              models.ConfirmStatus
	ConfirmedAt     *time.Time
	RequestedDate   string
	RequestedTime   string
	RequestedReason string
	Entry           models.ConfirmationLogEntry
}

// ReservationRepository owns reservation persistence. The collection carries a
// partial unique index over non-cancelled (professionalId, nextVisitDate, time)
// triples, so the at-most-one-booking invariant holds even if callers race.
type ReservationRepository interface {
	Create(ctx context.Context, res *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetByTokenHash(ctx context.Context, hash string) (*models.Reservation, error)
	GetActiveByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error)
	Replace(ctx context.Context, res *models.Reservation) error
	AppendSession(ctx context.Context, id string, session models.Session) error
	SetToken(ctx context.Context, id, tokenHash string, expiry time.Time, status models.ConfirmStatus, entry models.ConfirmationLogEntry) error
	AppendLog(ctx context.Context, id string, entry models.ConfirmationLogEntry) error
	TransitionStatus(ctx context.Context, id, tokenHash string, from []models.ConfirmStatus, upd TransitionUpdate) (bool, error)
	ReleaseByProfessionalAndDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	return &mongoReservationRepo{
		coll: database.DB().Collection("reservations"),
	}
}
