package reservation

import (
	"context"
	"time"

	reservationRepo "clinicbook/database/repository/reservation"
	"clinicbook/models"
	"clinicbook/services/availability"
	"clinicbook/services/notification"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Service is the reservation ledger: it owns reservation create, update,
// session history and bulk release, and enforces the at-most-one-booking
// invariant per (professional, date, time).
type Service interface {
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, id string, req models.UpdateReservationRequest) (*models.Reservation, error)
	AddSession(ctx context.Context, id string, req models.AddSessionRequest) (*models.Reservation, error)
	ReleaseDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error)
}

// DefaultLedgerService is the production ledger.
type DefaultLedgerService struct {
	Repo         reservationRepo.ReservationRepository
	Availability availability.Service
	Lock         *SlotLock
	Notifier     notification.Dispatcher
	Now          func() time.Time
}

func (s *DefaultLedgerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// notify enqueues fire-and-forget; delivery problems never fail the booking.
func (s *DefaultLedgerService) notify(ctx context.Context, msgs []models.NotificationMessage) {
	if s.Notifier == nil {
		return
	}
	for _, msg := range msgs {
		if err := s.Notifier.Enqueue(ctx, msg); err != nil {
			utils.GetLogger().Warn("notification enqueue failed", zap.Error(err))
		}
	}
}

func (s *DefaultLedgerService) CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.Reservation, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, models.NewValidation("date must be YYYY-MM-DD")
	}
	if !models.ValidTimeOfDay(req.Time) {
		return nil, models.NewValidation("time must be zero-padded HH:MM")
	}
	if req.Patient.ID == "" || req.Patient.Name == "" {
		return nil, models.NewValidation("patient id and name are required")
	}

	release, err := s.Lock.Acquire(ctx, req.ProfessionalID, req.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := s.checkSlotAvailable(ctx, req.ProfessionalID, req.Date, req.Time); err != nil {
		return nil, err
	}

	now := s.now()
	res := &models.Reservation{
		Patient:        req.Patient,
		ProfessionalID: req.ProfessionalID,
		BranchID:       req.BranchID,
		Service:        req.Service,
		Notes:          req.Notes,
		FirstVisitDate: req.Date,
		NextVisitDate:  req.Date,
		Time:           req.Time,
		Confirmation: models.ConfirmationRecord{
			Status: models.StatusPending,
			Log: []models.ConfirmationLogEntry{{
				Action:    models.ActionCreated,
				Timestamp: now,
			}},
		},
		CreatedAt: now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.notify(ctx, notification.BookingReceivedMessages(res))
	return res, nil
}

// checkSlotAvailable re-validates that the time is still an open slot.
func (s *DefaultLedgerService) checkSlotAvailable(ctx context.Context, professionalID, date, t string) error {
	avail, err := s.Availability.GetAvailableSlots(ctx, professionalID, date)
	if err != nil {
		return err
	}
	for _, open := range avail.Times {
		if open == t {
			return nil
		}
	}
	return models.NewConflict("requested time is not available")
}

func (s *DefaultLedgerService) UpdateReservation(ctx context.Context, id string, req models.UpdateReservationRequest) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Diagnosis != nil {
		res.Diagnosis = *req.Diagnosis
	}
	if req.Notes != nil {
		res.Notes = *req.Notes
	}
	if req.Service != nil {
		res.Service = *req.Service
	}

	newProfessional := res.ProfessionalID
	newDate := res.NextVisitDate
	newTime := res.Time
	if req.ProfessionalID != nil {
		newProfessional = *req.ProfessionalID
	}
	if req.Date != nil {
		newDate = *req.Date
	}
	if req.Time != nil {
		newTime = *req.Time
	}

	moved := newProfessional != res.ProfessionalID || newDate != res.NextVisitDate || newTime != res.Time
	if moved {
		if _, err := time.Parse("2006-01-02", newDate); err != nil {
			return nil, models.NewValidation("date must be YYYY-MM-DD")
		}
		if !models.ValidTimeOfDay(newTime) {
			return nil, models.NewValidation("time must be zero-padded HH:MM")
		}

		// A reschedule re-runs the same availability and conflict check as
		// creation before anything is committed.
		release, err := s.Lock.Acquire(ctx, newProfessional, newDate)
		if err != nil {
			return nil, err
		}
		defer release()

		if err := s.checkSlotAvailable(ctx, newProfessional, newDate, newTime); err != nil {
			return nil, err
		}

		entry := models.ConfirmationLogEntry{
			Action:    models.ActionRescheduled,
			Timestamp: s.now(),
			Meta: map[string]string{
				"fromDate": res.NextVisitDate,
				"fromTime": res.Time,
				"toDate":   newDate,
				"toTime":   newTime,
			},
		}
		res.ProfessionalID = newProfessional
		res.NextVisitDate = newDate
		res.Time = newTime
		res.Confirmation.Log = append(res.Confirmation.Log, entry)
	}

	if err := s.Repo.Replace(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DefaultLedgerService) AddSession(ctx context.Context, id string, req models.AddSessionRequest) (*models.Reservation, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, models.NewValidation("date must be YYYY-MM-DD")
	}
	session := models.Session{Date: req.Date, Notes: req.Notes}
	if err := s.Repo.AppendSession(ctx, id, session); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultLedgerService) ReleaseDate(ctx context.Context, professionalID, date string) ([]models.Reservation, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, models.NewValidation("date must be YYYY-MM-DD")
	}

	affected, err := s.Repo.ReleaseByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	for i := range affected {
		s.notify(ctx, notification.DateReleasedMessages(&affected[i], date))
	}
	return affected, nil
}
