package confirmation

import (
	"context"
	"fmt"
	"time"

	reservationRepo "clinicbook/database/repository/reservation"
	"clinicbook/models"
	"clinicbook/services/notification"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// The confirmation state machine:
//
//	pending              --confirm-->              confirmed
//	pending              --cancel-->               cancelled
//	pending              --request reschedule-->   reschedule_requested
//	cancelled            --regenerate link-->      pending   (see GenerateLink)
//	confirmed / reschedule_requested: re-confirm and re-cancel are no-ops
//	    returning the settled status.
//
// Anything else is rejected. Transitions are applied with compare-and-swap on
// the stored status, so concurrent requests converge on a single log entry.

// terminalNoop reports whether applying `to` against the settled status `cur`
// is an idempotent re-application rather than a rejected transition.
func terminalNoop(cur, to models.ConfirmStatus) bool {
	if to == models.StatusRescheduleRequested {
		return false
	}
	return cur == models.StatusConfirmed || cur == models.StatusRescheduleRequested
}

func (s *DefaultTokenService) applyTransition(
	ctx context.Context,
	token, action string,
	to models.ConfirmStatus,
	mutate func(*reservationRepo.TransitionUpdate),
) (*models.TransitionResult, error) {
	res, hash, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	cur := res.Confirmation.Status
	if cur == to {
		return &models.TransitionResult{ReservationID: res.ID, Status: cur, Changed: false}, nil
	}
	if cur != models.StatusPending {
		if terminalNoop(cur, to) {
			return &models.TransitionResult{ReservationID: res.ID, Status: cur, Changed: false}, nil
		}
		return nil, models.NewConflict(fmt.Sprintf("reservation is %s; %s is not allowed", cur, action))
	}

	upd := reservationRepo.TransitionUpdate{
		To: to,
		Entry: models.ConfirmationLogEntry{
			Action:    action,
			Timestamp: s.now(),
		},
	}
	if mutate != nil {
		mutate(&upd)
	}

	ok, err := s.Repo.TransitionStatus(ctx, res.ID, hash, []models.ConfirmStatus{models.StatusPending}, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race: another request moved the status first. Re-read and
		// report the settled state idempotently where the table allows it.
		settled, _, err := s.resolve(ctx, token)
		if err != nil {
			return nil, err
		}
		cur := settled.Confirmation.Status
		if cur == to || terminalNoop(cur, to) {
			return &models.TransitionResult{ReservationID: settled.ID, Status: cur, Changed: false}, nil
		}
		return nil, models.NewConflict(fmt.Sprintf("reservation is %s; %s is not allowed", cur, action))
	}

	res.Confirmation.Status = to
	s.notifyProfessional(ctx, res, action)
	return &models.TransitionResult{ReservationID: res.ID, Status: to, Changed: true}, nil
}

func (s *DefaultTokenService) notifyProfessional(ctx context.Context, res *models.Reservation, action string) {
	if s.Professionals == nil {
		return
	}
	prof, err := s.Professionals.GetByID(ctx, res.ProfessionalID)
	if err != nil {
		utils.GetLogger().Warn("could not load professional for notification",
			zap.String("professionalId", res.ProfessionalID), zap.Error(err))
		return
	}
	s.notify(ctx, notification.ProfessionalStatusMessage(prof, res, action))
}

// ConfirmByToken confirms the reservation the token belongs to. Re-applying
// it on an already confirmed reservation returns confirmed without adding a
// second log entry.
func (s *DefaultTokenService) ConfirmByToken(ctx context.Context, token string) (*models.TransitionResult, error) {
	now := s.now()
	return s.applyTransition(ctx, token, models.ActionConfirmed, models.StatusConfirmed,
		func(upd *reservationRepo.TransitionUpdate) {
			upd.ConfirmedAt = &now
		})
}

// CancelByToken cancels the reservation. Cancellation is a state, not a
// removal; the record and its history survive.
func (s *DefaultTokenService) CancelByToken(ctx context.Context, token string) (*models.TransitionResult, error) {
	return s.applyTransition(ctx, token, models.ActionCancelled, models.StatusCancelled, nil)
}

// RequestRescheduleByToken records the patient's requested date/time/reason
// for staff review; the original slot stays occupied until staff act on it.
func (s *DefaultTokenService) RequestRescheduleByToken(ctx context.Context, token string, req models.RescheduleByTokenRequest) (*models.TransitionResult, error) {
	if !models.ValidTimeOfDay(req.NewTime) {
		return nil, models.NewValidation("newTime must be zero-padded HH:MM")
	}
	if _, err := time.Parse("2006-01-02", req.NewDate); err != nil {
		return nil, models.NewValidation("newDate must be YYYY-MM-DD")
	}
	return s.applyTransition(ctx, token, models.ActionRescheduleRequested, models.StatusRescheduleRequested,
		func(upd *reservationRepo.TransitionUpdate) {
			upd.RequestedDate = req.NewDate
			upd.RequestedTime = req.NewTime
			upd.RequestedReason = req.Reason
			upd.Entry.Meta = map[string]string{
				"newDate": req.NewDate,
				"newTime": req.NewTime,
				"reason":  req.Reason,
			}
		})
}
