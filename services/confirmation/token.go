package confirmation

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	professionalRepo "clinicbook/database/repository/professional"
	reservationRepo "clinicbook/database/repository/reservation"
	"clinicbook/models"
	"clinicbook/services/notification"
	"clinicbook/utils"

	"go.uber.org/zap"
)

const tokenBytes = 32

// Service issues and resolves opaque confirmation tokens and drives the
// confirmation state machine. Tokens let an unauthenticated patient act on
// their own reservation; only the SHA-256 hash is ever persisted.
type Service interface {
	GenerateLink(ctx context.Context, reservationID, actor string) (*models.ConfirmationLink, error)
	ResolveToken(ctx context.Context, token string) (*models.TokenSummary, error)
	ConfirmByToken(ctx context.Context, token string) (*models.TransitionResult, error)
	CancelByToken(ctx context.Context, token string) (*models.TransitionResult, error)
	RequestRescheduleByToken(ctx context.Context, token string, req models.RescheduleByTokenRequest) (*models.TransitionResult, error)
	ResendLink(ctx context.Context, reservationID string) (*models.ConfirmationLink, error)
}

// DefaultTokenService is the production implementation.
type DefaultTokenService struct {
	Repo          reservationRepo.ReservationRepository
	Professionals professionalRepo.ProfessionalRepository
	Notifier      notification.Dispatcher
	TokenTTL      time.Duration
	BaseURL       string
	Now           func() time.Time
}

func (s *DefaultTokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// HashToken computes the hex SHA-256 digest stored in place of the plaintext.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (plaintext, hash string, err error) {
	buf := make([]byte, tokenBytes)
	if _, err = rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext = base64.RawURLEncoding.EncodeToString(buf)
	return plaintext, HashToken(plaintext), nil
}

func (s *DefaultTokenService) linkURL(token string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/api/confirm/" + token
}

// GenerateLink creates a fresh token, persists only its hash and expiry, and
// returns the plaintext link exactly once. A cancelled reservation flips back
// to pending so the patient can act on the new link.
func (s *DefaultTokenService) GenerateLink(ctx context.Context, reservationID, actor string) (*models.ConfirmationLink, error) {
	res, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	plaintext, hash, err := newToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiry := now.Add(s.TokenTTL)
	status := res.Confirmation.Status
	if status == models.StatusCancelled {
		status = models.StatusPending
	}
	entry := models.ConfirmationLogEntry{
		Action:    models.ActionGenerated,
		Timestamp: now,
		Meta:      map[string]string{"actor": actor},
	}
	if err := s.Repo.SetToken(ctx, reservationID, hash, expiry, status, entry); err != nil {
		return nil, err
	}

	url := s.linkURL(plaintext)
	res.Confirmation.Status = status
	s.notify(ctx, notification.ConfirmationLinkMessages(res, url, expiry))

	return &models.ConfirmationLink{ReservationID: reservationID, URL: url, ExpiresAt: expiry}, nil
}

// resolve maps a plaintext token to its reservation, enforcing expiry lazily.
func (s *DefaultTokenService) resolve(ctx context.Context, token string) (*models.Reservation, string, error) {
	if token == "" {
		return nil, "", models.NewValidation("token is required")
	}
	hash := HashToken(token)
	res, err := s.Repo.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, "", err
	}
	if s.now().After(res.Confirmation.TokenExpiry) {
		return nil, "", models.NewExpired("confirmation link has expired")
	}
	return res, hash, nil
}

func (s *DefaultTokenService) ResolveToken(ctx context.Context, token string) (*models.TokenSummary, error) {
	res, _, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	summary := &models.TokenSummary{
		ReservationID: res.ID,
		Status:        res.Confirmation.Status,
		PatientName:   res.Patient.Name,
		Date:          res.NextVisitDate,
		Time:          res.Time,
		Service:       res.Service,
	}
	if prof, err := s.Professionals.GetByID(ctx, res.ProfessionalID); err == nil {
		summary.Professional = prof.Name
	}
	return summary, nil
}

// ResendLink re-notifies without disclosing a stored secret: the server holds
// only a hash, so a still-valid token yields a link_resent log entry and the
// existing expiry. An expired token is regenerated and invalidated instead.
func (s *DefaultTokenService) ResendLink(ctx context.Context, reservationID string) (*models.ConfirmationLink, error) {
	res, err := s.Repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if res.Confirmation.TokenHash != "" && !s.now().After(res.Confirmation.TokenExpiry) {
		entry := models.ConfirmationLogEntry{
			Action:    models.ActionLinkResent,
			Timestamp: s.now(),
		}
		if err := s.Repo.AppendLog(ctx, reservationID, entry); err != nil {
			return nil, err
		}
		return &models.ConfirmationLink{
			ReservationID: reservationID,
			ExpiresAt:     res.Confirmation.TokenExpiry,
		}, nil
	}

	return s.GenerateLink(ctx, reservationID, "resend")
}

func (s *DefaultTokenService) notify(ctx context.Context, msgs []models.NotificationMessage) {
	if s.Notifier == nil {
		return
	}
	for _, msg := range msgs {
		if err := s.Notifier.Enqueue(ctx, msg); err != nil {
			utils.GetLogger().Warn("notification enqueue failed", zap.Error(err))
		}
	}
}
