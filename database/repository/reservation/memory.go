// File: database/repository/reservation/memory.go
package reservationRepo

import (
	"context"
	"sync"
	"time"

	"clinicbook/models"

	"github.com/google/uuid"
)

// MemoryReservationRepo is an in-memory ReservationRepository used by tests
// and local development. It mirrors the Mongo repository's semantics,
// including the unique constraint over non-cancelled
// (professionalId, nextVisitDate, time) triples and the compare-and-swap
// status transition.
type MemoryReservationRepo struct {
	mu    sync.Mutex
	items map[string]*models.Reservation
}

func NewMemoryReservationRepo() *MemoryReservationRepo {
	return &MemoryReservationRepo{items: make(map[string]*models.Reservation)}
}

func cloneReservation(res *models.Reservation) *models.Reservation {
	cp := *res
	cp.Sessions = append([]models.Session(nil), res.Sessions...)
	cp.Confirmation.Log = append([]models.ConfirmationLogEntry(nil), res.Confirmation.Log...)
	return &cp
}

// occupiesSameSlot reports whether an existing record already holds the slot
// the candidate wants.
func occupiesSameSlot(existing, candidate *models.Reservation) bool {
	if existing.ID == candidate.ID {
		return false
	}
	if existing.Confirmation.Status == models.StatusCancelled {
		return false
	}
	if candidate.NextVisitDate == "" || candidate.Time == "" {
		return false
	}
	return existing.ProfessionalID == candidate.ProfessionalID &&
		existing.NextVisitDate == candidate.NextVisitDate &&
		existing.Time == candidate.Time
}

func (m *MemoryReservationRepo) Create(_ context.Context, res *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	now := time.Now()
	if res.CreatedAt.IsZero() {
		res.CreatedAt = now
	}
	res.UpdatedAt = now

	for _, existing := range m.items {
		if occupiesSameSlot(existing, res) {
			return models.NewConflict("slot already taken")
		}
	}
	m.items[res.ID] = cloneReservation(res)
	return nil
}

func (m *MemoryReservationRepo) GetByID(_ context.Context, id string) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return nil, models.NewNotFound("reservation not found")
	}
	return cloneReservation(res), nil
}

func (m *MemoryReservationRepo) GetByTokenHash(_ context.Context, hash string) (*models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, res := range m.items {
		if res.Confirmation.TokenHash != "" && res.Confirmation.TokenHash == hash {
			return cloneReservation(res), nil
		}
	}
	return nil, models.NewNotFound("no reservation matches this token")
}

func (m *MemoryReservationRepo) GetActiveByProfessionalAndDate(_ context.Context, professionalID, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Reservation
	for _, res := range m.items {
		if res.ProfessionalID == professionalID &&
			res.NextVisitDate == date &&
			res.Confirmation.Status != models.StatusCancelled {
			out = append(out, *cloneReservation(res))
		}
	}
	return out, nil
}

func (m *MemoryReservationRepo) Replace(_ context.Context, res *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[res.ID]; !ok {
		return models.NewNotFound("reservation not found")
	}
	for _, existing := range m.items {
		if occupiesSameSlot(existing, res) {
			return models.NewConflict("slot already taken")
		}
	}
	res.UpdatedAt = time.Now()
	m.items[res.ID] = cloneReservation(res)
	return nil
}

func (m *MemoryReservationRepo) AppendSession(_ context.Context, id string, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return models.NewNotFound("reservation not found")
	}
	res.Sessions = append(res.Sessions, session)
	res.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryReservationRepo) SetToken(_ context.Context, id, tokenHash string, expiry time.Time, status models.ConfirmStatus, entry models.ConfirmationLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return models.NewNotFound("reservation not found")
	}
	res.Confirmation.TokenHash = tokenHash
	res.Confirmation.TokenExpiry = expiry
	res.Confirmation.Status = status
	res.Confirmation.Log = append(res.Confirmation.Log, entry)
	res.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryReservationRepo) AppendLog(_ context.Context, id string, entry models.ConfirmationLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return models.NewNotFound("reservation not found")
	}
	res.Confirmation.Log = append(res.Confirmation.Log, entry)
	res.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryReservationRepo) TransitionStatus(_ context.Context, id, tokenHash string, from []models.ConfirmStatus, upd TransitionUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok {
		return false, nil
	}
	if res.Confirmation.TokenHash != tokenHash {
		return false, nil
	}
	matched := false
	for _, status := range from {
		if res.Confirmation.Status == status {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}

	res.Confirmation.Status = upd.To
	if upd.ConfirmedAt != nil {
		res.Confirmation.ConfirmedAt = upd.ConfirmedAt
	}
	if upd.RequestedDate != "" {
		res.Confirmation.RequestedDate = upd.RequestedDate
		res.Confirmation.RequestedTime = upd.RequestedTime
		res.Confirmation.RequestedReason = upd.RequestedReason
	}
	res.Confirmation.Log = append(res.Confirmation.Log, upd.Entry)
	res.UpdatedAt = time.Now()
	return true, nil
}

func (m *MemoryReservationRepo) ReleaseByProfessionalAndDate(_ context.Context, professionalID, date string) ([]models.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var affected []models.Reservation
	for _, res := range m.items {
		if res.ProfessionalID != professionalID ||
			res.NextVisitDate != date ||
			res.Confirmation.Status == models.StatusCancelled {
			continue
		}
		res.NextVisitDate = ""
		res.Time = ""
		res.UpdatedAt = now
		res.Confirmation.Log = append(res.Confirmation.Log, models.ConfirmationLogEntry{
			Action:    models.ActionDateReleased,
			Timestamp: now,
			Meta:      map[string]string{"date": date},
		})
		affected = append(affected, *cloneReservation(res))
	}
	return affected, nil
}

func (m *MemoryReservationRepo) EnsureIndexes() error { return nil }
