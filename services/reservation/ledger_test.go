package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	reservationRepo "clinicbook/database/repository/reservation"
	"clinicbook/models"
)

// fakeAvailability serves a fixed slot listing per (professional, date). It
// stands in for the full resolver so the ledger's own checks are under test.
type fakeAvailability struct {
	times map[string][]string
}

func (f *fakeAvailability) GetAvailableSlots(_ context.Context, professionalID, date string) (*models.AvailabilityResult, error) {
	times := f.times[professionalID+"|"+date]
	if times == nil {
		times = []string{}
	}
	return &models.AvailabilityResult{ProfessionalID: professionalID, Date: date, Times: times}, nil
}

func newTestLedger(times map[string][]string) (*DefaultLedgerService, *reservationRepo.MemoryReservationRepo) {
	repo := reservationRepo.NewMemoryReservationRepo()
	svc := &DefaultLedgerService{
		Repo:         repo,
		Availability: &fakeAvailability{times: times},
		Lock:         &SlotLock{}, // no redis in tests, degrades to the repo's unique check
		Now:          func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) },
	}
	return svc, repo
}

func validCreateRequest() models.CreateReservationRequest {
	return models.CreateReservationRequest{
		ProfessionalID: "prof-1",
		Patient:        models.PatientRef{ID: "pat-1", Name: "Chidi Okafor", Email: "chidi@example.com"},
		Date:           "2026-03-09",
		Time:           "09:00",
		Service:        "physiotherapy",
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	openSlots := map[string][]string{"prof-1|2026-03-09": {"09:00", "09:30"}}

	t.Run("books an open slot", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		res, err := svc.CreateReservation(ctx, validCreateRequest())
		if err != nil {
			t.Fatalf("CreateReservation returned error: %v", err)
		}
		if res.ID == "" {
			t.Error("reservation has no id")
		}
		if res.Confirmation.Status != models.StatusPending {
			t.Errorf("status = %q, want pending", res.Confirmation.Status)
		}
		if res.FirstVisitDate != "2026-03-09" || res.NextVisitDate != "2026-03-09" {
			t.Errorf("visit dates = %q / %q", res.FirstVisitDate, res.NextVisitDate)
		}
		if len(res.Confirmation.Log) != 1 || res.Confirmation.Log[0].Action != models.ActionCreated {
			t.Errorf("log = %+v, want single created entry", res.Confirmation.Log)
		}
	})

	t.Run("rejects a time outside the offered slots", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		req := validCreateRequest()
		req.Time = "11:00"
		_, err := svc.CreateReservation(ctx, req)
		if models.CodeOf(err) != models.ErrCodeConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("rejects a taken slot", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		if _, err := svc.CreateReservation(ctx, validCreateRequest()); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}
		// The fake resolver still lists 09:00, so the repo's unique
		// constraint is the guard that fires.
		_, err := svc.CreateReservation(ctx, validCreateRequest())
		if models.CodeOf(err) != models.ErrCodeConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("validates the payload", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)

		req := validCreateRequest()
		req.Date = "09-03-2026"
		if _, err := svc.CreateReservation(ctx, req); models.CodeOf(err) != models.ErrCodeValidation {
			t.Errorf("bad date: expected validation, got %v", err)
		}

		req = validCreateRequest()
		req.Time = "9am"
		if _, err := svc.CreateReservation(ctx, req); models.CodeOf(err) != models.ErrCodeValidation {
			t.Errorf("bad time: expected validation, got %v", err)
		}

		req = validCreateRequest()
		req.Patient = models.PatientRef{}
		if _, err := svc.CreateReservation(ctx, req); models.CodeOf(err) != models.ErrCodeValidation {
			t.Errorf("missing patient: expected validation, got %v", err)
		}
	})
}

func TestCreateReservationConcurrent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedger(map[string][]string{"prof-1|2026-03-09": {"09:00"}})

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateReservation(ctx, validCreateRequest())
		}(i)
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case models.CodeOf(err) == models.ErrCodeConflict:
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 || conflicts != writers-1 {
		t.Errorf("created=%d conflicts=%d, want 1 and %d", created, conflicts, writers-1)
	}
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()
	openSlots := map[string][]string{
		"prof-1|2026-03-09": {"09:00", "09:30"},
		"prof-1|2026-03-16": {"10:00"},
	}

	t.Run("patch without moving skips the slot check", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		res, err := svc.CreateReservation(ctx, validCreateRequest())
		if err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}

		notes := "bring previous x-rays"
		updated, err := svc.UpdateReservation(ctx, res.ID, models.UpdateReservationRequest{Notes: &notes})
		if err != nil {
			t.Fatalf("UpdateReservation returned error: %v", err)
		}
		if updated.Notes != notes {
			t.Errorf("notes = %q, want %q", updated.Notes, notes)
		}
		if updated.NextVisitDate != "2026-03-09" || updated.Time != "09:00" {
			t.Errorf("slot moved unexpectedly: %q %q", updated.NextVisitDate, updated.Time)
		}
	})

	t.Run("reschedule to an open slot", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		res, err := svc.CreateReservation(ctx, validCreateRequest())
		if err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}

		date, tm := "2026-03-16", "10:00"
		updated, err := svc.UpdateReservation(ctx, res.ID, models.UpdateReservationRequest{Date: &date, Time: &tm})
		if err != nil {
			t.Fatalf("UpdateReservation returned error: %v", err)
		}
		if updated.NextVisitDate != date || updated.Time != tm {
			t.Errorf("slot = %q %q, want %q %q", updated.NextVisitDate, updated.Time, date, tm)
		}
		if updated.FirstVisitDate != "2026-03-09" {
			t.Errorf("firstVisitDate changed to %q", updated.FirstVisitDate)
		}
		last := updated.Confirmation.Log[len(updated.Confirmation.Log)-1]
		if last.Action != models.ActionRescheduled || last.Meta["toDate"] != date {
			t.Errorf("last log entry = %+v", last)
		}
	})

	t.Run("reschedule to a closed slot is rejected", func(t *testing.T) {
		svc, repo := newTestLedger(openSlots)
		res, err := svc.CreateReservation(ctx, validCreateRequest())
		if err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}

		date, tm := "2026-03-16", "16:00"
		if _, err := svc.UpdateReservation(ctx, res.ID, models.UpdateReservationRequest{Date: &date, Time: &tm}); models.CodeOf(err) != models.ErrCodeConflict {
			t.Errorf("expected conflict, got %v", err)
		}

		// Nothing was committed.
		stored, err := repo.GetByID(ctx, res.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if stored.NextVisitDate != "2026-03-09" || stored.Time != "09:00" {
			t.Errorf("stored slot = %q %q, want original", stored.NextVisitDate, stored.Time)
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		svc, _ := newTestLedger(openSlots)
		notes := "x"
		if _, err := svc.UpdateReservation(ctx, "missing", models.UpdateReservationRequest{Notes: &notes}); models.CodeOf(err) != models.ErrCodeNotFound {
			t.Errorf("expected not_found, got %v", err)
		}
	})
}

func TestAddSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestLedger(map[string][]string{"prof-1|2026-03-09": {"09:00"}})
	res, err := svc.CreateReservation(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	updated, err := svc.AddSession(ctx, res.ID, models.AddSessionRequest{Date: "2026-03-09", Notes: "first visit"})
	if err != nil {
		t.Fatalf("AddSession returned error: %v", err)
	}
	if len(updated.Sessions) != 1 || updated.Sessions[0].Notes != "first visit" {
		t.Errorf("sessions = %+v", updated.Sessions)
	}

	if _, err := svc.AddSession(ctx, res.ID, models.AddSessionRequest{Date: "bad"}); models.CodeOf(err) != models.ErrCodeValidation {
		t.Errorf("expected validation, got %v", err)
	}
}

func TestReleaseDate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestLedger(map[string][]string{"prof-1|2026-03-09": {"09:00", "09:30", "10:00"}})

	if _, err := svc.CreateReservation(ctx, validCreateRequest()); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	second := validCreateRequest()
	second.Time = "09:30"
	second.Patient = models.PatientRef{ID: "pat-2", Name: "Ngozi"}
	if _, err := svc.CreateReservation(ctx, second); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	cancelled := &models.Reservation{
		Patient:        models.PatientRef{ID: "pat-3", Name: "Emeka"},
		ProfessionalID: "prof-1",
		NextVisitDate:  "2026-03-09",
		Time:           "10:00",
		Confirmation:   models.ConfirmationRecord{Status: models.StatusCancelled},
	}
	if err := repo.Create(ctx, cancelled); err != nil {
		t.Fatalf("seed cancelled reservation failed: %v", err)
	}

	affected, err := svc.ReleaseDate(ctx, "prof-1", "2026-03-09")
	if err != nil {
		t.Fatalf("ReleaseDate returned error: %v", err)
	}
	if len(affected) != 2 {
		t.Fatalf("affected = %d, want 2", len(affected))
	}
	for _, res := range affected {
		if res.NextVisitDate != "" || res.Time != "" {
			t.Errorf("reservation %s still holds slot %q %q", res.ID, res.NextVisitDate, res.Time)
		}
		last := res.Confirmation.Log[len(res.Confirmation.Log)-1]
		if last.Action != models.ActionDateReleased {
			t.Errorf("last log entry = %+v", last)
		}
	}

	// The cancelled record keeps its fields; cancellation already freed the slot.
	stored, err := repo.GetByID(ctx, cancelled.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.NextVisitDate != "2026-03-09" {
		t.Errorf("cancelled reservation was modified: %+v", stored)
	}

	if _, err := svc.ReleaseDate(ctx, "prof-1", "wrong"); models.CodeOf(err) != models.ErrCodeValidation {
		t.Errorf("expected validation, got %v", err)
	}
}
