package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	reservationRepo "clinicbook/database/repository/reservation"
	"clinicbook/models"
)

// In-memory stubs for the read-side repositories.

type stubProfessionals struct {
	profs map[string]models.Professional
}

func (s *stubProfessionals) GetByID(_ context.Context, id string) (*models.Professional, error) {
	p, ok := s.profs[id]
	if !ok {
		return nil, models.NewNotFound("professional not found")
	}
	return &p, nil
}

func (s *stubProfessionals) Create(_ context.Context, p *models.Professional) error {
	s.profs[p.ID] = *p
	return nil
}

type stubSchedules struct {
	blocks []models.ScheduleBlock
}

func (s *stubSchedules) Create(_ context.Context, block *models.ScheduleBlock) error {
	s.blocks = append(s.blocks, *block)
	return nil
}

func (s *stubSchedules) GetByProfessional(_ context.Context, professionalID string) ([]models.ScheduleBlock, error) {
	var out []models.ScheduleBlock
	for _, b := range s.blocks {
		if b.ProfessionalID == professionalID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubSchedules) DeleteByID(_ context.Context, professionalID, blockID string) error {
	for i, b := range s.blocks {
		if b.ProfessionalID == professionalID && b.ID == blockID {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			return nil
		}
	}
	return models.NewNotFound("schedule block not found")
}

func (s *stubSchedules) EnsureIndexes() error { return nil }

type stubBlockedDays struct {
	days []models.BlockedDay
}

func (s *stubBlockedDays) Create(_ context.Context, day *models.BlockedDay) error {
	s.days = append(s.days, *day)
	return nil
}

func (s *stubBlockedDays) GetByProfessional(_ context.Context, professionalID string) ([]models.BlockedDay, error) {
	var out []models.BlockedDay
	for _, d := range s.days {
		if d.ProfessionalID == professionalID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubBlockedDays) Delete(_ context.Context, professionalID, id string) error {
	for i, d := range s.days {
		if d.ProfessionalID == professionalID && d.ID == id {
			s.days = append(s.days[:i], s.days[i+1:]...)
			return nil
		}
	}
	return models.NewNotFound("blocked day not found")
}

func (s *stubBlockedDays) EnsureIndexes() error { return nil }

type stubCalendar struct {
	holidays []models.Holiday
	err      error
}

func (s *stubCalendar) HolidaysFor(_ context.Context, _ int, _ string) ([]models.Holiday, error) {
	return s.holidays, s.err
}

// Fixed clock: Monday 2026-03-02. The Mondays under test are 2026-03-09
// and 2026-03-16.
var testToday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func newTestService() (*DefaultAvailabilityService, *stubSchedules, *stubBlockedDays, *stubCalendar, *reservationRepo.MemoryReservationRepo) {
	profs := &stubProfessionals{profs: map[string]models.Professional{
		"prof-1": {ID: "prof-1", Name: "Dr. Adaeze Obi", Region: "NG"},
	}}
	schedules := &stubSchedules{}
	blocked := &stubBlockedDays{}
	calendar := &stubCalendar{}
	reservations := reservationRepo.NewMemoryReservationRepo()

	svc := &DefaultAvailabilityService{
		Professionals: profs,
		Schedules:     schedules,
		BlockedDays:   blocked,
		Reservations:  reservations,
		Holidays:      calendar,
		Now:           func() time.Time { return testToday },
	}
	return svc, schedules, blocked, calendar, reservations
}

func mondayBlock() models.ScheduleBlock {
	return models.ScheduleBlock{
		ID:              "block-1",
		ProfessionalID:  "prof-1",
		Days:            []models.Weekday{models.Monday},
		FromTime:        "09:00",
		ToTime:          "10:30",
		IntervalMinutes: 30,
	}
}

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown professional", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.GetAvailableSlots(ctx, "nobody", "2026-03-09")
		if models.CodeOf(err) != models.ErrCodeNotFound {
			t.Errorf("expected not_found, got %v", err)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		_, err := svc.GetAvailableSlots(ctx, "prof-1", "09/03/2026")
		if models.CodeOf(err) != models.ErrCodeValidation {
			t.Errorf("expected validation, got %v", err)
		}
	})

	t.Run("covered weekday lists the grid", func(t *testing.T) {
		svc, schedules, _, _, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00"}
		if !reflect.DeepEqual(result.Times, want) {
			t.Errorf("Times = %v, want %v", result.Times, want)
		}
		if result.Hint != "" {
			t.Errorf("unexpected hint %q", result.Hint)
		}
	})

	t.Run("booked times are subtracted", func(t *testing.T) {
		svc, schedules, _, _, reservations := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}
		err := reservations.Create(ctx, &models.Reservation{
			Patient:        models.PatientRef{ID: "pat-1", Name: "Chidi"},
			ProfessionalID: "prof-1",
			NextVisitDate:  "2026-03-09",
			Time:           "09:30",
			Confirmation:   models.ConfirmationRecord{Status: models.StatusPending},
		})
		if err != nil {
			t.Fatalf("seed reservation failed: %v", err)
		}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		want := []string{"09:00", "10:00"}
		if !reflect.DeepEqual(result.Times, want) {
			t.Errorf("Times = %v, want %v", result.Times, want)
		}
	})

	t.Run("cancelled reservations do not occupy slots", func(t *testing.T) {
		svc, schedules, _, _, reservations := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}
		err := reservations.Create(ctx, &models.Reservation{
			Patient:        models.PatientRef{ID: "pat-1", Name: "Chidi"},
			ProfessionalID: "prof-1",
			NextVisitDate:  "2026-03-09",
			Time:           "09:30",
			Confirmation:   models.ConfirmationRecord{Status: models.StatusCancelled},
		})
		if err != nil {
			t.Fatalf("seed reservation failed: %v", err)
		}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00"}
		if !reflect.DeepEqual(result.Times, want) {
			t.Errorf("Times = %v, want %v", result.Times, want)
		}
	})

	t.Run("overlapping blocks union without duplicates", func(t *testing.T) {
		svc, schedules, _, _, _ := newTestService()
		second := mondayBlock()
		second.ID = "block-2"
		second.FromTime = "10:00"
		second.ToTime = "11:00"
		schedules.blocks = []models.ScheduleBlock{mondayBlock(), second}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00", "10:30"}
		if !reflect.DeepEqual(result.Times, want) {
			t.Errorf("Times = %v, want %v", result.Times, want)
		}
	})

	t.Run("past date", func(t *testing.T) {
		svc, schedules, _, _, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-02-23")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 0 || result.Hint != "date is in the past" {
			t.Errorf("got times=%v hint=%q", result.Times, result.Hint)
		}
	})

	t.Run("uncovered weekday", func(t *testing.T) {
		svc, schedules, _, _, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}

		// 2026-03-10 is a Tuesday.
		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-10")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 0 || result.Hint != "no schedule for this weekday" {
			t.Errorf("got times=%v hint=%q", result.Times, result.Hint)
		}
	})

	t.Run("blocked day", func(t *testing.T) {
		svc, schedules, blocked, _, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}
		blocked.days = []models.BlockedDay{{ID: "bd-1", ProfessionalID: "prof-1", Date: "2026-03-09"}}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 0 || result.Hint != "professional is unavailable on this date" {
			t.Errorf("got times=%v hint=%q", result.Times, result.Hint)
		}
	})

	t.Run("regional holiday", func(t *testing.T) {
		svc, schedules, _, calendar, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}
		calendar.holidays = []models.Holiday{{Date: "2026-03-09", Region: "NG", Name: "Founders Day"}}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 0 || result.Hint != "date is a holiday" {
			t.Errorf("got times=%v hint=%q", result.Times, result.Hint)
		}
	})

	t.Run("holiday feed failure degrades to no holidays", func(t *testing.T) {
		svc, schedules, _, calendar, _ := newTestService()
		schedules.blocks = []models.ScheduleBlock{mondayBlock()}
		calendar.err = errors.New("upstream down")

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 3 {
			t.Errorf("expected 3 slots despite calendar outage, got %v", result.Times)
		}
	})

	t.Run("malformed stored block is skipped", func(t *testing.T) {
		svc, schedules, _, _, _ := newTestService()
		broken := mondayBlock()
		broken.ID = "block-broken"
		broken.IntervalMinutes = 0
		schedules.blocks = []models.ScheduleBlock{broken, mondayBlock()}

		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		want := []string{"09:00", "09:30", "10:00"}
		if !reflect.DeepEqual(result.Times, want) {
			t.Errorf("Times = %v, want %v", result.Times, want)
		}
	})

	t.Run("no blocks at all reads as empty with hint", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		result, err := svc.GetAvailableSlots(ctx, "prof-1", "2026-03-09")
		if err != nil {
			t.Fatalf("GetAvailableSlots returned error: %v", err)
		}
		if len(result.Times) != 0 || result.Hint == "" {
			t.Errorf("got times=%v hint=%q", result.Times, result.Hint)
		}
	})
}

func TestEligibilityCheck(t *testing.T) {
	check := EligibilityCheck{
		Today:        testToday,
		Blocks:       []models.ScheduleBlock{mondayBlock()},
		BlockedDates: map[string]bool{"2026-03-16": true},
		HolidayDates: map[string]bool{"2026-03-23": true},
	}

	tests := []struct {
		date       string
		wantOK     bool
		wantReason string
	}{
		{"2026-03-09", true, ""},
		{"2026-03-02", true, ""}, // today is bookable
		{"2026-02-23", false, "date is in the past"},
		{"2026-03-10", false, "no schedule for this weekday"},
		{"2026-03-16", false, "professional is unavailable on this date"},
		{"2026-03-23", false, "date is a holiday"},
		{"not-a-date", false, "invalid date"},
	}
	for _, tc := range tests {
		ok, reason := check.Eligible(tc.date)
		if ok != tc.wantOK || reason != tc.wantReason {
			t.Errorf("Eligible(%q) = (%v, %q), want (%v, %q)", tc.date, ok, reason, tc.wantOK, tc.wantReason)
		}
	}
}
