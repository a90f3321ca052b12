package availability

import (
	"context"
	"sort"
	"strconv"
	"time"

	blockeddayRepo "clinicbook/database/repository/blockedday"
	professionalRepo "clinicbook/database/repository/professional"
	reservationRepo "clinicbook/database/repository/reservation"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/services/holiday"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Service resolves the bookable slots for a professional on a date.
type Service interface {
	GetAvailableSlots(ctx context.Context, professionalID, date string) (*models.AvailabilityResult, error)
}

// DefaultAvailabilityService is the production resolver. It recomputes on
// every read; there is no shared slot cache to invalidate.
type DefaultAvailabilityService struct {
	Professionals professionalRepo.ProfessionalRepository
	Schedules     scheduleRepo.ScheduleRepository
	BlockedDays   blockeddayRepo.BlockedDayRepository
	Reservations  reservationRepo.ReservationRepository
	Holidays      holiday.Calendar
	Now           func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, professionalID, date string) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, models.NewValidation("date must be YYYY-MM-DD")
	}

	prof, err := s.Professionals.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.Schedules.GetByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	blockedDays, err := s.BlockedDays.GetByProfessional(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	blockedSet := make(map[string]bool, len(blockedDays))
	for _, d := range blockedDays {
		blockedSet[d.Date] = true
	}

	// The holiday feed is reference data; if it is down and the cache is
	// cold, availability proceeds without it rather than failing the read.
	holidaySet := map[string]bool{}
	year, _ := strconv.Atoi(date[:4])
	holidays, err := s.Holidays.HolidaysFor(ctx, year, prof.Region)
	if err != nil {
		logger.Warn("holiday calendar unavailable, proceeding without holidays",
			zap.String("region", prof.Region), zap.Int("year", year), zap.Error(err))
	} else {
		for _, h := range holidays {
			holidaySet[h.Date] = true
		}
	}

	check := EligibilityCheck{
		Today:        s.now(),
		Blocks:       blocks,
		BlockedDates: blockedSet,
		HolidayDates: holidaySet,
	}
	result := &models.AvailabilityResult{
		ProfessionalID: professionalID,
		Date:           date,
		Times:          []string{},
	}
	if ok, reason := check.Eligible(date); !ok {
		result.Hint = reason
		return result, nil
	}

	day, _ := time.Parse("2006-01-02", date)
	weekday := models.WeekdayFromTime(day)

	union := map[string]struct{}{}
	for i := range blocks {
		block := &blocks[i]
		if !block.CoversDay(weekday) {
			continue
		}
		slots, err := BlockSlots(block)
		if err != nil {
			// A malformed stored block must not take down reads for the
			// professional's valid blocks.
			logger.Warn("skipping malformed schedule block",
				zap.String("blockId", block.ID), zap.Error(err))
			continue
		}
		for _, t := range slots {
			union[t] = struct{}{}
		}
	}

	booked, err := s.Reservations.GetActiveByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}
	for _, res := range booked {
		delete(union, res.Time)
	}

	times := make([]string, 0, len(union))
	for t := range union {
		times = append(times, t)
	}
	sort.Strings(times)
	result.Times = times
	if len(times) == 0 && result.Hint == "" {
		result.Hint = "no open slots on this date"
	}
	return result, nil
}
