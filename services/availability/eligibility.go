package availability

import (
	"time"

	"clinicbook/models"
)

// EligibilityCheck gathers the read-only context for the date gate. It is
// pure: an ineligible date is a normal outcome, never an error.
type EligibilityCheck struct {
	Today        time.Time
	Blocks       []models.ScheduleBlock
	BlockedDates map[string]bool
	HolidayDates map[string]bool
}

// Eligible reports whether the date is offered at all, with a human-readable
// reason when it is not. A date is rejected when it lies in the past, no
// schedule block covers its weekday, the professional blocked it, or it is a
// regional holiday.
func (c EligibilityCheck) Eligible(date string) (bool, string) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false, "invalid date"
	}
	// ISO dates compare correctly as strings.
	if date < c.Today.Format("2006-01-02") {
		return false, "date is in the past"
	}
	weekday := models.WeekdayFromTime(day)
	covered := false
	for i := range c.Blocks {
		if c.Blocks[i].CoversDay(weekday) {
			covered = true
			break
		}
	}
	if !covered {
		return false, "no schedule for this weekday"
	}
	if c.BlockedDates[date] {
		return false, "professional is unavailable on this date"
	}
	if c.HolidayDates[date] {
		return false, "date is a holiday"
	}
	return true, ""
}
