package availability

import (
	"fmt"
	"strconv"

	"clinicbook/models"
)

// GenerateSlots expands one schedule window into its ordered slot times.
// Times are zero-padded "HH:MM" strings compared lexicographically, which is
// valid because they share a fixed width. The end time is exclusive. When the
// cursor lands inside [breakFrom, breakTo) it jumps straight to breakTo
// without emitting a slot, so the break start itself is suppressed.
func GenerateSlots(from, to string, intervalMinutes int, breakFrom, breakTo string) ([]string, error) {
	if intervalMinutes <= 0 {
		return nil, models.NewInvalidInterval("intervalMinutes must be positive")
	}
	if !models.ValidTimeOfDay(from) || !models.ValidTimeOfDay(to) {
		return nil, models.NewInvalidSchedule("fromTime and toTime must be zero-padded HH:MM")
	}
	hasBreak := breakFrom != "" && breakTo != ""
	if hasBreak && (!models.ValidTimeOfDay(breakFrom) || !models.ValidTimeOfDay(breakTo)) {
		return nil, models.NewInvalidSchedule("break times must be zero-padded HH:MM")
	}

	var slots []string
	cursor := from
	for cursor < to {
		if hasBreak && cursor >= breakFrom && cursor < breakTo {
			cursor = breakTo
			continue
		}
		slots = append(slots, cursor)
		cursor = addMinutes(cursor, intervalMinutes)
	}
	return slots, nil
}

// BlockSlots validates a schedule block and expands it.
func BlockSlots(block *models.ScheduleBlock) ([]string, error) {
	if err := block.Validate(); err != nil {
		return nil, err
	}
	return GenerateSlots(block.FromTime, block.ToTime, block.IntervalMinutes, block.BreakFrom, block.BreakTo)
}

// addMinutes advances an "HH:MM" cursor with hour carry. The result may run
// past "23:59"; the loop in GenerateSlots terminates on it all the same.
func addMinutes(t string, minutes int) string {
	h, _ := strconv.Atoi(t[:2])
	m, _ := strconv.Atoi(t[3:])
	total := h*60 + m + minutes
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
