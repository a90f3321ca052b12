package models

import (
	"regexp"
	"time"
)

// Weekday is a short day name as stored on a schedule block ("Mon".."Sun").
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
	Saturday  Weekday = "Sat"
	Sunday    Weekday = "Sun"
)

// WeekdayOrder is the canonical ordering used when rendering schedules.
var WeekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayFromTime maps a time.Time to its short day name.
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a zero-padded "HH:MM" string.
// Fixed width makes lexicographic comparison of times valid everywhere.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// ScheduleBlock is a recurring weekly availability rule for one professional.
type ScheduleBlock struct {
	ID              string    `bson:"id" json:"id"`
	ProfessionalID  string    `bson:"professionalId" json:"professionalId"`
	Days            []Weekday `bson:"days" json:"days"`
	FromTime        string    `bson:"fromTime" json:"fromTime"` // "HH:MM"
	ToTime          string    `bson:"toTime" json:"toTime"`     // "HH:MM"
	IntervalMinutes int       `bson:"intervalMinutes" json:"intervalMinutes"`
	BreakFrom       string    `bson:"breakFrom,omitempty" json:"breakFrom,omitempty"`
	BreakTo         string    `bson:"breakTo,omitempty" json:"breakTo,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// CoversDay reports whether the block is active on the given weekday.
func (b *ScheduleBlock) CoversDay(day Weekday) bool {
	for _, d := range b.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Validate checks the block shape. A block with FromTime >= ToTime is legal
// and simply yields no slots.
func (b *ScheduleBlock) Validate() error {
	if b.IntervalMinutes <= 0 {
		return NewInvalidInterval("intervalMinutes must be positive")
	}
	if b.ProfessionalID == "" {
		return NewInvalidSchedule("professionalId is required")
	}
	if len(b.Days) == 0 {
		return NewInvalidSchedule("at least one weekday is required")
	}
	for _, d := range b.Days {
		valid := false
		for _, known := range WeekdayOrder {
			if d == known {
				valid = true
				break
			}
		}
		if !valid {
			return NewInvalidSchedule("unknown weekday " + string(d))
		}
	}
	if !ValidTimeOfDay(b.FromTime) || !ValidTimeOfDay(b.ToTime) {
		return NewInvalidSchedule("fromTime and toTime must be zero-padded HH:MM")
	}
	// Break window is all-or-nothing.
	if (b.BreakFrom == "") != (b.BreakTo == "") {
		return NewInvalidSchedule("breakFrom and breakTo must be set together")
	}
	if b.BreakFrom != "" {
		if !ValidTimeOfDay(b.BreakFrom) || !ValidTimeOfDay(b.BreakTo) {
			return NewInvalidSchedule("break times must be zero-padded HH:MM")
		}
		if b.BreakFrom > b.BreakTo {
			return NewInvalidSchedule("breakFrom must not be after breakTo")
		}
	}
	return nil
}
