package models

import (
	"testing"
	"time"
)

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "13:05", "23:59"}
	for _, s := range valid {
		if !ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "9:30", "24:00", "12:60", "12:5", "noon", "12:30:00"}
	for _, s := range invalid {
		if ValidTimeOfDay(s) {
			t.Errorf("ValidTimeOfDay(%q) = true, want false", s)
		}
	}
}

func TestWeekdayFromTime(t *testing.T) {
	// 2026-03-02 is a Monday.
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, want := range WeekdayOrder {
		if got := WeekdayFromTime(day.AddDate(0, 0, i)); got != want {
			t.Errorf("day %d = %q, want %q", i, got, want)
		}
	}
}

func TestScheduleBlockValidate(t *testing.T) {
	base := func() ScheduleBlock {
		return ScheduleBlock{
			ProfessionalID:  "prof-1",
			Days:            []Weekday{Monday, Wednesday},
			FromTime:        "09:00",
			ToTime:          "17:00",
			IntervalMinutes: 30,
			BreakFrom:       "12:00",
			BreakTo:         "13:00",
		}
	}

	t.Run("valid block", func(t *testing.T) {
		b := base()
		if err := b.Validate(); err != nil {
			t.Errorf("Validate returned %v", err)
		}
	})

	t.Run("inverted window is legal", func(t *testing.T) {
		b := base()
		b.FromTime, b.ToTime = "17:00", "09:00"
		if err := b.Validate(); err != nil {
			t.Errorf("Validate returned %v", err)
		}
	})

	tests := []struct {
		name     string
		mutate   func(*ScheduleBlock)
		wantCode ErrorCode
	}{
		{"zero interval", func(b *ScheduleBlock) { b.IntervalMinutes = 0 }, ErrCodeInvalidInterval},
		{"missing professional", func(b *ScheduleBlock) { b.ProfessionalID = "" }, ErrCodeInvalidSchedule},
		{"no weekdays", func(b *ScheduleBlock) { b.Days = nil }, ErrCodeInvalidSchedule},
		{"unknown weekday", func(b *ScheduleBlock) { b.Days = []Weekday{"Monday"} }, ErrCodeInvalidSchedule},
		{"unpadded from time", func(b *ScheduleBlock) { b.FromTime = "9:00" }, ErrCodeInvalidSchedule},
		{"half a break", func(b *ScheduleBlock) { b.BreakTo = "" }, ErrCodeInvalidSchedule},
		{"inverted break", func(b *ScheduleBlock) { b.BreakFrom, b.BreakTo = "13:00", "12:00" }, ErrCodeInvalidSchedule},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := base()
			tc.mutate(&b)
			err := b.Validate()
			if CodeOf(err) != tc.wantCode {
				t.Errorf("Validate = %v, want code %q", err, tc.wantCode)
			}
		})
	}
}
