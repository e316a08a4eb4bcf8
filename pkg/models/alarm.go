package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WeekType restricts an alarm to even or odd academic weeks
type WeekType string

const (
	WeekAny  WeekType = "any"  // No restriction / parity unknown
	WeekEven WeekType = "even" // Fires only on even weeks
	WeekOdd  WeekType = "odd"  // Fires only on odd weeks
)

// ClockTime is a wall-clock time of day with minute granularity
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses a "HH:MM" string into a ClockTime
func ParseClock(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return ClockTime{}, fmt.Errorf("invalid time %q: hour must be 0-23", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("invalid time %q: minute must be 0-59", s)
	}

	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On returns the instant this clock time falls on for the given day
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// ParseWeekday parses a weekday name ("monday", "Mon", ...) into a time.Weekday
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", s)
}

// Alarm represents one recurring alarm keyed by weekday
type Alarm struct {
	ID            string                     // Unique identifier (UUID)
	Label         string                     // Display name
	Schedule      map[time.Weekday]ClockTime // Armed days and their times; never nil
	WeekType      WeekType                   // Week-parity filter
	Active        bool                       // Inactive alarms never fire
	LastTriggered time.Time                  // Zero value means never fired
	Sound         string                     // Audio cue file path; empty means built-in tone
	SoundName     string                     // Display label for the cue
}

// NewAlarm creates an active alarm with an empty schedule
func NewAlarm(label string) *Alarm {
	return &Alarm{
		ID:       uuid.New().String(),
		Label:    label,
		Schedule: make(map[time.Weekday]ClockTime),
		WeekType: WeekAny,
		Active:   true,
	}
}

// Clone returns a deep copy whose schedule map is independent of the
// original, so it stays safe to read after the original is mutated
func (a *Alarm) Clone() *Alarm {
	dup := *a
	dup.Schedule = make(map[time.Weekday]ClockTime, len(a.Schedule))
	for day, slot := range a.Schedule {
		dup.Schedule[day] = slot
	}
	return &dup
}

// SlotFor returns the scheduled time for the given day, if armed
func (a *Alarm) SlotFor(day time.Weekday) (ClockTime, bool) {
	slot, ok := a.Schedule[day]
	return slot, ok
}

// Summary returns a short description for list surfaces
func (a *Alarm) Summary() string {
	days := make([]string, 0, len(a.Schedule))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if slot, ok := a.Schedule[d]; ok {
			days = append(days, fmt.Sprintf("%s %s", d.String()[:3], slot))
		}
	}

	status := "active"
	if !a.Active {
		status = "off"
	}

	desc := strings.Join(days, ", ")
	if desc == "" {
		desc = "no days set"
	}
	if a.WeekType != WeekAny {
		desc += fmt.Sprintf(" (%s weeks)", a.WeekType)
	}

	return fmt.Sprintf("%s: %s [%s]", a.Label, desc, status)
}
