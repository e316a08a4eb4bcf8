// Package export renders the alarm schedule as an iCalendar file so other
// calendar tools can display the ring times.
package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"

	"weekalarm/pkg/models"
)

var byDayNames = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// Calendar builds a VCALENDAR describing every active alarm. Each armed
// weekday becomes its own weekly VEVENT; alarms restricted to even or odd
// weeks recur fortnightly, anchored at their next occurrence after now.
func Calendar(alarms []*models.Alarm, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//weekalarm//weekalarm//EN")

	for _, alarm := range alarms {
		if !alarm.Active {
			continue
		}

		for day := time.Sunday; day <= time.Saturday; day++ {
			slot, ok := alarm.SlotFor(day)
			if !ok {
				continue
			}

			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@weekalarm", alarm.ID, byDayNames[day]))
			event.Props.SetText(ical.PropSummary, alarm.Label)
			event.Props.SetDateTime(ical.PropDateTimeStamp, now)
			event.Props.SetDateTime(ical.PropDateTimeStart, nextOccurrence(now, day, slot))

			rule := ical.NewProp(ical.PropRecurrenceRule)
			rule.Value = recurrenceRule(alarm.WeekType, day)
			event.Props.Set(rule)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	return cal
}

// Write encodes the calendar for the given alarms to w
func Write(w io.Writer, alarms []*models.Alarm, now time.Time) error {
	if err := ical.NewEncoder(w).Encode(Calendar(alarms, now)); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// WriteFile writes the schedule calendar to the given path
func WriteFile(path string, alarms []*models.Alarm, now time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}
	defer f.Close()

	return Write(f, alarms, now)
}

// nextOccurrence returns the first instant at or after now that falls on
// the given weekday at the given time
func nextOccurrence(now time.Time, day time.Weekday, slot models.ClockTime) time.Time {
	candidate := slot.On(now)
	daysAhead := (int(day) - int(now.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, daysAhead)
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

func recurrenceRule(weekType models.WeekType, day time.Weekday) string {
	rule := "FREQ=WEEKLY;BYDAY=" + byDayNames[day]
	if weekType != models.WeekAny {
		// Even/odd-week alarms ring every other week
		rule = "FREQ=WEEKLY;INTERVAL=2;BYDAY=" + byDayNames[day]
	}
	return rule
}
