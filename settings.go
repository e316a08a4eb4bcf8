package main

import (
	"encoding/json"
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"weekalarm/pkg/models"
	"weekalarm/pkg/parity"
)

// Settings exposes user preferences backed by the fyne key/value store.
// Reads go to the store on every call so an external settings surface can
// change values while the app runs.
type Settings struct {
	app fyne.App
}

func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// SnoozeMinutes is how far ahead a snoozed alarm is re-armed
func (s *Settings) SnoozeMinutes() int {
	return s.app.Preferences().IntWithFallback("snooze_minutes", 5)
}

// NotificationsEnabled gates desktop notification dispatch on fire
func (s *Settings) NotificationsEnabled() bool {
	return s.app.Preferences().BoolWithFallback("notifications_enabled", true)
}

// TimetableURL is the page scraped for the current week parity
func (s *Settings) TimetableURL() string {
	return s.app.Preferences().StringWithFallback("timetable_url", parity.DefaultTimetableURL)
}

// ParityRefreshInterval is the period of the timetable re-check
func (s *Settings) ParityRefreshInterval() time.Duration {
	minutes := s.app.Preferences().IntWithFallback("parity_refresh_minutes", 60)
	if minutes < 1 {
		minutes = 1
	}
	return time.Duration(minutes) * time.Minute
}

// AutoStart reports whether the app should register itself as a login item
func (s *Settings) AutoStart() bool {
	return s.app.Preferences().BoolWithFallback("auto_start", false)
}

// alarmSeed is the JSON shape of one alarm in the "alarms" preference
type alarmSeed struct {
	Label     string            `json:"label"`
	Days      map[string]string `json:"days"`      // weekday name -> "HH:MM"
	WeekType  string            `json:"week_type"` // "any", "even" or "odd"
	Active    *bool             `json:"active"`    // defaults to true
	Sound     string            `json:"sound"`
	SoundName string            `json:"sound_name"`
}

// LoadAlarms parses the startup alarm list from the "alarms" preference.
// Alarms that parse cleanly are returned even when a later entry fails, so
// one typo does not silence every alarm.
func (s *Settings) LoadAlarms() ([]*models.Alarm, error) {
	raw := s.app.Preferences().String("alarms")
	if raw == "" {
		return nil, nil
	}

	var seeds []alarmSeed
	if err := json.Unmarshal([]byte(raw), &seeds); err != nil {
		return nil, fmt.Errorf("invalid alarms JSON: %w", err)
	}

	alarms := make([]*models.Alarm, 0, len(seeds))
	for i, seed := range seeds {
		alarm, err := seed.toAlarm()
		if err != nil {
			return alarms, fmt.Errorf("alarm %d: %w", i, err)
		}
		alarms = append(alarms, alarm)
	}
	return alarms, nil
}

func (seed alarmSeed) toAlarm() (*models.Alarm, error) {
	alarm := models.NewAlarm(seed.Label)
	alarm.Sound = seed.Sound
	alarm.SoundName = seed.SoundName
	if seed.Active != nil {
		alarm.Active = *seed.Active
	}

	switch models.WeekType(seed.WeekType) {
	case models.WeekEven, models.WeekOdd:
		alarm.WeekType = models.WeekType(seed.WeekType)
	case models.WeekAny, "":
		alarm.WeekType = models.WeekAny
	default:
		return nil, fmt.Errorf("invalid week_type %q", seed.WeekType)
	}

	for dayName, clock := range seed.Days {
		day, err := models.ParseWeekday(dayName)
		if err != nil {
			return nil, err
		}
		slot, err := models.ParseClock(clock)
		if err != nil {
			return nil, err
		}
		alarm.Schedule[day] = slot
	}

	return alarm, nil
}
