package models

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{"07:00", ClockTime{7, 0}, false},
		{"23:59", ClockTime{23, 59}, false},
		{"0:5", ClockTime{0, 5}, false},
		{" 12:30 ", ClockTime{12, 30}, false},
		{"24:00", ClockTime{}, true},
		{"12:60", ClockTime{}, true},
		{"-1:00", ClockTime{}, true},
		{"0700", ClockTime{}, true},
		{"seven", ClockTime{}, true},
		{"", ClockTime{}, true},
		{"7:3:1", ClockTime{}, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{"monday", time.Monday, false},
		{"Monday", time.Monday, false},
		{"MON", time.Monday, false},
		{"sun", time.Sunday, false},
		{"Saturday", time.Saturday, false},
		{"noday", time.Sunday, true},
		{"", time.Sunday, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWeekday(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWeekday(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestClockTimeOn(t *testing.T) {
	day := time.Date(2026, time.January, 5, 18, 42, 17, 123, time.Local)
	got := ClockTime{Hour: 7, Minute: 30}.On(day)

	want := time.Date(2026, time.January, 5, 7, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestNewAlarm(t *testing.T) {
	alarm := NewAlarm("wake up")

	if alarm.ID == "" {
		t.Error("expected a generated ID")
	}
	if alarm.Schedule == nil {
		t.Error("schedule must never be nil")
	}
	if !alarm.Active {
		t.Error("new alarms start active")
	}
	if alarm.WeekType != WeekAny {
		t.Errorf("new alarms default to WeekAny, got %v", alarm.WeekType)
	}
	if !alarm.LastTriggered.IsZero() {
		t.Error("new alarms have never fired")
	}
}

func TestSlotFor(t *testing.T) {
	alarm := NewAlarm("test")
	alarm.Schedule[time.Monday] = ClockTime{7, 0}

	if slot, ok := alarm.SlotFor(time.Monday); !ok || slot != (ClockTime{7, 0}) {
		t.Errorf("SlotFor(Monday) = %v, %v; want 07:00, true", slot, ok)
	}
	if _, ok := alarm.SlotFor(time.Tuesday); ok {
		t.Error("SlotFor(Tuesday) should report not armed")
	}
}

func TestClone(t *testing.T) {
	alarm := NewAlarm("class")
	alarm.Schedule[time.Monday] = ClockTime{7, 0}
	alarm.WeekType = WeekOdd

	dup := alarm.Clone()
	if dup == alarm {
		t.Fatal("Clone must return a new value")
	}
	if dup.ID != alarm.ID || dup.Label != alarm.Label || dup.WeekType != alarm.WeekType {
		t.Errorf("Clone() = %+v, want field-equal copy of %+v", dup, alarm)
	}

	// The copy's schedule is an independent map
	dup.Schedule[time.Friday] = ClockTime{9, 15}
	dup.Active = false
	if _, ok := alarm.SlotFor(time.Friday); ok {
		t.Error("mutating the clone's schedule leaked into the original")
	}
	if !alarm.Active {
		t.Error("mutating the clone's flags leaked into the original")
	}
}

func TestSummary(t *testing.T) {
	alarm := NewAlarm("class")
	alarm.Schedule[time.Monday] = ClockTime{7, 0}
	alarm.Schedule[time.Wednesday] = ClockTime{8, 30}
	alarm.WeekType = WeekOdd

	got := alarm.Summary()
	want := "class: Mon 07:00, Wed 08:30 (odd weeks) [active]"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	alarm.Active = false
	alarm.Schedule = map[time.Weekday]ClockTime{}
	alarm.WeekType = WeekAny
	got = alarm.Summary()
	want = "class: no days set [off]"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}
