package engine

import (
	"fmt"
	"log"
	"time"

	"weekalarm/pkg/models"
)

// Firing is an alarm that has alerted and is awaiting a snooze or dismiss
// decision. Sound playback keeps looping until one arrives.
type Firing struct {
	Alarm *models.Alarm
	Since time.Time

	stopSound func()
}

// fire transitions an alarm into the Firing state: records the trigger
// time, dispatches the notification and starts the sound. Both side effects
// are best-effort; their failure never aborts the tick. Caller holds e.mu.
func (e *Evaluator) fire(alarm *models.Alarm, now time.Time) {
	// An unacknowledged earlier alert yields its sound to the new one
	if e.firing != nil {
		e.firing.stop()
	}

	alarm.LastTriggered = now

	if e.notifier != nil && e.settings.NotificationsEnabled() {
		message := fmt.Sprintf("%s — %s", alarm.Label, now.Format("15:04"))
		if err := e.notifier.Notify("Alarm", message); err != nil {
			log.Printf("Notification failed for alarm %q: %v", alarm.Label, err)
		}
	}

	firing := &Firing{Alarm: alarm, Since: now}
	if e.sounds != nil {
		stop, err := e.sounds.Play(alarm.Sound, true)
		if err != nil {
			log.Printf("Sound playback failed for alarm %q: %v", alarm.Label, err)
		} else {
			firing.stopSound = stop
		}
	}

	e.firing = firing
	log.Printf("Alarm fired: %q at %s", alarm.Label, now.Format("15:04:05"))
}

// Firing returns the alarm currently awaiting a user decision, or nil
func (e *Evaluator) Firing() *Firing {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.firing
}

// Snooze stops the sound and re-arms the firing alarm for snoozeMinutes
// from now, overwriting today's slot so it rings again later today. The
// alarm stays active. Snooze time is rounded down to the minute.
func (e *Evaluator) Snooze(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	firing := e.firing
	if firing == nil {
		return
	}
	firing.stop()

	at := now.Add(time.Duration(e.settings.SnoozeMinutes()) * time.Minute)
	today := now.Weekday()
	if _, ok := firing.Alarm.SlotFor(today); ok {
		firing.Alarm.Schedule[today] = models.ClockTime{Hour: at.Hour(), Minute: at.Minute()}
	}

	e.firing = nil
	log.Printf("Alarm snoozed: %q until %02d:%02d", firing.Alarm.Label, at.Hour(), at.Minute())
}

// Dismiss stops the sound and deactivates the firing alarm. It will not
// fire again until an edit re-activates it.
func (e *Evaluator) Dismiss() {
	e.mu.Lock()
	defer e.mu.Unlock()

	firing := e.firing
	if firing == nil {
		return
	}
	firing.stop()

	firing.Alarm.Active = false
	e.firing = nil
	log.Printf("Alarm dismissed: %q", firing.Alarm.Label)
}

func (f *Firing) stop() {
	if f.stopSound != nil {
		f.stopSound()
		f.stopSound = nil
	}
}
