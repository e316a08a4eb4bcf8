// Package engine decides, once per tick, whether any alarm should fire, and
// owns the fire/snooze/dismiss transitions of the alarm that did.
package engine

import (
	"sync"
	"time"

	"weekalarm/pkg/models"
	"weekalarm/pkg/parity"
	"weekalarm/pkg/store"
)

// fireTolerance is how close to the scheduled minute boundary "now" must be
// for an alarm to fire. Ticks arrive roughly once per second, so a
// sub-second window catches each boundary exactly once.
const fireTolerance = time.Second

// suppressionWindow prevents the same alarm from re-firing right after a
// fire. A time window rather than a fired-today flag tolerates late or
// skipped ticks without needing any midnight reset.
const suppressionWindow = 60 * time.Second

// Notifier dispatches a desktop notification. Failures (including platforms
// with no notification support) are logged by the engine, never propagated.
type Notifier interface {
	Notify(title, message string) error
}

// SoundPlayer starts looped playback of an audio cue and returns a function
// that stops it. An empty ref selects the built-in cue.
type SoundPlayer interface {
	Play(ref string, loop bool) (stop func(), err error)
}

// Settings exposes the user preferences the engine reads at trigger time.
// Values are read live on each use so an external settings surface can
// change them between ticks.
type Settings interface {
	SnoozeMinutes() int
	NotificationsEnabled() bool
}

// Evaluator scans the alarm collection once per tick and fires at most one
// alarm. All alarm mutation performed by the engine happens under its lock.
type Evaluator struct {
	mu       sync.Mutex
	store    *store.AlarmStore
	parity   *parity.Cache
	settings Settings
	notifier Notifier
	sounds   SoundPlayer
	firing   *Firing
}

func NewEvaluator(alarms *store.AlarmStore, cache *parity.Cache, settings Settings, notifier Notifier, sounds SoundPlayer) *Evaluator {
	return &Evaluator{
		store:    alarms,
		parity:   cache,
		settings: settings,
		notifier: notifier,
		sounds:   sounds,
	}
}

// Tick runs one evaluation pass against the given instant and returns the
// alarm that fired, or nil. The host calls this on a short fixed period;
// tests call it directly with synthetic timestamps.
//
// At most one alarm fires per tick: when two alarms match the same minute,
// only the first in stored order fires, and the 60-second suppression keeps
// the other from catching up later that minute. Known limitation, kept to
// mirror a single-alert-at-a-time surface.
func (e *Evaluator) Tick(now time.Time) *models.Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	// One consistent snapshot of "now" and "today" shared by the whole scan
	today := now.Weekday()
	currentParity := e.parity.Current()

	for _, alarm := range e.store.Alarms() {
		if !e.eligible(alarm, now, today, currentParity) {
			continue
		}

		e.fire(alarm, now)
		return alarm
	}

	return nil
}

// Snapshot returns deep copies of the alarms, taken under the engine lock.
// List surfaces on other goroutines must read these copies rather than the
// live entities: snooze and dismiss rewrite the schedule map and active
// flag under the same lock, so a direct read could tear mid-mutation.
func (e *Evaluator) Snapshot() []*models.Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	alarms := e.store.Alarms()
	out := make([]*models.Alarm, len(alarms))
	for i, alarm := range alarms {
		out[i] = alarm.Clone()
	}
	return out
}

// eligible reports whether the alarm should fire at the given instant
func (e *Evaluator) eligible(alarm *models.Alarm, now time.Time, today time.Weekday, currentParity models.WeekType) bool {
	if !alarm.Active {
		return false
	}

	slot, ok := alarm.SlotFor(today)
	if !ok {
		return false
	}

	delta := now.Sub(slot.On(now))
	if delta < 0 {
		delta = -delta
	}
	if delta >= fireTolerance {
		return false
	}

	if !alarm.LastTriggered.IsZero() && now.Sub(alarm.LastTriggered) <= suppressionWindow {
		return false
	}

	if alarm.WeekType != models.WeekAny && alarm.WeekType != currentParity {
		return false
	}

	return true
}
