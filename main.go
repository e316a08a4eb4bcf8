package main

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"weekalarm/pkg/audio"
	"weekalarm/pkg/engine"
	"weekalarm/pkg/parity"
	"weekalarm/pkg/store"
)

// Single source for the application identity, shared by the fyne app ID,
// the tray title, exports and the login-item registration
const (
	appID          = "io.weekalarm"
	appName        = "weekalarm"
	appDisplayName = "Week Alarm"
)

type WeekAlarm struct {
	app          fyne.App
	settings     *Settings
	alarms       *store.AlarmStore
	parityCache  *parity.Cache
	evaluator    *engine.Evaluator
	tickTicker   *time.Ticker
	parityTicker *time.Ticker
}

func main() {
	wa := &WeekAlarm{
		app:    app.NewWithID(appID),
		alarms: store.NewAlarmStore(),
	}

	if err := wa.initialize(); err != nil {
		log.Fatal(err)
	}

	wa.run()
}

func (wa *WeekAlarm) initialize() error {
	wa.settings = NewSettings(wa.app)

	if err := syncAutostart(wa.settings.AutoStart()); err != nil {
		log.Printf("Warning: failed to sync autostart: %v", err)
	}

	wa.loadSeedAlarms()

	wa.parityCache = parity.NewCache(parity.HTTPFetcher(wa.settings.TimetableURL()))
	wa.evaluator = engine.NewEvaluator(
		wa.alarms,
		wa.parityCache,
		wa.settings,
		&fyneNotifier{app: wa.app},
		audio.NewService(),
	)

	// Block for an initial parity value before the first evaluation
	wa.refreshParity()

	wa.setupSystemTray()
	wa.startParityRefresh()
	wa.startEvaluator()

	return nil
}

func (wa *WeekAlarm) run() {
	wa.app.Run()
}

// loadSeedAlarms reads the startup alarm list from preferences. Runtime
// changes (snooze, dismiss) stay in memory only and are never written back.
func (wa *WeekAlarm) loadSeedAlarms() {
	seeded, err := wa.settings.LoadAlarms()
	if err != nil {
		log.Printf("Warning: ignoring bad alarm seed config: %v", err)
	}
	for _, alarm := range seeded {
		wa.alarms.Add(alarm)
	}
	log.Printf("Loaded %d alarms", wa.alarms.Len())
}

func (wa *WeekAlarm) refreshParity() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	current := wa.parityCache.Refresh(ctx)
	log.Printf("Week parity: %s", current)
}

// startEvaluator drives the alarm scan at roughly one tick per second
func (wa *WeekAlarm) startEvaluator() {
	wa.tickTicker = time.NewTicker(1 * time.Second)
	go func() {
		for range wa.tickTicker.C {
			if fired := wa.evaluator.Tick(time.Now()); fired != nil {
				wa.updateSystemTrayMenu()
			}
		}
	}()
}

// startParityRefresh re-checks the timetable on a coarse period; parity
// changes at most weekly so hourly is already generous
func (wa *WeekAlarm) startParityRefresh() {
	wa.parityTicker = time.NewTicker(wa.settings.ParityRefreshInterval())
	go func() {
		for range wa.parityTicker.C {
			wa.refreshParity()
		}
	}()
}

func (wa *WeekAlarm) snoozeFiring() {
	wa.evaluator.Snooze(time.Now())
	wa.updateSystemTrayMenu()
}

func (wa *WeekAlarm) dismissFiring() {
	wa.evaluator.Dismiss()
	wa.updateSystemTrayMenu()
}

func (wa *WeekAlarm) quit() {
	if wa.tickTicker != nil {
		wa.tickTicker.Stop()
	}
	if wa.parityTicker != nil {
		wa.parityTicker.Stop()
	}
	wa.app.Quit()
}

// fyneNotifier dispatches desktop notifications through the fyne app
type fyneNotifier struct {
	app fyne.App
}

func (n *fyneNotifier) Notify(title, message string) error {
	n.app.SendNotification(fyne.NewNotification(title, message))
	return nil
}
