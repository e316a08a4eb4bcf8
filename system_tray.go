package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"weekalarm/pkg/export"
)

func (wa *WeekAlarm) setupSystemTray() {
	wa.updateSystemTrayMenu()
}

func (wa *WeekAlarm) updateSystemTrayMenu() {
	desk, ok := wa.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// A ringing alarm gets its two actions at the top
	if firing := wa.evaluator.Firing(); firing != nil {
		ringing := fyne.NewMenuItem(fmt.Sprintf("Ringing: %s", firing.Alarm.Label), nil)
		ringing.Disabled = true
		menuItems = append(menuItems,
			ringing,
			fyne.NewMenuItem(fmt.Sprintf("Snooze %d min", wa.settings.SnoozeMinutes()), func() {
				wa.snoozeFiring()
			}),
			fyne.NewMenuItem("Dismiss", func() {
				wa.dismissFiring()
			}),
			fyne.NewMenuItemSeparator(),
		)
	}

	// Read-only alarm list. The entities themselves are off limits here:
	// the engine rewrites schedules and active flags under its own lock,
	// so the menu renders from engine-issued copies.
	alarms := wa.evaluator.Snapshot()
	if len(alarms) == 0 {
		empty := fyne.NewMenuItem("No alarms configured", nil)
		empty.Disabled = true
		menuItems = append(menuItems, empty)
	}
	for _, alarm := range alarms {
		item := fyne.NewMenuItem(truncateString(alarm.Summary(), 50), nil)
		item.Disabled = true
		menuItems = append(menuItems, item)
	}

	weekItem := fyne.NewMenuItem(fmt.Sprintf("Week: %s", wa.parityCache.Current()), nil)
	weekItem.Disabled = true

	menuItems = append(menuItems,
		fyne.NewMenuItemSeparator(),
		weekItem,
		fyne.NewMenuItem("Refresh week parity", func() {
			go func() {
				wa.refreshParity()
				wa.updateSystemTrayMenu()
			}()
		}),
		fyne.NewMenuItem("Export schedule", func() {
			wa.exportSchedule()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			wa.quit()
		}),
	)

	// Rebuilds arrive from the tick and parity goroutines as well as menu
	// callbacks, so the swap itself is marshalled onto the event loop
	fyne.Do(func() {
		desk.SetSystemTrayMenu(fyne.NewMenu(appDisplayName, menuItems...))
	})
}

// exportSchedule writes the alarm schedule as an iCal file next to the
// user's home directory
func (wa *WeekAlarm) exportSchedule() {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Failed to resolve home directory: %v", err)
		return
	}

	path := filepath.Join(home, appName+".ics")
	if err := export.WriteFile(path, wa.evaluator.Snapshot(), time.Now()); err != nil {
		log.Printf("Failed to export schedule: %v", err)
		return
	}
	log.Printf("Schedule exported to %s", path)
}

// truncateString truncates a string to maxLen characters, adding "..." if needed
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
