package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// syncAutostart aligns the desktop login-item registration with the
// auto_start preference. A no-op when the registration already matches.
func syncAutostart(enable bool) error {
	entry, err := loginItem()
	if err != nil {
		return err
	}

	if entry.IsEnabled() == enable {
		return nil
	}

	if enable {
		if err := entry.Enable(); err != nil {
			return fmt.Errorf("enable autostart: %w", err)
		}
		log.Println("Autostart enabled")
		return nil
	}

	if err := entry.Disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	log.Println("Autostart disabled")
	return nil
}

// loginItem builds the registration entry for the running binary, with
// symlinks resolved so the entry survives installs behind a link farm
func loginItem() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	return &autostart.App{
		Name:        appName,
		DisplayName: appDisplayName,
		Exec:        []string{execPath},
	}, nil
}
