package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/charmbracelet/log"

	"trata/internal/core/timekeeper"
	"trata/internal/logging"
	"trata/internal/platform"
	"trata/internal/storage"
	"trata/internal/ui/preferences"
	"trata/internal/ui/tray"
)

const (
	appName = "trata"
	// The tray label only shows whole seconds.
	minPollInterval = time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	guard, err := platform.AcquireSingleInstance(appName + "-tray")
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	logDir, err := logging.DefaultDir(appName)
	if err != nil {
		return err
	}
	runtimeLogger, err := logging.New(logDir, appName+"-tray", log.InfoLevel)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		_ = runtimeLogger.Close()
	}()
	logger := runtimeLogger.Logger

	configPath, err := storage.ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	keeper, err := timekeeper.New(settings.TimeKeeperConfig(), timekeeper.Config{})
	if err != nil {
		return fmt.Errorf("configure timer: %w", err)
	}

	fyneApp := app.NewWithID("com.trata.tray")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return fmt.Errorf("system tray unsupported on this platform")
	}

	stop := make(chan struct{})
	var stopOnce sync.Once
	var session *tray.Session
	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) error {
		replacement, err := timekeeper.New(updated.TimeKeeperConfig(), timekeeper.Config{})
		if err != nil {
			return err
		}
		if err := storage.SaveSettings(configPath, updated); err != nil {
			logger.With("err", err).Error("save settings")
			return err
		}
		session.Replace(replacement)
		return nil
	})

	session = tray.NewSession(desktopApp, "Trata", keeper, tray.SessionOptions{
		Notify: func(event timekeeper.Event) {
			fyneApp.SendNotification(fyne.NewNotification("Trata", tray.CompletionMessage(event)))
		},
		OnPreferences: prefsWindow.Show,
		OnQuit: func() {
			stopOnce.Do(func() {
				close(stop)
			})
			fyneApp.Quit()
		},
		Logger: logger,
	})

	go func() {
		ticker := time.NewTicker(max(settings.TickInterval, minPollInterval))
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fyne.Do(func() {
					session.Poll()
				})
			}
		}
	}()

	logger.With("settings", configPath).Info("tray started")
	fyneApp.Run()
	stopOnce.Do(func() {
		close(stop)
	})
	return nil
}
