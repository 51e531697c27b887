package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"trata/internal/core/timekeeper"
	"trata/internal/ui/terminal"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTogglePause func()
	OnSkip        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. Its methods must run on the fyne
// main goroutine.
type Manager struct {
	app        desktop.App
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	skipItem   *fyne.MenuItem
	callbacks  Callbacks
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, appName string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})

	manager.skipItem = fyne.NewMenuItem("Skip phase", func() {
		if manager.callbacks.OnSkip != nil {
			manager.callbacks.OnSkip()
		}
	})

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(appName, manager.statusItem, manager.toggleItem, manager.skipItem, fyne.NewMenuItemSeparator(), preferences, quit)
	app.SetSystemTrayMenu(manager.menu)
	app.SetSystemTrayIcon(theme.MediaPauseIcon())

	return manager
}

// Update reflects a TimeKeeper snapshot in the menu and icon.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	manager.statusItem.Label = StatusText(snapshot)
	manager.toggleItem.Label = ToggleLabel(snapshot)
	if snapshot.Running != manager.running {
		manager.running = snapshot.Running
		if snapshot.Running {
			manager.app.SetSystemTrayIcon(theme.MediaPlayIcon())
		} else {
			manager.app.SetSystemTrayIcon(theme.MediaPauseIcon())
		}
	}
	manager.menu.Refresh()
}

// StatusText renders the status line, e.g. "Work 12:34 (paused)".
func StatusText(snapshot timekeeper.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.Phase.Label(), terminal.FormatRemaining(snapshot.Remaining))
	if snapshot.Paused() {
		status += " (paused)"
	}
	return status
}

// ToggleLabel names the action the pause item will perform.
func ToggleLabel(snapshot timekeeper.Snapshot) string {
	switch {
	case snapshot.Running:
		return "Pause"
	case snapshot.Started:
		return "Resume"
	default:
		return "Start"
	}
}

// CompletionMessage describes a finished phase for a desktop notification.
func CompletionMessage(event timekeeper.Event) string {
	message := fmt.Sprintf("%s finished. Next: %s", event.Completed.Label(), event.Phase.Label())
	if !event.Running {
		message += " (waiting to start)"
	}
	return message
}
