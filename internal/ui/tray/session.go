package tray

import (
	"sync"

	"fyne.io/fyne/v2/driver/desktop"
	"github.com/charmbracelet/log"

	"trata/internal/core/timekeeper"
	"trata/internal/logging"
)

// SessionOptions wires a Session to its host.
type SessionOptions struct {
	// Notify is called for every phase that ran out on its own.
	Notify        func(timekeeper.Event)
	OnPreferences func()
	OnQuit        func()
	Logger        *log.Logger
}

// Session owns the TimeKeeper behind the tray menu. Menu callbacks, the
// poller and settings changes all reach the engine through its lock, and
// each snapshot is applied to the menu before the lock is released, so an
// older snapshot never overwrites a newer one.
type Session struct {
	mu      sync.Mutex
	keeper  *timekeeper.TimeKeeper
	manager *Manager
	options SessionOptions
}

// NewSession builds the tray menu for keeper and shows its initial state.
// Like Manager, a Session must be driven from the fyne main goroutine.
func NewSession(app desktop.App, appName string, keeper *timekeeper.TimeKeeper, options SessionOptions) *Session {
	if options.Logger == nil {
		options.Logger = logging.Discard()
	}
	session := &Session{
		keeper:  keeper,
		options: options,
	}
	session.manager = New(app, appName, Callbacks{
		OnTogglePause: func() {
			session.Apply((*timekeeper.TimeKeeper).TogglePause)
		},
		OnSkip: func() {
			session.Apply((*timekeeper.TimeKeeper).Skip)
		},
		OnPreferences: options.OnPreferences,
		OnQuit:        options.OnQuit,
	})
	session.Poll()
	return session
}

// Apply runs a command against the engine and shows the result.
func (session *Session) Apply(command func(*timekeeper.TimeKeeper) timekeeper.Snapshot) timekeeper.Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()

	snapshot := command(session.keeper)
	session.show(snapshot)
	return snapshot
}

// Poll resolves elapsed phases and refreshes the menu.
func (session *Session) Poll() timekeeper.Snapshot {
	return session.Apply((*timekeeper.TimeKeeper).Query)
}

// Replace swaps in a freshly configured engine, e.g. after the user saved
// new settings. The new engine starts at the beginning of a work phase.
func (session *Session) Replace(keeper *timekeeper.TimeKeeper) timekeeper.Snapshot {
	session.mu.Lock()
	defer session.mu.Unlock()

	session.keeper = keeper
	session.options.Logger.With("work", keeper.Config().Work, "auto_continue", keeper.Config().AutoContinue).Info("timer reconfigured")
	snapshot := keeper.Query()
	session.show(snapshot)
	return snapshot
}

func (session *Session) show(snapshot timekeeper.Snapshot) {
	for _, event := range snapshot.Events {
		session.options.Logger.With("completed", event.Completed, "phase", event.Phase, "cause", event.Cause).Info("phase complete")
		if event.Cause == timekeeper.CauseElapsed && session.options.Notify != nil {
			session.options.Notify(event)
		}
	}
	session.manager.Update(snapshot)
}
