package timekeeper

import (
	"time"

	"trata/internal/core/cycle"
	"trata/internal/core/model"
)

const defaultMaxCatchUp = 1024

// Config contains runtime options for TimeKeeper.
type Config struct {
	Clock Clock

	// MaxCatchUp bounds how many elapsed phases a single call resolves.
	MaxCatchUp int
}

// TimeKeeper is a poll-driven pomodoro state machine.
//
// It keeps the instant the current phase ends rather than decrementing a
// counter, so irregular polling never distorts the remaining time. Phase
// boundaries are resolved lazily by whichever call observes them. A
// TimeKeeper is not safe for concurrent use.
type TimeKeeper struct {
	config  model.TimeKeeperConfig
	options Config

	phase    model.Phase
	sessions int
	running  bool
	started  bool

	// phaseEnd is authoritative while running, pausedRemaining otherwise.
	phaseEnd        time.Time
	pausedRemaining time.Duration
}

// New creates a stopped TimeKeeper at the start of a work phase.
// A malformed config is rejected with a *model.ConfigError.
func New(config model.TimeKeeperConfig, options Config) (*TimeKeeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if options.Clock == nil {
		options.Clock = RealClock{}
	}
	if options.MaxCatchUp <= 0 {
		options.MaxCatchUp = defaultMaxCatchUp
	}

	return &TimeKeeper{
		config:          config,
		options:         options,
		phase:           model.PhaseWork,
		pausedRemaining: config.Work,
	}, nil
}

// Config returns the configuration the TimeKeeper was built with.
func (keeper *TimeKeeper) Config() model.TimeKeeperConfig {
	return keeper.config
}

// Start runs the clock. Calling Start while running is a no-op.
func (keeper *TimeKeeper) Start() Snapshot {
	now := keeper.options.Clock.Now()
	keeper.resume(now)
	return keeper.snapshot(now, nil)
}

// Resume is Start under the name hosts use after a pause.
func (keeper *TimeKeeper) Resume() Snapshot {
	return keeper.Start()
}

// Pause freezes the remaining time. Calling Pause while stopped is a no-op.
func (keeper *TimeKeeper) Pause() Snapshot {
	now := keeper.options.Clock.Now()
	events := keeper.advance(now)
	keeper.pause(now)
	return keeper.snapshot(now, events)
}

// TogglePause pauses a running timer and resumes a stopped one.
func (keeper *TimeKeeper) TogglePause() Snapshot {
	now := keeper.options.Clock.Now()
	wasRunning := keeper.running
	events := keeper.advance(now)
	if wasRunning {
		keeper.pause(now)
	} else {
		keeper.resume(now)
	}
	return keeper.snapshot(now, events)
}

// Skip ends the current phase immediately, whatever time is left.
func (keeper *TimeKeeper) Skip() Snapshot {
	now := keeper.options.Clock.Now()
	event := keeper.complete(now, CauseSkipped)
	return keeper.snapshot(now, []Event{event})
}

// Query resolves every phase boundary crossed since the last call and
// reports the current state.
func (keeper *TimeKeeper) Query() Snapshot {
	now := keeper.options.Clock.Now()
	events := keeper.advance(now)
	return keeper.snapshot(now, events)
}

func (keeper *TimeKeeper) resume(now time.Time) {
	if keeper.running {
		return
	}
	keeper.running = true
	keeper.started = true
	keeper.phaseEnd = now.Add(keeper.pausedRemaining)
}

func (keeper *TimeKeeper) pause(now time.Time) {
	if !keeper.running {
		return
	}
	keeper.pausedRemaining = keeper.remaining(now)
	keeper.running = false
}

func (keeper *TimeKeeper) advance(now time.Time) []Event {
	var events []Event
	for keeper.running && !now.Before(keeper.phaseEnd) {
		if len(events) >= keeper.options.MaxCatchUp {
			// Too far behind to replay; restart the current phase from now.
			keeper.phaseEnd = now.Add(keeper.config.Duration(keeper.phase))
			break
		}
		events = append(events, keeper.complete(keeper.phaseEnd, CauseElapsed))
	}
	return events
}

// complete moves to the next phase, which begins at the given instant.
func (keeper *TimeKeeper) complete(at time.Time, cause Cause) Event {
	completed := keeper.phase
	keeper.phase, keeper.sessions = cycle.Next(keeper.phase, keeper.sessions, keeper.config)
	keeper.started = true

	full := keeper.config.Duration(keeper.phase)
	if keeper.config.AutoContinue {
		keeper.running = true
		keeper.phaseEnd = at.Add(full)
	} else {
		keeper.running = false
		keeper.pausedRemaining = full
	}

	return Event{
		Type:      EventPhaseComplete,
		Cause:     cause,
		Completed: completed,
		Phase:     keeper.phase,
		Sessions:  keeper.sessions,
		Running:   keeper.running,
		At:        at,
	}
}

func (keeper *TimeKeeper) remaining(now time.Time) time.Duration {
	remaining := keeper.pausedRemaining
	if keeper.running {
		remaining = keeper.phaseEnd.Sub(now)
	}
	if remaining < 0 {
		return 0
	}
	if full := keeper.config.Duration(keeper.phase); remaining > full {
		return full
	}
	return remaining
}

func (keeper *TimeKeeper) snapshot(now time.Time, events []Event) Snapshot {
	remaining := keeper.remaining(now)
	full := keeper.config.Duration(keeper.phase)
	return Snapshot{
		Phase:     keeper.phase,
		Remaining: remaining,
		Running:   keeper.running,
		Started:   keeper.started,
		Sessions:  keeper.sessions,
		Progress:  float64(full-remaining) / float64(full),
		At:        now,
		Events:    events,
	}
}
