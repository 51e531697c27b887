package timekeeper

import (
	"time"

	"trata/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventPhaseComplete EventType = "phase_complete"
)

// Cause explains why a phase completed.
type Cause string

const (
	CauseElapsed Cause = "elapsed"
	CauseSkipped Cause = "skipped"
)

// Event reports a phase completion resolved during a TimeKeeper call.
type Event struct {
	Type      EventType
	Cause     Cause
	Completed model.Phase
	Phase     model.Phase
	Sessions  int
	Running   bool
	At        time.Time
}

// Snapshot is the observable state of a TimeKeeper.
type Snapshot struct {
	Phase     model.Phase
	Remaining time.Duration
	Running   bool

	// Started is false until the first Start, Resume or Skip.
	Started  bool
	Sessions int

	// Progress is the completed fraction of the current phase in [0, 1].
	Progress float64
	At       time.Time

	// Events lists the completions resolved by the call that produced
	// this snapshot, oldest first.
	Events []Event
}

// Paused reports whether the timer was started and is currently stopped.
func (snapshot Snapshot) Paused() bool {
	return snapshot.Started && !snapshot.Running
}
