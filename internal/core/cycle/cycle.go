// Package cycle decides which phase follows a completed one.
package cycle

import "trata/internal/core/model"

// Next returns the phase that follows current and the updated count of
// work sessions completed since the last break.
//
// Completing a work phase increments the count; when long breaks are enabled
// and the count reaches the configured threshold a long break follows and the
// count resets. Any phase that is not work is treated as a break and is
// followed by work.
func Next(current model.Phase, sessions int, config model.TimeKeeperConfig) (model.Phase, int) {
	switch current {
	case model.PhaseWork:
		sessions++
		if sessions != config.SessionsBeforeLongBreak {
			return model.PhaseShortBreak, sessions
		}
		if config.LongBreakEnabled {
			return model.PhaseLongBreak, 0
		}
		// Without long breaks the counter wraps so it stays within the threshold.
		return model.PhaseShortBreak, 0
	case model.PhaseShortBreak:
		return model.PhaseWork, sessions
	default:
		return model.PhaseWork, 0
	}
}

// Sequence lists the next count phases that follow start.
func Sequence(start model.Phase, sessions int, config model.TimeKeeperConfig, count int) []model.Phase {
	phases := make([]model.Phase, 0, max(count, 0))
	phase := start
	for i := 0; i < count; i++ {
		phase, sessions = Next(phase, sessions, config)
		phases = append(phases, phase)
	}
	return phases
}
