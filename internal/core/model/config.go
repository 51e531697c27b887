package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is the root of every configuration validation error.
var ErrInvalidConfig = errors.New("invalid timer config")

// ConfigError describes a single rejected configuration field.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidConfig, err.Field, err.Reason, err.Value)
}

// Unwrap lets callers match any ConfigError with errors.Is(err, ErrInvalidConfig).
func (err *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// TimeKeeperConfig contains the immutable settings of one TimeKeeper.
type TimeKeeperConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	// SessionsBeforeLongBreak is the number of completed work phases
	// after which a long break replaces the short one.
	SessionsBeforeLongBreak int
	LongBreakEnabled        bool

	// AutoContinue chains phases without pausing at each completion.
	AutoContinue bool
}

// Validate reports every malformed field, joined into one error.
func (config TimeKeeperConfig) Validate() error {
	var errs []error
	durations := []struct {
		field string
		value time.Duration
	}{
		{"work", config.Work},
		{"short_break", config.ShortBreak},
		{"long_break", config.LongBreak},
	}
	for _, duration := range durations {
		if duration.value <= 0 {
			errs = append(errs, &ConfigError{
				Field:  duration.field,
				Value:  duration.value,
				Reason: "must be positive",
			})
		}
	}
	if config.SessionsBeforeLongBreak < 1 {
		errs = append(errs, &ConfigError{
			Field:  "sessions_before_long_break",
			Value:  config.SessionsBeforeLongBreak,
			Reason: "must be at least 1",
		})
	}
	return errors.Join(errs...)
}

// Duration returns the full length of the given phase.
func (config TimeKeeperConfig) Duration(phase Phase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return config.ShortBreak
	case PhaseLongBreak:
		return config.LongBreak
	default:
		return config.Work
	}
}
