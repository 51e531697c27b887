package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() TimeKeeperConfig {
	return TimeKeeperConfig{
		Work:                    25 * time.Minute,
		ShortBreak:              5 * time.Minute,
		LongBreak:               15 * time.Minute,
		SessionsBeforeLongBreak: 4,
		LongBreakEnabled:        true,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMalformedFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TimeKeeperConfig)
		field  string
	}{
		{"zero work", func(c *TimeKeeperConfig) { c.Work = 0 }, "work"},
		{"negative short break", func(c *TimeKeeperConfig) { c.ShortBreak = -time.Second }, "short_break"},
		{"zero long break", func(c *TimeKeeperConfig) { c.LongBreak = 0 }, "long_break"},
		{"zero sessions", func(c *TimeKeeperConfig) { c.SessionsBeforeLongBreak = 0 }, "sessions_before_long_break"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(&config)

			err := config.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var configErr *ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	err := TimeKeeperConfig{}.Validate()
	require.Error(t, err)

	for _, field := range []string{"work", "short_break", "long_break", "sessions_before_long_break"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestDurationLooksUpPhase(t *testing.T) {
	config := validConfig()

	assert.Equal(t, 25*time.Minute, config.Duration(PhaseWork))
	assert.Equal(t, 5*time.Minute, config.Duration(PhaseShortBreak))
	assert.Equal(t, 15*time.Minute, config.Duration(PhaseLongBreak))
}

func TestPhaseLabels(t *testing.T) {
	assert.Equal(t, "Work", PhaseWork.Label())
	assert.Equal(t, "Short Break", PhaseShortBreak.Label())
	assert.Equal(t, "Long Break", PhaseLongBreak.Label())
	assert.False(t, PhaseWork.IsBreak())
	assert.True(t, PhaseShortBreak.IsBreak())
	assert.True(t, PhaseLongBreak.IsBreak())
}
