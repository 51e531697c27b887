package preferences

import (
	"time"

	"trata/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Work                    time.Duration
	ShortBreak              time.Duration
	LongBreak               time.Duration
	SessionsBeforeLongBreak int
	LongBreakEnabled        bool
	AutoContinue            bool

	TickInterval time.Duration
	Bell         bool
}

// DefaultSettings returns the classic pomodoro schedule.
func DefaultSettings() Settings {
	return Settings{
		Work:                    25 * time.Minute,
		ShortBreak:              5 * time.Minute,
		LongBreak:               15 * time.Minute,
		SessionsBeforeLongBreak: 4,
		LongBreakEnabled:        true,
		AutoContinue:            false,
		TickInterval:            200 * time.Millisecond,
		Bell:                    true,
	}
}

// TimeKeeperConfig converts settings to TimeKeeperConfig.
func (settings Settings) TimeKeeperConfig() model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		Work:                    settings.Work,
		ShortBreak:              settings.ShortBreak,
		LongBreak:               settings.LongBreak,
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
		LongBreakEnabled:        settings.LongBreakEnabled,
		AutoContinue:            settings.AutoContinue,
	}
}
