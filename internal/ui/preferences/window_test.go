package preferences

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trata/internal/core/model"
)

func newTestWindow(t *testing.T, onSave func(Settings) error) *Window {
	t.Helper()
	return New(test.NewTempApp(t), DefaultSettings(), onSave)
}

func TestWindowShowsSettings(t *testing.T) {
	prefs := newTestWindow(t, nil)

	assert.Equal(t, "25m", prefs.work.Text)
	assert.Equal(t, "5m", prefs.shortBreak.Text)
	assert.Equal(t, "15m", prefs.longBreak.Text)
	assert.Equal(t, "4", prefs.sessions.Text)
	assert.True(t, prefs.longBreakEnabled.Checked)
	assert.False(t, prefs.autoContinue.Checked)
	assert.True(t, prefs.bell.Checked)
}

func TestWindowSavesEditedSettings(t *testing.T) {
	var saved []Settings
	prefs := newTestWindow(t, func(settings Settings) error {
		saved = append(saved, settings)
		return nil
	})

	prefs.work.SetText("50m")
	prefs.sessions.SetText(" 2 ")
	prefs.autoContinue.SetChecked(true)
	prefs.bell.SetChecked(false)
	test.Tap(prefs.saveButton)

	require.Len(t, saved, 1)
	want := DefaultSettings()
	want.Work = 50 * time.Minute
	want.SessionsBeforeLongBreak = 2
	want.AutoContinue = true
	want.Bell = false
	assert.Equal(t, want, saved[0])
	assert.Empty(t, prefs.status.Text)
}

func TestWindowRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Window)
		match string
	}{
		{"bad duration", func(prefs *Window) { prefs.shortBreak.SetText("soon") }, "short break"},
		{"bad sessions", func(prefs *Window) { prefs.sessions.SetText("four") }, "sessions"},
		{"zero sessions", func(prefs *Window) { prefs.sessions.SetText("0") }, "sessions_before_long_break"},
		{"zero work", func(prefs *Window) { prefs.work.SetText("0s") }, "work"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			prefs := newTestWindow(t, func(Settings) error {
				called = true
				return nil
			})

			tt.edit(prefs)
			test.Tap(prefs.saveButton)

			assert.False(t, called)
			assert.Contains(t, prefs.status.Text, tt.match)
			assert.Equal(t, DefaultSettings(), prefs.settings)
		})
	}
}

func TestWindowKeepsOpenWhenSaveFails(t *testing.T) {
	prefs := newTestWindow(t, func(Settings) error {
		return errors.New("disk full")
	})

	prefs.work.SetText("40m")
	test.Tap(prefs.saveButton)

	assert.Equal(t, "disk full", prefs.status.Text)
	assert.Equal(t, DefaultSettings(), prefs.settings)
}

func TestFormSettingsValidatesThroughConfig(t *testing.T) {
	prefs := newTestWindow(t, nil)
	prefs.longBreak.SetText("-1m")

	_, err := prefs.formSettings()
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "25m", formatDuration(25*time.Minute))
	assert.Equal(t, "1h", formatDuration(time.Hour))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
	assert.Equal(t, "1m30s", formatDuration(90*time.Second))
	assert.Equal(t, "45s", formatDuration(45*time.Second))
}
