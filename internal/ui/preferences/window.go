package preferences

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings) error

	work       *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	sessions   *widget.Entry

	longBreakEnabled *widget.Check
	autoContinue     *widget.Check
	bell             *widget.Check

	status     *widget.Label
	saveButton *widget.Button
}

// New creates a preferences window. onSave receives validated settings; if
// it fails the window stays open and shows the error.
func New(app fyne.App, settings Settings, onSave func(Settings) error) *Window {
	window := app.NewWindow("Trata Settings")

	prefs := &Window{
		window:           window,
		onSave:           onSave,
		work:             widget.NewEntry(),
		shortBreak:       widget.NewEntry(),
		longBreak:        widget.NewEntry(),
		sessions:         widget.NewEntry(),
		longBreakEnabled: widget.NewCheck("Take long breaks", nil),
		autoContinue:     widget.NewCheck("Start the next phase automatically", nil),
		bell:             widget.NewCheck("Play a sound between phases", nil),
		status:           widget.NewLabel(""),
	}
	prefs.status.Wrapping = fyne.TextWrapWord
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Phases", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Work", prefs.work),
			widget.NewFormItem("Short break", prefs.shortBreak),
			widget.NewFormItem("Long break", prefs.longBreak),
			widget.NewFormItem("Sessions before long break", prefs.sessions),
		),
		prefs.longBreakEnabled,
		prefs.autoContinue,
		prefs.bell,
		prefs.status,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 380))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(formatDuration(settings.Work))
	prefs.shortBreak.SetText(formatDuration(settings.ShortBreak))
	prefs.longBreak.SetText(formatDuration(settings.LongBreak))
	prefs.sessions.SetText(strconv.Itoa(settings.SessionsBeforeLongBreak))
	prefs.longBreakEnabled.SetChecked(settings.LongBreakEnabled)
	prefs.autoContinue.SetChecked(settings.AutoContinue)
	prefs.bell.SetChecked(settings.Bell)
	prefs.status.SetText("")
}

func (prefs *Window) handleSave() {
	settings, err := prefs.formSettings()
	if err == nil && prefs.onSave != nil {
		err = prefs.onSave(settings)
	}
	if err != nil {
		prefs.status.SetText(err.Error())
		return
	}

	prefs.settings = settings
	prefs.status.SetText("")
	prefs.window.Hide()
}

// formSettings reads the form on top of the current settings, keeping
// fields the window does not show.
func (prefs *Window) formSettings() (Settings, error) {
	settings := prefs.settings

	durations := []struct {
		label  string
		entry  *widget.Entry
		target *time.Duration
	}{
		{"work", prefs.work, &settings.Work},
		{"short break", prefs.shortBreak, &settings.ShortBreak},
		{"long break", prefs.longBreak, &settings.LongBreak},
	}
	for _, duration := range durations {
		parsed, err := time.ParseDuration(strings.TrimSpace(duration.entry.Text))
		if err != nil {
			return prefs.settings, fmt.Errorf("%s: use a duration such as 25m or 90s", duration.label)
		}
		*duration.target = parsed
	}

	sessions, err := strconv.Atoi(strings.TrimSpace(prefs.sessions.Text))
	if err != nil {
		return prefs.settings, errors.New("sessions before long break: not a number")
	}
	settings.SessionsBeforeLongBreak = sessions
	settings.LongBreakEnabled = prefs.longBreakEnabled.Checked
	settings.AutoContinue = prefs.autoContinue.Checked
	settings.Bell = prefs.bell.Checked

	if err := settings.TimeKeeperConfig().Validate(); err != nil {
		return prefs.settings, err
	}
	return settings, nil
}

// formatDuration drops the zero units time.Duration.String keeps, so 25m0s
// reads as 25m.
func formatDuration(value time.Duration) string {
	text := value.String()
	if strings.HasSuffix(text, "m0s") {
		text = strings.TrimSuffix(text, "0s")
	}
	if strings.HasSuffix(text, "h0m") {
		text = strings.TrimSuffix(text, "0m")
	}
	return text
}
