package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trata/internal/core/model"
	"trata/internal/core/timekeeper"
)

// fakeTrayApp records what the Manager pushes to the system tray.
type fakeTrayApp struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (app *fakeTrayApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeTrayApp) SetSystemTrayIcon(icon fyne.Resource) {
	app.icons = append(app.icons, icon)
}

func (app *fakeTrayApp) SetSystemTrayWindow(fyne.Window) {}

func (app *fakeTrayApp) lastIcon() string {
	if len(app.icons) == 0 {
		return ""
	}
	return app.icons[len(app.icons)-1].Name()
}

func (app *fakeTrayApp) item(t *testing.T, index int) *fyne.MenuItem {
	t.Helper()
	require.NotEmpty(t, app.menus)
	menu := app.menus[len(app.menus)-1]
	require.Greater(t, len(menu.Items), index)
	return menu.Items[index]
}

func (app *fakeTrayApp) itemByLabel(t *testing.T, label string) *fyne.MenuItem {
	t.Helper()
	require.NotEmpty(t, app.menus)
	for _, item := range app.menus[len(app.menus)-1].Items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("no menu item %q", label)
	return nil
}

func testConfig(autoContinue bool) model.TimeKeeperConfig {
	return model.TimeKeeperConfig{
		Work:                    25 * time.Minute,
		ShortBreak:              5 * time.Minute,
		LongBreak:               15 * time.Minute,
		SessionsBeforeLongBreak: 4,
		LongBreakEnabled:        true,
		AutoContinue:            autoContinue,
	}
}

func newTestSession(t *testing.T, options SessionOptions) (*Session, *fakeTrayApp, *timekeeper.ManualClock) {
	t.Helper()
	test.NewTempApp(t)

	clock := timekeeper.NewManualClock(time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC))
	keeper, err := timekeeper.New(testConfig(false), timekeeper.Config{Clock: clock})
	require.NoError(t, err)

	app := &fakeTrayApp{}
	return NewSession(app, "Trata", keeper, options), app, clock
}

func TestManagerBuildsMenu(t *testing.T) {
	test.NewTempApp(t)
	app := &fakeTrayApp{}

	New(app, "Trata", Callbacks{})

	require.Len(t, app.menus, 1)
	labels := make([]string, 0, len(app.menus[0].Items))
	for _, item := range app.menus[0].Items {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Status: starting...", "Start", "Skip phase", "", "Preferences", "Quit"}, labels)
	assert.True(t, app.menus[0].Items[0].Disabled)
	assert.True(t, app.menus[0].Items[5].IsQuit)
	assert.Equal(t, theme.MediaPauseIcon().Name(), app.lastIcon())
}

func TestSessionMenuFollowsStartPauseSkip(t *testing.T) {
	_, app, clock := newTestSession(t, SessionOptions{})
	pauseIcon := theme.MediaPauseIcon().Name()
	playIcon := theme.MediaPlayIcon().Name()

	assert.Equal(t, "Work 25:00", app.item(t, 0).Label)
	assert.Equal(t, "Start", app.item(t, 1).Label)
	assert.Equal(t, pauseIcon, app.lastIcon())

	app.item(t, 1).Action()
	assert.Equal(t, "Pause", app.item(t, 1).Label)
	assert.Equal(t, playIcon, app.lastIcon())

	clock.Advance(5 * time.Minute)
	app.item(t, 1).Action()
	assert.Equal(t, "Work 20:00 (paused)", app.item(t, 0).Label)
	assert.Equal(t, "Resume", app.item(t, 1).Label)
	assert.Equal(t, pauseIcon, app.lastIcon())

	app.itemByLabel(t, "Skip phase").Action()
	assert.Equal(t, "Short Break 05:00 (paused)", app.item(t, 0).Label)
	assert.Equal(t, "Resume", app.item(t, 1).Label)
	assert.Equal(t, pauseIcon, app.lastIcon())

	app.item(t, 1).Action()
	assert.Equal(t, "Short Break 05:00", app.item(t, 0).Label)
	assert.Equal(t, playIcon, app.lastIcon())
}

func TestSessionPollNotifiesElapsedPhasesOnly(t *testing.T) {
	var notified []timekeeper.Event
	session, app, clock := newTestSession(t, SessionOptions{
		Notify: func(event timekeeper.Event) {
			notified = append(notified, event)
		},
	})

	session.Apply((*timekeeper.TimeKeeper).Start)
	clock.Advance(25 * time.Minute)
	snapshot := session.Poll()

	require.Len(t, snapshot.Events, 1)
	require.Len(t, notified, 1)
	assert.Equal(t, model.PhaseWork, notified[0].Completed)
	assert.Equal(t, "Short Break 05:00 (paused)", app.item(t, 0).Label)

	session.Apply((*timekeeper.TimeKeeper).Skip)
	assert.Len(t, notified, 1)
}

func TestSessionReplaceInstallsNewEngine(t *testing.T) {
	session, app, _ := newTestSession(t, SessionOptions{})
	session.Apply((*timekeeper.TimeKeeper).Start)

	keeper, err := timekeeper.New(model.TimeKeeperConfig{
		Work:                    50 * time.Minute,
		ShortBreak:              10 * time.Minute,
		LongBreak:               30 * time.Minute,
		SessionsBeforeLongBreak: 2,
		LongBreakEnabled:        true,
	}, timekeeper.Config{})
	require.NoError(t, err)

	snapshot := session.Replace(keeper)
	assert.False(t, snapshot.Started)
	assert.Equal(t, "Work 50:00", app.item(t, 0).Label)
	assert.Equal(t, "Start", app.item(t, 1).Label)
	assert.Equal(t, theme.MediaPauseIcon().Name(), app.lastIcon())

	app.item(t, 1).Action()
	assert.Equal(t, "Pause", app.item(t, 1).Label)
}

func TestSessionForwardsHostCallbacks(t *testing.T) {
	var preferences, quit int
	_, app, _ := newTestSession(t, SessionOptions{
		OnPreferences: func() { preferences++ },
		OnQuit:        func() { quit++ },
	})

	app.itemByLabel(t, "Preferences").Action()
	app.itemByLabel(t, "Quit").Action()

	assert.Equal(t, 1, preferences)
	assert.Equal(t, 1, quit)
}
