package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"trata/internal/core/timekeeper"
	"trata/internal/logging"
)

const (
	defaultTickInterval = 200 * time.Millisecond
	bell                = "\a"
)

// Options configures a terminal session.
type Options struct {
	TickInterval time.Duration
	Bell         bool
	Logger       *log.Logger
}

// tickMsg asks the model to poll the TimeKeeper.
type tickMsg time.Time

// Model drives a TimeKeeper from key presses and redraws it on every tick.
// Bubbletea calls Update from a single goroutine, which serializes every
// engine call.
type Model struct {
	keeper   *timekeeper.TimeKeeper
	options  Options
	keys     keyMap
	help     help.Model
	snapshot timekeeper.Snapshot
	barWidth int
	quitting bool
}

// New creates a session model around keeper.
func New(keeper *timekeeper.TimeKeeper, options Options) *Model {
	if options.TickInterval <= 0 {
		options.TickInterval = defaultTickInterval
	}
	if options.Logger == nil {
		options.Logger = logging.Discard()
	}
	return &Model{
		keeper:   keeper,
		options:  options,
		keys:     defaultKeyMap(),
		help:     help.New(),
		snapshot: keeper.Query(),
		barWidth: defaultBarWidth,
	}
}

// Run starts the timer and blocks until quit is pressed or ctx is done.
func Run(ctx context.Context, keeper *timekeeper.TimeKeeper, in io.Reader, out io.Writer, options Options) error {
	program := tea.NewProgram(New(keeper, options),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// Init starts the timer and schedules the first poll.
func (m *Model) Init() tea.Cmd {
	m.record(m.keeper.Start())
	return m.tick()
}

// Update applies key commands, polls on ticks and tracks the window width.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tickMsg:
		m.record(m.keeper.Query())
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.barWidth = min(max(typed.Width-4, 10), maxBarWidth)
		m.help.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.command(msg) {
	case CommandToggle:
		m.record(m.keeper.TogglePause())
		m.options.Logger.With("phase", m.snapshot.Phase, "running", m.snapshot.Running).Info("pause toggled")
	case CommandSkip:
		m.record(m.keeper.Skip())
	case CommandQuit:
		m.quitting = true
		m.options.Logger.Info("quit requested")
		return m, tea.Quit
	}
	return m, nil
}

// View renders the timer block, the key help and a bell after completions.
func (m *Model) View() string {
	frame := lipgloss.JoinVertical(lipgloss.Left,
		Render(m.snapshot, m.keeper.Config(), m.barWidth),
		"",
		m.help.View(m.keys),
	) + "\n"
	if m.options.Bell && !m.quitting && len(m.snapshot.Events) > 0 {
		frame += bell
	}
	return frame
}

// Snapshot returns the state shown by the last frame.
func (m *Model) Snapshot() timekeeper.Snapshot {
	return m.snapshot
}

func (m *Model) record(snapshot timekeeper.Snapshot) {
	for _, event := range snapshot.Events {
		m.options.Logger.With(
			"completed", event.Completed,
			"phase", event.Phase,
			"cause", event.Cause,
			"sessions", event.Sessions,
		).Info("phase complete")
	}
	m.snapshot = snapshot
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.options.TickInterval, func(at time.Time) tea.Msg {
		return tickMsg(at)
	})
}
