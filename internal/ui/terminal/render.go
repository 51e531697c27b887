package terminal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"trata/internal/core/cycle"
	"trata/internal/core/model"
	"trata/internal/core/timekeeper"
)

const (
	defaultBarWidth = 30
	maxBarWidth     = 60
)

var (
	workColor       = lipgloss.Color("#FF9966")
	shortBreakColor = lipgloss.Color("#33FF33")
	longBreakColor  = lipgloss.Color("#99CCFF")

	clockStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F6FA"))
	detailStyle = lipgloss.NewStyle().Faint(true)
)

// FormatRemaining renders a duration as MM:SS, rounding partial seconds up
// so the display reaches 00:00 only when the phase is over.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int((remaining + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// StatusLabel names the phase along with its run state, e.g. "Work (Paused)".
func StatusLabel(snapshot timekeeper.Snapshot) string {
	label := snapshot.Phase.Label()
	switch {
	case !snapshot.Started:
		return label + " (Ready)"
	case !snapshot.Running:
		return label + " (Paused)"
	default:
		return label
	}
}

// Render draws the timer block for the snapshot: clock, progress bar, mode
// and session count.
func Render(snapshot timekeeper.Snapshot, config model.TimeKeeperConfig, barWidth int) string {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}
	next := cycle.Sequence(snapshot.Phase, snapshot.Sessions, config, 1)[0]
	color := phaseColor(snapshot.Phase)

	return lipgloss.JoinVertical(lipgloss.Left,
		clockStyle.Foreground(color).Render(FormatRemaining(snapshot.Remaining)),
		newProgressBar(barWidth, color).ViewAs(snapshot.Progress),
		statusStyle.Render("Mode: "+StatusLabel(snapshot)),
		detailStyle.Render(fmt.Sprintf("Sessions: %d/%d  Next: %s", snapshot.Sessions, config.SessionsBeforeLongBreak, next.Label())),
	)
}

func newProgressBar(width int, color lipgloss.Color) progress.Model {
	return progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithSolidFill(string(color)),
	)
}

func phaseColor(phase model.Phase) lipgloss.Color {
	switch phase {
	case model.PhaseShortBreak:
		return shortBreakColor
	case model.PhaseLongBreak:
		return longBreakColor
	default:
		return workColor
	}
}
