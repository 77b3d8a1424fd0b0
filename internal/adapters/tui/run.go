// Package tui provides the live countdown view using the Bubbletea
// framework.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"minder/internal/config"
	"minder/internal/domain"
	"minder/internal/services"
)

// tickMsg is sent on every timer tick.
type tickMsg time.Time

// Model renders a running session: per-activity states, the current
// countdown, and the whole-plan progress bar.
type Model struct {
	schedule *domain.Schedule
	snapshot *services.Snapshot
	fetch    func() (*services.Snapshot, error)
	stop     func() error

	progress progress.Model
	theme    config.ThemeConfig
	width    int
	err      error

	// Stopped is true when the user stopped the session from the view.
	Stopped bool
}

// NewModel creates the run view. fetch is called on every tick; stop is
// invoked when the user presses s.
func NewModel(schedule *domain.Schedule, initial *services.Snapshot, theme *config.ThemeConfig, fetch func() (*services.Snapshot, error), stop func() error) Model {
	resolved := config.DefaultThemeConfig()
	if theme != nil {
		resolved = *theme
	}
	return Model{
		schedule: schedule,
		snapshot: initial,
		fetch:    fetch,
		stop:     stop,
		progress: progress.New(progress.WithDefaultGradient()),
		theme:    resolved,
		width:    60,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles ticks, resizes, and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		return m, nil

	case tickMsg:
		snap, err := m.fetch()
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.snapshot = snap
		if !snap.Active {
			return m, tea.Quit
		}
		return m, tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s":
			if err := m.stop(); err != nil {
				m.err = err
			}
			m.Stopped = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// Err returns the error that ended the view, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the countdown screen.
func (m Model) View() string {
	if m.snapshot == nil {
		return "loading...\n"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", m.theme.IconApp, m.schedule.Name)))
	b.WriteString("\n\n")

	for _, st := range m.snapshot.Statuses {
		b.WriteString(m.renderActivity(st))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + m.progress.ViewAs(m.snapshot.Progress))
	b.WriteString(fmt.Sprintf("  %3.0f%%\n", m.snapshot.Progress*100))

	if !m.snapshot.Anchor.IsZero() {
		b.WriteString(helpStyle.Render(fmt.Sprintf("\n  deadline %s", m.snapshot.Anchor.Format("15:04"))))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("\n  s stop · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderActivity(st domain.ActivityStatus) string {
	switch {
	case st.Skipped:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorSkipped))
		return style.Render(fmt.Sprintf("  %s %s (skipped)", m.theme.IconSkipped, st.Name))
	case st.State == domain.StateCompleted:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorDone)).Strikethrough(true)
		return style.Render(fmt.Sprintf("  %s %s", m.theme.IconDone, st.Name))
	case st.State == domain.StateCurrent:
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorCurrent))
		return style.Render(fmt.Sprintf("  %s %s — %s left", m.theme.IconCurrent, st.Name, FormatCountdown(st.Remaining)))
	default:
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorUpcoming))
		return style.Render(fmt.Sprintf("    %s — starts %s (in %s)", st.Name, st.Window.Start.Format("15:04"), FormatCountdown(st.UntilStart)))
	}
}

// FormatCountdown renders a duration as M:SS or H:MM:SS.
func FormatCountdown(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
