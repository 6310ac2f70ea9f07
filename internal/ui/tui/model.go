// Package tui is the terminal host for the timer engine.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pomodoro/internal/core/model"
)

// Commander accepts timer commands. *engine.Engine satisfies it.
type Commander interface {
	Dispatch(command model.Command) error
}

// SnapshotMsg carries a snapshot from the engine subscription.
type SnapshotMsg model.Snapshot

// CompletedMsg is sent by the host's completion sink.
type CompletedMsg model.Snapshot

// ReleasedMsg is sent by the host's release hook after a stop.
type ReleasedMsg struct{}

type updatesClosedMsg struct{}

// Options configures the terminal model.
type Options struct {
	Durations model.Durations
	// Bell is invoked once per completed timer.
	Bell func()
}

// Model is the bubbletea model of the terminal host.
type Model struct {
	commands  Commander
	updates   <-chan model.Snapshot
	durations model.Durations
	bell      func()
	snapshot  model.Snapshot
	progress  progress.Model
	help      help.Model
	keys      keyMap
	theme     theme
	flash     string
	err       error
	quitting  bool
}

// New creates the model. updates is usually an engine subscription channel.
func New(commands Commander, updates <-chan model.Snapshot, options Options) Model {
	if options.Durations == (model.Durations{}) {
		options.Durations = model.DefaultDurations()
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		commands:  commands,
		updates:   updates,
		durations: options.Durations,
		bell:      options.Bell,
		snapshot:  model.IdleSnapshot(),
		progress:  bar,
		help:      help.New(),
		keys:      defaultKeyMap(),
		theme:     defaultTheme(),
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

func waitForSnapshot(updates <-chan model.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snapshot, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return SnapshotMsg(snapshot)
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case SnapshotMsg:
		m.snapshot = model.Snapshot(msg)
		if m.snapshot.Phase == model.PhaseRunning {
			m.flash = ""
		}
		return m, waitForSnapshot(m.updates)
	case CompletedMsg:
		m.flash = fmt.Sprintf("%s finished", model.Snapshot(msg).Category.Title())
		if m.bell != nil {
			return m, ringBell(m.bell)
		}
		return m, nil
	case ReleasedMsg:
		m.flash = ""
		return m, nil
	case updatesClosedMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		width := msg.Width - 12
		if width > 60 {
			width = 60
		}
		if width < 10 {
			width = 10
		}
		m.progress.Width = width
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func ringBell(bell func()) tea.Cmd {
	return func() tea.Msg {
		bell()
		return nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var command model.Command
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		command = model.StartFor(model.CategoryFocus, m.durations)
	case key.Matches(msg, m.keys.ShortBreak):
		command = model.StartFor(model.CategoryShortBreak, m.durations)
	case key.Matches(msg, m.keys.LongBreak):
		command = model.StartFor(model.CategoryLongBreak, m.durations)
	case key.Matches(msg, m.keys.Toggle):
		switch m.snapshot.Phase {
		case model.PhaseRunning:
			command = model.Pause{}
		case model.PhasePaused:
			command = model.Resume{}
		default:
			return m, nil
		}
	case key.Matches(msg, m.keys.Reset):
		command = model.Reset{}
	case key.Matches(msg, m.keys.Stop):
		command = model.Stop{}
		m.flash = ""
	default:
		return m, nil
	}

	m.err = m.commands.Dispatch(command)
	return m, nil
}

// Snapshot returns the last rendered snapshot.
func (m Model) Snapshot() model.Snapshot {
	return m.snapshot
}

// View renders the timer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body strings.Builder
	body.WriteString(m.theme.Title.Render(m.snapshot.Category.Title()))
	body.WriteString("\n\n")

	clock := m.snapshot.Clock()
	if m.snapshot.Phase == model.PhaseIdle {
		clock = "--:--"
	}
	body.WriteString(m.theme.clockStyle(m.snapshot).Render(clock))
	body.WriteString("\n\n")
	body.WriteString(m.progress.ViewAs(m.snapshot.Progress()))
	body.WriteString("\n\n")
	body.WriteString(m.theme.Status.Render(statusLine(m.snapshot)))

	if m.flash != "" {
		body.WriteString("\n")
		body.WriteString(m.theme.Flash.Render(m.flash))
	}
	if m.err != nil {
		body.WriteString("\n")
		body.WriteString(m.theme.Error.Render(m.err.Error()))
	}

	return m.theme.Base.Render(m.theme.Frame.Render(body.String()) + "\n" + m.help.View(m.keys))
}

func statusLine(snapshot model.Snapshot) string {
	switch snapshot.Phase {
	case model.PhaseIdle:
		return "idle"
	case model.PhasePaused:
		return fmt.Sprintf("paused, %s of %s left", snapshot.Clock(), model.FormatSeconds(snapshot.TotalSeconds))
	case model.PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("running, %s total", model.FormatSeconds(snapshot.TotalSeconds))
	}
}
