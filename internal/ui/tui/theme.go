package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/model"
)

type theme struct {
	Base   lipgloss.Style
	Title  lipgloss.Style
	Clock  lipgloss.Style
	Status lipgloss.Style
	Flash  lipgloss.Style
	Error  lipgloss.Style
	Frame  lipgloss.Style
}

var (
	focusColor = lipgloss.Color("203")
	breakColor = lipgloss.Color("78")
	dimColor   = lipgloss.Color("240")
)

func defaultTheme() theme {
	return theme{
		Base:   lipgloss.NewStyle().Margin(1, 2),
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Clock:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(dimColor),
		Flash:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Frame:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 3),
	}
}

func (t theme) clockStyle(snapshot model.Snapshot) lipgloss.Style {
	switch {
	case snapshot.Phase == model.PhasePaused || snapshot.Phase == model.PhaseIdle:
		return t.Clock.Foreground(dimColor)
	case snapshot.Category == model.CategoryFocus:
		return t.Clock.Foreground(focusColor)
	default:
		return t.Clock.Foreground(breakColor)
	}
}
