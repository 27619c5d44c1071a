package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7785")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")
)

type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Banner   lipgloss.Style
	Blocking lipgloss.Style
	Price    lipgloss.Style
	InStock  lipgloss.Style
	NoStock  lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Banner:   lipgloss.NewStyle().Foreground(warning),
		Blocking: lipgloss.NewStyle().Bold(true).Foreground(destructive).Padding(1, 2),
		Price:    lipgloss.NewStyle().Foreground(accent),
		InStock:  lipgloss.NewStyle().Foreground(accent),
		NoStock:  lipgloss.NewStyle().Foreground(destructive),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
