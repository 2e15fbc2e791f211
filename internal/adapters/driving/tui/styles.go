package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles shared across the TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Panel    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	HelpLine lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Label:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		HelpLine: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
