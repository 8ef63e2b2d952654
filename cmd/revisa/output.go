package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	colorAccent  = lipgloss.Color("#2CD7C7")
	colorMuted   = lipgloss.Color("#6C7A89")
	colorSuccess = lipgloss.Color("#27AE60")
	colorError   = lipgloss.Color("#E74C3C")
)

type styleSet struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Card    lipgloss.Style
	Answer  lipgloss.Style
}

var styles = newStyles(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

// newStyles drops borders and colors when output is not a terminal so that
// piped output stays plain text.
func newStyles(terminal bool) styleSet {
	if !terminal {
		plain := lipgloss.NewStyle()
		return styleSet{Title: plain, Muted: plain, Success: plain, Error: plain, Card: plain, Answer: plain}
	}
	return styleSet{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Success: lipgloss.NewStyle().Foreground(colorSuccess),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			Width(60),
		Answer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSuccess).
			Padding(0, 1).
			Width(60),
	}
}
