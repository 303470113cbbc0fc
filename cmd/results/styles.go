package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)
)

// FormatReturn formats a fractional return as a percentage with an indicator of its sign.
func FormatReturn(value float64) string {
	text := fmt.Sprintf("%.2f%%", value*100)

	if value > 0 {
		return text + " ▲"
	} else if value < 0 {
		return text + " ▼"
	}

	return text
}
