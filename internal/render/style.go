// Package render prints wiki view models to a terminal.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	styleSubtitle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("250"))

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(lipgloss.Color("252"))

	styleMuted = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// toneColors maps status and tag tones to terminal colors.
var toneColors = map[string]lipgloss.Color{
	"active":  lipgloss.Color("39"),
	"danger":  lipgloss.Color("196"),
	"success": lipgloss.Color("34"),
	"warning": lipgloss.Color("214"),
	"info":    lipgloss.Color("39"),
	"muted":   lipgloss.Color("243"),
}

// badge renders a type label in the type's hex color.
func badge(label, color string) string {
	style := lipgloss.NewStyle().Bold(true)
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render("[" + label + "]")
}

func toned(text, tone string) string {
	color, ok := toneColors[tone]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
