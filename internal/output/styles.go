package output

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// ColorGreen marks created files.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow marks modified files.
	ColorYellow = lipgloss.Color("220")

	// ColorCyan is used for identifiable nouns: paths, ids, package names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// StyleNoun styles identifiable nouns.
var StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

// File status words.
const (
	StatusCreated  = "created"
	StatusModified = "modified"
)

// StatusStyle returns the style for a file status word.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
