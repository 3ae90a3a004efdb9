package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: config paths, registry names,
	// transform tags.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "ok" scan status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" scan status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "missing" scan status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "invalid" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (config paths, backbone names,
	// dataset paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (validating, scanning, diffing).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the semantic styles used by diff rendering.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return &Styles{
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// Scan status constants.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusSkipped = "skipped"
	StatusInvalid = "invalid"
)

// StatusStyle returns the lipgloss style for a given scan status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusOK:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusMissing:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusInvalid:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minFileColumnWidth is the minimum width for the file column before the
// status suffix, so status words align consistently.
const minFileColumnWidth = 48

// FormatFileLine renders a file path with a right-aligned, color-coded
// status suffix.
func FormatFileLine(path, status string) string {
	padding := minFileColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	styledPath := StyleNoun.Render(path)
	styledStatus := StatusStyle(status).Render(status)

	return styledPath + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatFieldError renders a field-path error line for validation output.
func FormatFieldError(field, msg string) string {
	return fmt.Sprintf("  %s %s", StyleNoun.Render(field+":"), msg)
}
