package tui

import "github.com/charmbracelet/lipgloss"

// Chrome colors. Category colors come from the palette package; these only
// cover borders, headings and status text and may be overridden by a skin.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("240")
	ColorWhite  = lipgloss.Color("15")
	ColorNavy   = lipgloss.Color("17")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
)

var (
	sectionStyle       lipgloss.Style
	activeSectionStyle lipgloss.Style
	titleStyle         lipgloss.Style
	helpStyle          lipgloss.Style
	cardStyle          lipgloss.Style
	statusStyle        lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles derives the shared styles from the current chrome colors.
func rebuildStyles() {
	sectionStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)
	activeSectionStyle = sectionStyle.BorderForeground(ColorBlue)
	titleStyle = lipgloss.NewStyle().
		Foreground(ColorBlue).
		Bold(true)
	helpStyle = lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)
	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1).
		Width(cardWidth).
		Align(lipgloss.Center)
	statusStyle = lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)
}
