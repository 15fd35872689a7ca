package explore

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#e63948") // red
	colorSecondary = lipgloss.Color("10")      // green
	colorMatch     = lipgloss.Color("#D4AF37") // gold
	colorError     = lipgloss.Color("9")       // red
	colorMuted     = lipgloss.Color("8")       // gray
	colorAccent    = lipgloss.Color("#11C3DB") // cyan
	colorHighlight = lipgloss.Color("15")      // white
)

// Pane border styles
var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted)
)

// Title style for pane headers
var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Background(colorPrimary).
	Padding(0, 1)

// Table row styles
var (
	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("17")).
				Foreground(colorHighlight)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)
)

// Text span styles, in increasing precedence
var (
	cursorStyle = lipgloss.NewStyle().Reverse(true)

	candidateStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(colorMatch)

	selectionStyles = []lipgloss.Style{
		lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(colorHighlight),
		lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(colorHighlight),
		lipgloss.NewStyle().Background(lipgloss.Color("53")).Foreground(colorHighlight),
	}

	staleStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colorError)
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)

// Help styles
var (
	helpKeyStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Detail field styles
var (
	fieldLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	fieldValueStyle = lipgloss.NewStyle().Foreground(colorHighlight)
	patternStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorMatch)
	flagOnStyle     = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	flagOffStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// Modal overlay style
var modalStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// renderFlag returns a styled option toggle.
func renderFlag(label string, on bool) string {
	if on {
		return flagOnStyle.Render("[x] " + label)
	}
	return flagOffStyle.Render("[ ] " + label)
}
