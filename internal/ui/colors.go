package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, as ANSI codes so they follow the
// terminal's own palette.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Agent states grouped by how healthy they look. Anything else renders
// unstyled.
var (
	healthyStates = map[string]bool{"started": true, "active": true, "idle": true, "running": true}
	failedStates  = map[string]bool{"error": true, "down": true, "blocked": true, "failed": true, "lost": true}
	waitingStates = map[string]bool{
		"pending": true, "allocating": true, "installing": true,
		"executing": true, "maintenance": true, "waiting": true,
	}
)

func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorError) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }
func InfoStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(ColorInfo) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorMuted) }

// StateStyle picks the style for a juju agent state.
func StateStyle(state string) lipgloss.Style {
	s := strings.ToLower(state)
	switch {
	case healthyStates[s]:
		return SuccessStyle()
	case failedStates[s]:
		return ErrorStyle()
	case waitingStates[s]:
		return WarningStyle()
	default:
		return lipgloss.NewStyle()
	}
}

// StyleState colours an already-padded state field. Its signature matches
// units.StateStyler.
func StyleState(state, padded string) string {
	return StateStyle(state).Render(padded)
}

// DisableColors switches lipgloss to monochrome output (for --no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
