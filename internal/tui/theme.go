package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

// Semantic aliases.
const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorSubtext1).Background(colorSurface0).Padding(0, 2)
	footerStyle    = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Padding(0, 2)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
)

// opacityText maps a hint opacity onto the palette's brightness ramp. A
// terminal has no alpha channel; dimming the foreground reads the same way.
func opacityText(opacity float64) lipgloss.Color {
	switch {
	case opacity >= 0.95:
		return colorText
	case opacity >= 0.85:
		return colorSubtext1
	case opacity >= 0.7:
		return colorSubtext0
	case opacity > 0:
		return colorOverlay0
	default:
		return colorSurface0
	}
}

// opacityBorder is the border counterpart of opacityText.
func opacityBorder(opacity float64, active bool) lipgloss.Color {
	if active {
		return colorFocus
	}
	switch {
	case opacity >= 0.85:
		return colorSurface2
	case opacity >= 0.7:
		return colorSurface1
	case opacity > 0:
		return colorSurface0
	default:
		return colorBase
	}
}
