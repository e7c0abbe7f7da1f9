// Package logo renders the pomo wordmark.
package logo

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/guilhermegouw/pomo/internal/tui/styles"
)

const pomoLogo = `
█▀█ █▀█ █▀▄▀█ █▀█
█▀▀ █▄█ █ ▀ █ █▄█
`

// Render returns the logo in a gradient from the focus to the long break
// colour of the current theme.
func Render() string {
	t := styles.CurrentTheme()
	logo := strings.Trim(pomoLogo, "\n")
	return styles.ApplyForegroundGrad(logo, styles.RGBColor(t.FocusRound), styles.RGBColor(t.LongRound))
}

// RenderWithVersion returns the logo with the version underneath.
func RenderWithVersion(version string) string {
	t := styles.CurrentTheme()
	return lipgloss.JoinVertical(lipgloss.Center, Render(), t.S().Subtle.Render(version))
}

// Width returns the width of the logo.
func Width() int {
	return lipgloss.Width(strings.Trim(pomoLogo, "\n"))
}

// Height returns the height of the logo.
func Height() int {
	return lipgloss.Height(strings.Trim(pomoLogo, "\n"))
}
