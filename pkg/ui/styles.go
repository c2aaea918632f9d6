package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mvello/breathe/pkg/breath"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with per-phase accent colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg        = lipgloss.Color("#282A36")
	ColorText      = lipgloss.Color("#F8F8F2")
	ColorSubtext   = lipgloss.Color("#BFBFBF")
	ColorMuted     = lipgloss.Color("#6272A4")
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorDanger    = lipgloss.Color("#FF5555")

	// Advisory phase tints: cool while air comes in, green on release,
	// amber while holding.
	ColorInhale = lipgloss.Color("#8BE9FD")
	ColorExhale = lipgloss.Color("#50FA7B")
	ColorHold   = lipgloss.Color("#FFB86C")
)

// Theme bundles the renderer and palette so views render consistently and
// tests can swap in a plain renderer.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Subtext   lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the standard palette on the default renderer.
func DefaultTheme() Theme {
	return Theme{
		Renderer:  lipgloss.DefaultRenderer(),
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Subtext:   ColorSubtext,
		Muted:     ColorMuted,
		Warning:   ColorWarning,
		Danger:    ColorDanger,
		Border:    lipgloss.Color("#44475A"),
	}
}

// PhaseColor returns the advisory tint for a phase. Cosmetic only; the
// geometry never depends on it.
func PhaseColor(p breath.Phase) lipgloss.Color {
	switch p {
	case breath.PhaseExhale:
		return ColorExhale
	case breath.PhaseHold:
		return ColorHold
	default:
		return ColorInhale
	}
}
