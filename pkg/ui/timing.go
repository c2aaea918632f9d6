package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvello/breathe/pkg/breath"
)

// renderTimingPanel shows the per-phase seconds for the current settings,
// mirroring the sidebar timing block of the original layout.
func renderTimingPanel(theme Theme, d breath.Durations) string {
	labelStyle := theme.Renderer.NewStyle().Foreground(theme.Subtext).Width(12)
	valueStyle := theme.Renderer.NewStyle().Foreground(theme.Text)
	titleStyle := theme.Renderer.NewStyle().Bold(true).Foreground(theme.Secondary)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Timing (seconds)"))
	b.WriteString("\n")

	rows := []struct {
		label   string
		seconds float64
	}{
		{"Inhale", d.Inhale},
		{"Hold", d.Hold},
		{"Exhale", d.Exhale},
		{"Total cycle", d.Total()},
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render(row.label + ":"))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1fs", row.seconds)))
		b.WriteString("\n")
	}

	boxStyle := theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
