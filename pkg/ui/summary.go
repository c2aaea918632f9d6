package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvello/breathe/pkg/pacer"
)

// renderSummary draws the post-session panel.
func renderSummary(theme Theme, s pacer.Summary) string {
	titleStyle := theme.Renderer.NewStyle().Bold(true).Foreground(theme.Primary)
	labelStyle := theme.Renderer.NewStyle().Foreground(theme.Muted)
	valueStyle := theme.Renderer.NewStyle().Foreground(theme.Text)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	rows := []string{
		titleStyle.Render("Session complete"),
		"",
		row("Duration", formatElapsed(s)),
		row("Cycles", fmt.Sprintf("%d", s.Cycles)),
		row("Pace", fmt.Sprintf("%d breaths/min", s.Config.BreathsPerMinute)),
		row("Pattern", fmt.Sprintf("%d/%d/%d (%s)",
			s.Config.InhalePercent, s.Config.HoldPercent, s.Config.ExhalePercent,
			s.Config.Style)),
	}
	if s.Adjustment != nil {
		rows = append(rows, theme.Renderer.NewStyle().Foreground(theme.Warning).Render(s.Adjustment.String()))
	}
	if s.Err != nil {
		rows = append(rows, row("Ended early", s.Err.Error()))
	}

	panel := theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2)
	return panel.Render(strings.Join(rows, "\n"))
}

// summaryText is the plain-text form used for the clipboard.
func summaryText(s pacer.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Breathing session: %s, %d cycles\n", formatElapsed(s), s.Cycles)
	fmt.Fprintf(&b, "Pace: %d breaths/min, inhale/hold/exhale %d/%d/%d, %s\n",
		s.Config.BreathsPerMinute,
		s.Config.InhalePercent, s.Config.HoldPercent, s.Config.ExhalePercent,
		s.Config.Style)
	if s.Err != nil {
		fmt.Fprintf(&b, "Ended early: %v\n", s.Err)
	}
	return b.String()
}

func formatElapsed(s pacer.Summary) string {
	e := s.Elapsed()
	mins := int(e.Minutes())
	secs := int(e.Seconds()) % 60
	if mins == 0 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", mins, secs)
}

// copySummary puts the plain-text summary on the system clipboard and
// returns a status line for the footer.
func (m Model) copySummary() string {
	if m.summary == nil {
		return ""
	}
	if err := clipboard.WriteAll(summaryText(*m.summary)); err != nil {
		return fmt.Sprintf("clipboard unavailable: %v", err)
	}
	return "summary copied to clipboard"
}
