package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible bool
	theme   Theme
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{theme: theme}
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	m.visible = !m.visible
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		// Any key closes help
		m.visible = false
	}
	return m, nil
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(m.theme.Primary).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Breathe Help"))
	b.WriteString("\n\n")

	sectionStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Secondary)
	keyStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Width(12)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	b.WriteString(sectionStyle.Render("SETTINGS") + "\n")
	settings := []struct{ key, desc string }{
		{"Tab/↑↓", "Move between fields"},
		{"Enter", "Confirm field / start breathing"},
		{"p", "Open preset picker"},
	}
	for _, s := range settings {
		b.WriteString("  " + keyStyle.Render(s.key) + descStyle.Render(s.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("WHILE BREATHING") + "\n")
	running := []struct{ key, desc string }{
		{"s/Space", "Stop the session"},
		{"q", "Stop and quit"},
	}
	for _, r := range running {
		b.WriteString("  " + keyStyle.Render(r.key) + descStyle.Render(r.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("AFTER A SESSION") + "\n")
	after := []struct{ key, desc string }{
		{"y", "Copy session summary"},
		{"Enter", "Back to settings"},
	}
	for _, a := range after {
		b.WriteString("  " + keyStyle.Render(a.key) + descStyle.Render(a.desc) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("ANYWHERE") + "\n")
	anywhere := []struct{ key, desc string }{
		{"?", "Toggle this help"},
		{"Ctrl+C", "Quit"},
	}
	for _, v := range anywhere {
		b.WriteString("  " + keyStyle.Render(v.key) + descStyle.Render(v.desc) + "\n")
	}

	b.WriteString("\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
