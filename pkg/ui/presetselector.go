package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mvello/breathe/pkg/config"
)

// PresetSelectorModel is the overlay for picking a named breathing preset,
// with fuzzy filtering as you type.
type PresetSelectorModel struct {
	input    textinput.Model
	presets  []config.Preset
	filtered []int // indices into presets, in display order
	cursor   int
	visible  bool
	theme    Theme
	width    int
}

// NewPresetSelector creates a hidden selector over the given presets.
func NewPresetSelector(presets []config.Preset, theme Theme) PresetSelectorModel {
	input := textinput.New()
	input.Placeholder = "type to filter presets"
	input.Prompt = "/ "
	input.CharLimit = 40

	m := PresetSelectorModel{
		input:   input,
		theme:   theme,
		presets: presets,
	}
	m.refilter()
	return m
}

// Show opens the overlay with a cleared filter.
func (m *PresetSelectorModel) Show() {
	m.visible = true
	m.cursor = 0
	m.input.SetValue("")
	m.input.Focus()
	m.refilter()
}

// Hide closes the overlay.
func (m *PresetSelectorModel) Hide() {
	m.visible = false
	m.input.Blur()
}

// IsVisible returns true if the overlay is showing.
func (m PresetSelectorModel) IsVisible() bool { return m.visible }

// SetPresets replaces the preset list, e.g. after a hot reload.
func (m *PresetSelectorModel) SetPresets(presets []config.Preset) {
	m.presets = presets
	m.cursor = 0
	m.refilter()
}

// SetWidth sets the rendered overlay width.
func (m *PresetSelectorModel) SetWidth(width int) { m.width = width }

func (m *PresetSelectorModel) refilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.filtered = make([]int, len(m.presets))
		for i := range m.presets {
			m.filtered[i] = i
		}
		return
	}

	names := make([]string, len(m.presets))
	for i, p := range m.presets {
		names[i] = p.Name
	}
	matches := fuzzy.Find(query, names)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

// Update handles input while visible. A non-nil preset is returned when
// the user confirms a choice; the overlay hides itself on both confirm
// and escape.
func (m PresetSelectorModel) Update(msg tea.Msg) (PresetSelectorModel, *config.Preset, tea.Cmd) {
	if !m.visible {
		return m, nil, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Hide()
			return m, nil, nil
		case "enter":
			if len(m.filtered) > 0 {
				chosen := m.presets[m.filtered[m.cursor]]
				m.Hide()
				return m, &chosen, nil
			}
			return m, nil, nil
		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil, nil
		case "down", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refilter()
	return m, nil, cmd
}

// View renders the overlay box.
func (m PresetSelectorModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)
	b.WriteString(titleStyle.Render("Presets"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	nameStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Text)
	descStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)
	selectedStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)

	if len(m.filtered) == 0 {
		b.WriteString(descStyle.Render("no matching presets"))
	}
	for i, idx := range m.filtered {
		p := m.presets[idx]
		marker := "  "
		style := nameStyle
		if i == m.cursor {
			marker = "> "
			style = selectedStyle
		}
		line := fmt.Sprintf("%s%s", marker, style.Render(p.Name))
		detail := fmt.Sprintf("  %d bpm, %d/%d/%d, %s",
			p.Config.BreathsPerMinute, p.Config.InhalePercent,
			p.Config.HoldPercent, p.Config.ExhalePercent, p.Config.Style)
		b.WriteString(line + descStyle.Render(detail) + "\n")
		if p.Description != "" && i == m.cursor {
			b.WriteString(descStyle.Render("    "+p.Description) + "\n")
		}
	}

	b.WriteString("\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[enter apply · esc close]"))

	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)
	if m.width > 0 {
		boxStyle = boxStyle.Width(min(m.width-2, 64))
	}
	return boxStyle.Render(b.String())
}
