package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/canvas"
	"github.com/mvello/breathe/pkg/config"
	"github.com/mvello/breathe/pkg/history"
	"github.com/mvello/breathe/pkg/pacer"
	"github.com/mvello/breathe/pkg/shape"
)

// mode is the top-level screen the model is showing.
type mode int

const (
	modeSettings mode = iota
	modeRunning
	modeSummary
)

// renderedFrame pairs a clock frame with its geometry. Geometry is produced
// on the session goroutine so a render failure surfaces through the clock
// as the run error rather than crashing the UI loop.
type renderedFrame struct {
	frame breath.Frame
	geo   shape.Geometry
}

type frameMsg renderedFrame

type sessionDoneMsg struct {
	summary pacer.Summary
}

// PresetsChangedMsg is sent from outside the program (the file watcher)
// when the preset file changes on disk.
type PresetsChangedMsg struct{}

type presetsLoadedMsg struct {
	presets  []config.Preset
	warnings []string
}

// Model is the root bubbletea model for the pacer.
type Model struct {
	theme  Theme
	mode   mode
	width  int
	height int

	presetPath string
	presets    []config.Preset

	form    *huh.Form
	vals    *formValues
	formErr string

	cfg        breath.Config
	durations  breath.Durations
	adjustment *breath.Adjustment

	session *pacer.Session
	frames  chan renderedFrame
	done    chan pacer.Summary
	current renderedFrame
	bar     progress.Model

	summary   *pacer.Summary
	statusMsg string

	hist *history.DB

	selector PresetSelectorModel
	help     HelpOverlayModel

	quitting bool
}

// NewModel creates the root model seeded with cfg. hist may be nil to
// disable the session log; presetPath may be empty when no preset file is
// in use.
func NewModel(cfg breath.Config, presets []config.Preset, presetPath string, hist *history.DB) Model {
	theme := DefaultTheme()
	form, vals := buildSettingsForm(cfg)

	m := Model{
		theme:      theme,
		mode:       modeSettings,
		presets:    presets,
		presetPath: presetPath,
		form:       form,
		vals:       vals,
		cfg:        cfg,
		session:    pacer.NewSession(),
		bar:        progress.New(progress.WithDefaultGradient()),
		hist:       hist,
		selector:   NewPresetSelector(presets, theme),
		help:       NewHelpOverlayModel(theme),
	}
	m.previewDurations()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// previewDurations recomputes the timing panel from the current config.
func (m *Model) previewDurations() {
	d, adj, err := breath.Plan(m.cfg)
	if err != nil {
		return
	}
	m.durations = d
	m.adjustment = adj
}

// resetForm rebuilds the settings form seeded from cfg. huh forms are
// single-use, so every return to settings needs a fresh one.
func (m *Model) resetForm(cfg breath.Config) tea.Cmd {
	m.cfg = cfg
	m.form, m.vals = buildSettingsForm(cfg)
	m.previewDurations()
	return m.form.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.bar.Width = min(msg.Width-8, 60)
		m.selector.SetWidth(msg.Width)

	case frameMsg:
		m.current = renderedFrame(msg)
		return m, waitForFrame(m.frames, m.done)

	case sessionDoneMsg:
		return m.finishSession(msg.summary)

	case PresetsChangedMsg:
		path := m.presetPath
		return m, func() tea.Msg {
			presets, warnings, err := config.Load(path)
			if err != nil {
				return presetsLoadedMsg{warnings: []string{err.Error()}}
			}
			return presetsLoadedMsg{presets: presets, warnings: warnings}
		}

	case presetsLoadedMsg:
		if msg.presets != nil {
			m.presets = msg.presets
			m.selector.SetPresets(msg.presets)
			m.statusMsg = "presets reloaded"
		}
		if len(msg.warnings) > 0 {
			m.statusMsg = strings.Join(msg.warnings, "; ")
		}
		return m, nil
	}

	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.selector.IsVisible() {
		selector, chosen, cmd := m.selector.Update(msg)
		m.selector = selector
		if chosen != nil {
			return m, m.resetForm(chosen.Config)
		}
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.session.Stop()
			m.quitting = true
			if m.mode == modeRunning {
				// Let the clock wind down so the session is recorded.
				return m, nil
			}
			return m, tea.Quit
		case "?":
			m.help.Toggle()
			return m, nil
		}
	}

	switch m.mode {
	case modeSettings:
		return m.updateSettings(msg)
	case modeRunning:
		return m.updateRunning(msg)
	case modeSummary:
		return m.updateSummary(msg)
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "p" {
		m.selector.Show()
		return m, nil
	}

	formModel, cmd := m.form.Update(msg)
	if f, ok := formModel.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		cfg, err := m.vals.Config()
		if err != nil {
			m.formErr = err.Error()
			return m, m.resetForm(m.cfg)
		}
		m.formErr = ""
		return m.startSession(cfg)
	case huh.StateAborted:
		return m, tea.Quit
	}
	return m, cmd
}

// startSession snapshots cfg into the session and spins up the clock
// goroutine. Frames arrive over an unbuffered channel, so the clock
// naturally paces the UI.
func (m Model) startSession(cfg breath.Config) (tea.Model, tea.Cmd) {
	adj, ok, err := m.session.Start(cfg)
	if err != nil {
		m.formErr = err.Error()
		return m, m.resetForm(m.cfg)
	}
	if !ok {
		return m, nil
	}

	m.cfg = cfg
	m.adjustment = adj
	m.durations = m.session.Durations()
	m.statusMsg = ""
	m.summary = nil
	m.current = renderedFrame{}

	frames := make(chan renderedFrame)
	done := make(chan pacer.Summary, 1)
	session := m.session
	style := cfg.Style
	go func() {
		summary, _ := session.Run(func(f breath.Frame) error {
			geo, err := shape.Render(f.Progress, style, f.Phase)
			if err != nil {
				return fmt.Errorf("render frame: %w", err)
			}
			frames <- renderedFrame{frame: f, geo: geo}
			return nil
		})
		close(frames)
		done <- summary
	}()

	m.frames, m.done = frames, done
	m.mode = modeRunning
	return m, waitForFrame(frames, done)
}

func waitForFrame(frames chan renderedFrame, done chan pacer.Summary) tea.Cmd {
	return func() tea.Msg {
		rf, ok := <-frames
		if !ok {
			return sessionDoneMsg{summary: <-done}
		}
		return frameMsg(rf)
	}
}

func (m Model) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "s", " ", "esc":
			m.session.Stop()
		case "q":
			m.session.Stop()
			m.quitting = true
		}
	}
	return m, nil
}

// finishSession records the run and moves to the summary screen (or quits,
// when the stop came from a quit key).
func (m Model) finishSession(summary pacer.Summary) (tea.Model, tea.Cmd) {
	m.summary = &summary
	m.frames, m.done = nil, nil

	if m.hist != nil {
		if _, err := m.hist.RecordSession(summary); err != nil {
			m.statusMsg = fmt.Sprintf("could not record session: %v", err)
		}
	}

	if m.quitting {
		return m, tea.Quit
	}
	m.mode = modeSummary
	return m, nil
}

func (m Model) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.mode = modeSettings
			return m, m.resetForm(m.cfg)
		case "q":
			return m, tea.Quit
		case "y":
			m.statusMsg = m.copySummary()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting && m.mode != modeRunning {
		return ""
	}

	var body string
	switch {
	case m.help.IsVisible():
		body = m.help.View()
	case m.selector.IsVisible():
		body = m.selector.View()
	case m.mode == modeRunning:
		body = m.viewRunning()
	case m.mode == modeSummary:
		body = m.viewSummary()
	default:
		body = m.viewSettings()
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) viewSettings() string {
	var b strings.Builder

	titleStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary)
	b.WriteString(titleStyle.Render("Breathe · paced breathing"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString("\n")
	b.WriteString(renderTimingPanel(m.theme, m.durations))
	b.WriteString("\n")

	warnStyle := m.theme.Renderer.NewStyle().Foreground(m.theme.Warning)
	if m.adjustment != nil {
		b.WriteString(warnStyle.Render(m.adjustment.String()))
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Danger).Render(m.formErr))
		b.WriteString("\n")
	}
	if m.statusMsg != "" {
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render(m.statusMsg))
		b.WriteString("\n")
	}

	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[p] presets · [?] help · complete the form to start"))
	return b.String()
}

func (m Model) viewRunning() string {
	heading := m.current.frame.Phase.Heading()
	if heading == "" {
		heading = "Get ready"
	}

	headingStyle := m.theme.Renderer.NewStyle().
		Bold(true).
		Foreground(PhaseColor(m.current.frame.Phase))
	shapeStyle := m.theme.Renderer.NewStyle().
		Foreground(PhaseColor(m.current.frame.Phase))

	cw, ch := m.canvasSize()
	c := canvas.New(cw, ch)
	lines := c.Draw(m.current.geo)

	var b strings.Builder
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(shapeStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(canvas.CenterLabel(m.current.geo.Label, cw))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.current.frame.Progress))
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[s] stop · [q] stop and quit"))
	return b.String()
}

// canvasSize picks a canvas roughly two columns per row so circles look
// round, leaving space for the heading, bar, and hints.
func (m Model) canvasSize() (w, h int) {
	w = min(max(m.width-8, 20), 72)
	h = w / 2
	if m.height > 0 {
		h = min(h, max(m.height-10, 6))
	}
	return w, h
}

func (m Model) viewSummary() string {
	if m.summary == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(renderSummary(m.theme, *m.summary))
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).Render(m.statusMsg))
	}
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true)
	b.WriteString(hintStyle.Render("[enter] settings · [y] copy summary · [q] quit"))
	return b.String()
}
