// Package breath defines the breathing-cycle domain model: phases, styles,
// the user-facing configuration, and the derived per-phase durations.
package breath

import "fmt"

// Phase identifies one segment of a breath cycle
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
)

// IsValid returns true if the phase is a recognized value
func (p Phase) IsValid() bool {
	switch p {
	case PhaseInhale, PhaseHold, PhaseExhale:
		return true
	}
	return false
}

// Heading returns the display heading shown above the animation
func (p Phase) Heading() string {
	switch p {
	case PhaseInhale:
		return "Inhale"
	case PhaseHold:
		return "Hold"
	case PhaseExhale:
		return "Exhale"
	default:
		return ""
	}
}

// Style selects the visualization drawn for each frame
type Style string

const (
	StyleCircle Style = "Circle"
	StyleLung   Style = "Lung"
	StyleWave   Style = "Wave"
)

// Styles lists every style in display order
func Styles() []Style {
	return []Style{StyleCircle, StyleLung, StyleWave}
}

// IsValid returns true if the style is a recognized value
func (s Style) IsValid() bool {
	switch s {
	case StyleCircle, StyleLung, StyleWave:
		return true
	}
	return false
}

// Config holds the user-chosen breathing settings for one session.
// It is snapshotted when a session starts; edits made while a session is
// active only apply to the next session.
type Config struct {
	BreathsPerMinute int   `yaml:"breaths_per_minute"`
	InhalePercent    int   `yaml:"inhale_percent"`
	ExhalePercent    int   `yaml:"exhale_percent"`
	HoldPercent      int   `yaml:"hold_percent"`
	Style            Style `yaml:"style"`
}

// Percentage bounds enforced on user input. Hold may be zero (no pause at
// the top of the breath); inhale and exhale may not.
const (
	MinBreathsPerMinute = 1
	MaxBreathsPerMinute = 30
	MinActivePercent    = 10
	MinHoldPercent      = 0
	MaxPhasePercent     = 80
)

// DefaultConfig returns the starting configuration: six relaxed breaths per
// minute with a short hold at the top.
func DefaultConfig() Config {
	return Config{
		BreathsPerMinute: 6,
		InhalePercent:    40,
		ExhalePercent:    40,
		HoldPercent:      20,
		Style:            StyleCircle,
	}
}

// Validate checks that every field is inside its allowed range. Percentages
// that do not sum to 100 are not an error here; Normalize handles those.
func (c Config) Validate() error {
	if c.BreathsPerMinute < MinBreathsPerMinute || c.BreathsPerMinute > MaxBreathsPerMinute {
		return fmt.Errorf("breaths per minute must be between %d and %d, got %d",
			MinBreathsPerMinute, MaxBreathsPerMinute, c.BreathsPerMinute)
	}
	if c.InhalePercent < MinActivePercent || c.InhalePercent > MaxPhasePercent {
		return fmt.Errorf("inhale percent must be between %d and %d, got %d",
			MinActivePercent, MaxPhasePercent, c.InhalePercent)
	}
	if c.ExhalePercent < MinActivePercent || c.ExhalePercent > MaxPhasePercent {
		return fmt.Errorf("exhale percent must be between %d and %d, got %d",
			MinActivePercent, MaxPhasePercent, c.ExhalePercent)
	}
	if c.HoldPercent < MinHoldPercent || c.HoldPercent > MaxPhasePercent {
		return fmt.Errorf("hold percent must be between %d and %d, got %d",
			MinHoldPercent, MaxPhasePercent, c.HoldPercent)
	}
	if !c.Style.IsValid() {
		return fmt.Errorf("invalid style: %s", c.Style)
	}
	return nil
}

// CycleSeconds returns the wall-clock length of one full breath cycle.
func (c Config) CycleSeconds() float64 {
	return 60.0 / float64(c.BreathsPerMinute)
}

// Durations holds the wall-clock seconds assigned to each phase of a cycle.
type Durations struct {
	Inhale float64
	Hold   float64
	Exhale float64
}

// Total returns the summed cycle length in seconds.
func (d Durations) Total() float64 {
	return d.Inhale + d.Hold + d.Exhale
}

// Frame is one sample of the animation: where we are within the current
// phase. Frames are ephemeral; they are produced by the pacer clock and
// consumed immediately by a renderer.
type Frame struct {
	Progress float64 // 0..1 within the phase's visual range
	Phase    Phase
}
