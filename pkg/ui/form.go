package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/mvello/breathe/pkg/breath"
)

// formValues holds the string-typed bindings behind the settings form.
// huh edits these in place; Config() parses them back into the domain type.
type formValues struct {
	bpm    string
	inhale string
	exhale string
	hold   string
	style  string
}

func valuesFromConfig(cfg breath.Config) *formValues {
	return &formValues{
		bpm:    strconv.Itoa(cfg.BreathsPerMinute),
		inhale: strconv.Itoa(cfg.InhalePercent),
		exhale: strconv.Itoa(cfg.ExhalePercent),
		hold:   strconv.Itoa(cfg.HoldPercent),
		style:  string(cfg.Style),
	}
}

// Config parses the form values. The per-field validators make this
// infallible for a completed form, but stale or hand-set values still get
// range-checked here.
func (v *formValues) Config() (breath.Config, error) {
	bpm, err := strconv.Atoi(v.bpm)
	if err != nil {
		return breath.Config{}, fmt.Errorf("breaths per minute: %w", err)
	}
	inhale, err := strconv.Atoi(v.inhale)
	if err != nil {
		return breath.Config{}, fmt.Errorf("inhale percent: %w", err)
	}
	exhale, err := strconv.Atoi(v.exhale)
	if err != nil {
		return breath.Config{}, fmt.Errorf("exhale percent: %w", err)
	}
	hold, err := strconv.Atoi(v.hold)
	if err != nil {
		return breath.Config{}, fmt.Errorf("hold percent: %w", err)
	}

	cfg := breath.Config{
		BreathsPerMinute: bpm,
		InhalePercent:    inhale,
		ExhalePercent:    exhale,
		HoldPercent:      hold,
		Style:            breath.Style(v.style),
	}
	if err := cfg.Validate(); err != nil {
		return breath.Config{}, err
	}
	return cfg, nil
}

func intInRange(name string, min, max int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s must be a whole number", name)
		}
		if n < min || n > max {
			return fmt.Errorf("%s must be between %d and %d", name, min, max)
		}
		return nil
	}
}

// buildSettingsForm creates the settings form pre-filled from cfg.
// Completing the form starts a session.
func buildSettingsForm(cfg breath.Config) (*huh.Form, *formValues) {
	v := valuesFromConfig(cfg)

	styleOptions := make([]huh.Option[string], 0, len(breath.Styles()))
	for _, s := range breath.Styles() {
		styleOptions = append(styleOptions, huh.NewOption(string(s), string(s)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Breaths per minute").
				Description("Complete breath cycles per minute (1-30).").
				Key("bpm").
				Validate(intInRange("breaths per minute", breath.MinBreathsPerMinute, breath.MaxBreathsPerMinute)).
				Value(&v.bpm),
			huh.NewInput().
				Title("Inhale %").
				Description("Share of the cycle spent breathing in (10-80).").
				Key("inhale").
				Validate(intInRange("inhale percent", breath.MinActivePercent, breath.MaxPhasePercent)).
				Value(&v.inhale),
			huh.NewInput().
				Title("Exhale %").
				Description("Share of the cycle spent breathing out (10-80).").
				Key("exhale").
				Validate(intInRange("exhale percent", breath.MinActivePercent, breath.MaxPhasePercent)).
				Value(&v.exhale),
			huh.NewInput().
				Title("Hold %").
				Description("Pause at the top of the breath (0-80, 0 to skip).").
				Key("hold").
				Validate(intInRange("hold percent", breath.MinHoldPercent, breath.MaxPhasePercent)).
				Value(&v.hold),
			huh.NewSelect[string]().
				Title("Visualization").
				Description("Shape that expands and contracts with your breath.").
				Key("style").
				Options(styleOptions...).
				Value(&v.style),
		),
	)
	return form, v
}
