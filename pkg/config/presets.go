// Package config loads named breathing presets: a built-in set plus an
// optional user YAML file that can add to or override the built-ins.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mvello/breathe/pkg/breath"
)

// Preset is a named breathing pattern the user can apply in one keystroke.
type Preset struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Config      breath.Config `yaml:",inline"`
}

// Validate checks the preset's name and embedded config.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}

// BuiltinPresets returns the presets shipped with the app.
func BuiltinPresets() []Preset {
	return []Preset{
		{
			Name:        "Relaxed",
			Description: "Six breaths per minute with a short hold at the top",
			Config:      breath.DefaultConfig(),
		},
		{
			Name:        "Coherent",
			Description: "Five even breaths per minute, no hold",
			Config: breath.Config{
				BreathsPerMinute: 5,
				InhalePercent:    50,
				ExhalePercent:    50,
				HoldPercent:      0,
				Style:            breath.StyleWave,
			},
		},
		{
			Name:        "Deep Calm",
			Description: "Four slow breaths per minute, long exhale",
			Config: breath.Config{
				BreathsPerMinute: 4,
				InhalePercent:    30,
				ExhalePercent:    50,
				HoldPercent:      20,
				Style:            breath.StyleLung,
			},
		},
		{
			Name:        "Wind Down",
			Description: "Long hold and longer exhale for settling in",
			Config: breath.Config{
				BreathsPerMinute: 3,
				InhalePercent:    25,
				ExhalePercent:    45,
				HoldPercent:      30,
				Style:            breath.StyleCircle,
			},
		},
	}
}

// presetFile is the YAML document shape for a user preset file.
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// DefaultPath returns the user preset file location, typically
// ~/.config/breathe/presets.yaml.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config directory: %w", err)
	}
	return filepath.Join(base, "breathe", "presets.yaml"), nil
}

// LoadFile reads presets from a YAML file. Presets that fail validation are
// skipped and reported in the returned warnings rather than aborting the
// load; the rest of the file still applies.
func LoadFile(path string) (presets []Preset, warnings []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read preset file: %w", err)
	}

	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse preset file %s: %w", path, err)
	}

	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		presets = append(presets, p)
	}
	return presets, warnings, nil
}

// Load returns the built-in presets merged with the user file at path, if
// one exists. User presets with a built-in's name override it; a missing
// file is not an error.
func Load(path string) (presets []Preset, warnings []string, err error) {
	presets = BuiltinPresets()
	if path == "" {
		return presets, nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return presets, nil, nil
	}

	user, warnings, err := LoadFile(path)
	if err != nil {
		return nil, warnings, err
	}
	return merge(presets, user), warnings, nil
}

func merge(base, override []Preset) []Preset {
	index := make(map[string]int, len(base))
	for i, p := range base {
		index[p.Name] = i
	}
	for _, p := range override {
		if i, ok := index[p.Name]; ok {
			base[i] = p
			continue
		}
		index[p.Name] = len(base)
		base = append(base, p)
	}
	return base
}

// Find returns the preset with the given name, case-sensitively.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
