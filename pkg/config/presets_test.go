package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvello/breathe/pkg/breath"
)

func TestBuiltinPresetsAreValid(t *testing.T) {
	presets := BuiltinPresets()
	if len(presets) == 0 {
		t.Fatal("no built-in presets")
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			t.Errorf("built-in preset %q invalid: %v", p.Name, err)
		}
	}
}

func writePresetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write preset file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writePresetFile(t, `
presets:
  - name: Morning
    description: quick wake-up pattern
    breaths_per_minute: 10
    inhale_percent: 40
    exhale_percent: 40
    hold_percent: 20
    style: Wave
`)
	presets, warnings, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(presets) != 1 {
		t.Fatalf("loaded %d presets, want 1", len(presets))
	}
	p := presets[0]
	if p.Name != "Morning" || p.Config.BreathsPerMinute != 10 || p.Config.Style != breath.StyleWave {
		t.Errorf("loaded preset = %+v", p)
	}
}

func TestLoadFileSkipsInvalidPresets(t *testing.T) {
	path := writePresetFile(t, `
presets:
  - name: Good
    breaths_per_minute: 6
    inhale_percent: 40
    exhale_percent: 40
    hold_percent: 20
    style: Circle
  - name: TooFast
    breaths_per_minute: 99
    inhale_percent: 40
    exhale_percent: 40
    hold_percent: 20
    style: Circle
`)
	presets, warnings, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if len(presets) != 1 || presets[0].Name != "Good" {
		t.Errorf("presets = %+v, want only Good", presets)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one for TooFast", warnings)
	}
}

func TestLoadFileRejectsBadYAML(t *testing.T) {
	path := writePresetFile(t, "presets: [not: {valid")
	if _, _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadMergesAndOverrides(t *testing.T) {
	path := writePresetFile(t, `
presets:
  - name: Relaxed
    breaths_per_minute: 8
    inhale_percent: 40
    exhale_percent: 40
    hold_percent: 20
    style: Lung
  - name: Custom
    breaths_per_minute: 12
    inhale_percent: 50
    exhale_percent: 40
    hold_percent: 10
    style: Circle
`)
	presets, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	relaxed, ok := Find(presets, "Relaxed")
	if !ok {
		t.Fatal("Relaxed preset missing")
	}
	if relaxed.Config.BreathsPerMinute != 8 || relaxed.Config.Style != breath.StyleLung {
		t.Errorf("user override not applied: %+v", relaxed)
	}
	if _, ok := Find(presets, "Custom"); !ok {
		t.Error("user preset Custom missing")
	}
	if _, ok := Find(presets, "Coherent"); !ok {
		t.Error("built-in Coherent should survive the merge")
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	presets, warnings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(presets) != len(BuiltinPresets()) {
		t.Errorf("got %d presets, want the %d built-ins", len(presets), len(BuiltinPresets()))
	}
}

func TestFind(t *testing.T) {
	presets := BuiltinPresets()
	if _, ok := Find(presets, "Relaxed"); !ok {
		t.Error("Find should locate Relaxed")
	}
	if _, ok := Find(presets, "relaxed"); ok {
		t.Error("Find is case-sensitive")
	}
}
