package shape

import (
	"math"
	"testing"

	"github.com/mvello/breathe/pkg/breath"
)

func TestCircleRadius(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 0.05},
		{0.5, 0.25},
		{1, 0.45},
	}
	for _, tt := range tests {
		g, err := Render(tt.progress, breath.StyleCircle, breath.PhaseInhale)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if math.Abs(g.Radius-tt.want) > 1e-12 {
			t.Errorf("radius at progress %v = %v, want %v", tt.progress, g.Radius, tt.want)
		}
		if g.Reference != ReferenceRadius {
			t.Errorf("reference ring = %v, want %v", g.Reference, ReferenceRadius)
		}
	}
}

func TestLungCollapsesAtZero(t *testing.T) {
	g, err := Render(0, breath.StyleLung, breath.PhaseExhale)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(g.Upper) != CurveSamples || len(g.Lower) != CurveSamples {
		t.Fatalf("sample counts = %d/%d, want %d", len(g.Upper), len(g.Lower), CurveSamples)
	}
	for i := range g.Upper {
		if g.Upper[i].Y != Baseline || g.Lower[i].Y != Baseline {
			t.Fatalf("lung at progress 0 should be a flat line at the baseline, got %v/%v",
				g.Upper[i].Y, g.Lower[i].Y)
		}
	}
}

func TestLungAmplitudeScales(t *testing.T) {
	g, err := Render(1, breath.StyleLung, breath.PhaseInhale)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	// Peak of sin(pi*x) is at x=0.5, the middle sample region.
	var maxY float64
	for _, p := range g.Upper {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if math.Abs(maxY-(Baseline+LungAmplitude)) > 1e-3 {
		t.Errorf("peak upper y = %v, want about %v", maxY, Baseline+LungAmplitude)
	}
	// Curves are mirrored around the baseline.
	for i := range g.Upper {
		up := g.Upper[i].Y - Baseline
		down := Baseline - g.Lower[i].Y
		if math.Abs(up-down) > 1e-12 {
			t.Fatalf("sample %d not mirrored: +%v vs -%v", i, up, down)
		}
	}
}

func TestWaveGeometry(t *testing.T) {
	g, err := Render(0.5, breath.StyleWave, breath.PhaseInhale)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if g.XMax != 2*math.Pi {
		t.Errorf("wave XMax = %v, want 2*pi", g.XMax)
	}
	if len(g.Curve) != CurveSamples {
		t.Fatalf("sample count = %d, want %d", len(g.Curve), CurveSamples)
	}
	if first := g.Curve[0]; first.X != 0 || math.Abs(first.Y-Baseline) > 1e-12 {
		t.Errorf("wave start = %+v, want (0, baseline)", first)
	}
	if last := g.Curve[len(g.Curve)-1]; math.Abs(last.X-2*math.Pi) > 1e-12 {
		t.Errorf("wave end x = %v, want 2*pi", last.X)
	}
	// Amplitude is 0.4 * progress.
	var maxDev float64
	for _, p := range g.Curve {
		if dev := math.Abs(p.Y - Baseline); dev > maxDev {
			maxDev = dev
		}
	}
	if math.Abs(maxDev-0.2) > 1e-3 {
		t.Errorf("max deviation = %v, want about 0.2 at progress 0.5", maxDev)
	}
}

func TestLabelRounds(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "0%"},
		{0.5, "50%"},
		{0.666, "67%"},
		{1, "100%"},
	}
	for _, tt := range tests {
		g, err := Render(tt.progress, breath.StyleCircle, breath.PhaseInhale)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		if g.Label != tt.want {
			t.Errorf("label at %v = %q, want %q", tt.progress, g.Label, tt.want)
		}
	}
}

func TestProgressClamped(t *testing.T) {
	g, err := Render(1.7, breath.StyleCircle, breath.PhaseInhale)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if g.Radius != CircleMinRadius+CircleRadiusRange {
		t.Errorf("radius at clamped progress = %v, want max", g.Radius)
	}
	g, err = Render(-3, breath.StyleCircle, breath.PhaseExhale)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if g.Radius != CircleMinRadius {
		t.Errorf("radius at clamped progress = %v, want min", g.Radius)
	}
}

func TestUnknownStyleFails(t *testing.T) {
	if _, err := Render(0.5, "Hexagon", breath.PhaseInhale); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestPhaseDoesNotAlterGeometry(t *testing.T) {
	for _, style := range breath.Styles() {
		in, err := Render(0.3, style, breath.PhaseInhale)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		ex, err := Render(0.3, style, breath.PhaseExhale)
		if err != nil {
			t.Fatalf("Render error: %v", err)
		}
		in.Phase = ex.Phase
		if in.Radius != ex.Radius || len(in.Curve) != len(ex.Curve) || len(in.Upper) != len(ex.Upper) {
			t.Errorf("style %s: phase changed geometry", style)
		}
	}
}
