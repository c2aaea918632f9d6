package canvas

import (
	"strings"
	"testing"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/shape"
)

func render(t *testing.T, progress float64, style breath.Style) shape.Geometry {
	t.Helper()
	g, err := shape.Render(progress, style, breath.PhaseInhale)
	if err != nil {
		t.Fatalf("shape.Render error: %v", err)
	}
	return g
}

func countFill(lines []string) int {
	n := 0
	for _, line := range lines {
		n += strings.Count(line, string(fillRune))
	}
	return n
}

func TestDrawDimensions(t *testing.T) {
	c := New(40, 20)
	lines := c.Draw(render(t, 0.5, breath.StyleCircle))
	if len(lines) != 20 {
		t.Fatalf("got %d rows, want 20", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 40 {
			t.Fatalf("row %d has %d cells, want 40", i, len([]rune(line)))
		}
	}
}

func TestCircleGrowsWithProgress(t *testing.T) {
	c := New(40, 20)
	prev := -1
	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		filled := countFill(c.Draw(render(t, p, breath.StyleCircle)))
		if filled <= prev {
			t.Fatalf("fill count did not grow: %d at progress %v (prev %d)", filled, p, prev)
		}
		prev = filled
	}
}

func TestCircleReferenceRing(t *testing.T) {
	c := New(40, 20)
	lines := c.Draw(render(t, 0, breath.StyleCircle))
	joined := strings.Join(lines, "")
	if !strings.ContainsRune(joined, ringRune) {
		t.Error("reference ring missing at minimum progress")
	}
}

func TestLungFlatAtZero(t *testing.T) {
	c := New(40, 20)
	lines := c.Draw(render(t, 0, breath.StyleLung))
	// A collapsed lung is at most a single filled row at the midline.
	rowsWithFill := 0
	for _, line := range lines {
		if strings.ContainsRune(line, fillRune) {
			rowsWithFill++
		}
	}
	if rowsWithFill > 1 {
		t.Errorf("collapsed lung spans %d rows, want at most 1", rowsWithFill)
	}

	full := countFill(c.Draw(render(t, 1, breath.StyleLung)))
	empty := countFill(lines)
	if full <= empty {
		t.Errorf("full lung (%d cells) should out-fill a collapsed one (%d)", full, empty)
	}
}

func TestWaveStaysInBounds(t *testing.T) {
	c := New(60, 20)
	lines := c.Draw(render(t, 1, breath.StyleWave))
	if countFill(lines) == 0 {
		t.Fatal("wave drew nothing at full progress")
	}
	// At progress 0 the wave collapses toward the baseline.
	flat := countFill(c.Draw(render(t, 0, breath.StyleWave)))
	if flat >= countFill(lines) {
		t.Errorf("flat wave fill (%d) should be below full wave fill", flat)
	}
}

func TestMinimumSize(t *testing.T) {
	c := New(0, -3)
	if c.Width() < 2 || c.Height() < 2 {
		t.Fatalf("canvas %dx%d below minimum", c.Width(), c.Height())
	}
	// Must not panic on a tiny grid.
	_ = c.Draw(render(t, 1, breath.StyleCircle))
}

func TestCenterLabel(t *testing.T) {
	got := CenterLabel("50%", 11)
	if got != "    50%" {
		t.Errorf("CenterLabel = %q, want 4 leading spaces", got)
	}
	if CenterLabel("progress", 3) != "progress" {
		t.Error("labels wider than the canvas pass through unchanged")
	}
}
