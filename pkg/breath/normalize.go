package breath

import (
	"fmt"
	"math"
)

// Adjustment describes how Normalize changed a percentage triple that did
// not sum to 100. It is a user-facing warning, not an error: the session
// proceeds with the adjusted values.
type Adjustment struct {
	OriginalSum int
	Inhale      int // adjusted values
	Exhale      int
	Hold        int
	HoldClamped bool // hold would have gone negative and was clamped to zero
}

// String renders the adjustment notice shown to the user.
func (a Adjustment) String() string {
	s := fmt.Sprintf("Percentages sum to %d%%. Adjusted to: Inhale %d%%, Exhale %d%%, Hold %d%%",
		a.OriginalSum, a.Inhale, a.Exhale, a.Hold)
	if a.HoldClamped {
		s += " (hold clamped to 0)"
	}
	return s
}

// Normalize scales a percentage triple so it sums to exactly 100. Triples
// that already sum to 100 pass through unchanged with a nil Adjustment.
// Otherwise inhale and exhale are scaled and floored, and hold absorbs all
// rounding slack. If that slack would drive hold below zero the remainder
// goes back to exhale instead, and the Adjustment records the clamp.
//
// A zero or negative sum is a precondition violation: validated input
// always sums to at least 20 (inhale and exhale are each bounded >= 10).
func Normalize(inhale, exhale, hold int) (int, int, int, *Adjustment) {
	sum := inhale + exhale + hold
	if sum == 100 {
		return inhale, exhale, hold, nil
	}

	scale := 100.0 / float64(sum)
	ni := int(math.Floor(float64(inhale) * scale))
	ne := int(math.Floor(float64(exhale) * scale))
	nh := 100 - ni - ne

	adj := &Adjustment{OriginalSum: sum}
	if nh < 0 {
		ne += nh
		nh = 0
		adj.HoldClamped = true
	}
	adj.Inhale, adj.Exhale, adj.Hold = ni, ne, nh
	return ni, ne, nh, adj
}

// ToDurations converts a normalized percentage triple into per-phase
// wall-clock seconds for the given breathing rate.
func ToDurations(inhale, exhale, hold, breathsPerMinute int) Durations {
	total := 60.0 / float64(breathsPerMinute)
	return Durations{
		Inhale: float64(inhale) / 100.0 * total,
		Exhale: float64(exhale) / 100.0 * total,
		Hold:   float64(hold) / 100.0 * total,
	}
}

// Plan validates a config, normalizes its percentages, and returns the
// phase durations the clock should run plus the adjustment notice, if any.
func Plan(c Config) (Durations, *Adjustment, error) {
	if err := c.Validate(); err != nil {
		return Durations{}, nil, err
	}
	ni, ne, nh, adj := Normalize(c.InhalePercent, c.ExhalePercent, c.HoldPercent)
	return ToDurations(ni, ne, nh, c.BreathsPerMinute), adj, nil
}
