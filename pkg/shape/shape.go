// Package shape maps a breathing frame to drawable geometry. Everything
// here is pure: no state, no I/O, no notion of pixels or cells. Renderers
// (terminal canvas, PNG, SVG) scale the normalized coordinates themselves.
package shape

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mvello/breathe/pkg/breath"
)

// Geometry constants, in normalized [0,1] coordinates unless noted.
const (
	// Circle: radius fraction grows from 0.05 at empty to 0.45 at full,
	// so the diameter spans 10% to 90% of the reference frame.
	CircleMinRadius   = 0.05
	CircleRadiusRange = 0.40

	// Static dashed anchor ring behind the breathing circle.
	ReferenceRadius = 0.45

	// Lung: mirrored sine arcs around the midline.
	LungAmplitude = 0.2

	// Wave: sine over one full period, x in [0, 2*pi].
	WaveAmplitude = 0.4

	// Baseline is the vertical midline all styles breathe around.
	Baseline = 0.5

	// CurveSamples is how many points each curve is sampled at.
	CurveSamples = 100
)

// Point is a position in the shape's own coordinate space: y in [0,1],
// x in [0,1] for circle and lung, [0, 2*pi] for wave.
type Point struct {
	X, Y float64
}

// Geometry is one drawable frame. Exactly one of the style-specific parts
// is populated, selected by Style.
type Geometry struct {
	Style    breath.Style
	Phase    breath.Phase // advisory tint only; never alters the shape
	Progress float64
	Label    string  // centered percent text, e.g. "50%"
	XMax     float64 // width of the coordinate space (1 or 2*pi)

	// Circle style.
	Radius    float64
	Reference float64

	// Lung style: mirrored arcs, filled between.
	Upper, Lower []Point

	// Wave style: single curve, filled to the baseline.
	Curve []Point
}

// Render produces the geometry for one frame. Progress outside [0,1] is
// clamped; an unknown style is a render failure and returns an error.
func Render(progress float64, style breath.Style, phase breath.Phase) (Geometry, error) {
	progress = clamp(progress)

	g := Geometry{
		Style:    style,
		Phase:    phase,
		Progress: progress,
		Label:    fmt.Sprintf("%d%%", int(math.Round(progress*100))),
		XMax:     1,
	}

	switch style {
	case breath.StyleCircle:
		g.Radius = CircleMinRadius + progress*CircleRadiusRange
		g.Reference = ReferenceRadius

	case breath.StyleLung:
		xs := span(0, 1)
		g.Upper = make([]Point, len(xs))
		g.Lower = make([]Point, len(xs))
		for i, x := range xs {
			arc := LungAmplitude * math.Sin(math.Pi*x) * progress
			g.Upper[i] = Point{X: x, Y: Baseline + arc}
			g.Lower[i] = Point{X: x, Y: Baseline - arc}
		}

	case breath.StyleWave:
		g.XMax = 2 * math.Pi
		xs := span(0, 2*math.Pi)
		amplitude := WaveAmplitude * progress
		g.Curve = make([]Point, len(xs))
		for i, x := range xs {
			g.Curve[i] = Point{X: x, Y: Baseline + amplitude*math.Sin(x)}
		}

	default:
		return Geometry{}, fmt.Errorf("unknown visualization style: %q", style)
	}

	return g, nil
}

func span(from, to float64) []float64 {
	return floats.Span(make([]float64, CurveSamples), from, to)
}

func clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
