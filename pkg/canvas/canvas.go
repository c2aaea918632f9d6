// Package canvas rasterizes shape geometry into terminal character rows.
// It knows nothing about color; the UI layer tints the result per phase.
package canvas

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mvello/breathe/pkg/shape"
)

// Terminal cells are about twice as tall as wide, so callers size the
// canvas at two columns per row to keep circles round; cellAspect feeds
// the ring tolerance so the dashed anchor stays thin either way.
const (
	fillRune  = '█'
	ringRune  = '·'
	blankRune = ' '

	// cellAspect is the assumed width:height ratio of one terminal cell.
	cellAspect = 0.5
)

// Canvas rasterizes geometry into a fixed-size grid.
type Canvas struct {
	width  int
	height int
}

// New creates a canvas of the given size in cells. Sizes below 2x2 are
// bumped so there is always something to draw into.
func New(width, height int) Canvas {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	return Canvas{width: width, height: height}
}

// Width returns the canvas width in cells.
func (c Canvas) Width() int { return c.width }

// Height returns the canvas height in cells.
func (c Canvas) Height() int { return c.height }

// Draw renders the geometry into height rows of width cells each.
func (c Canvas) Draw(g shape.Geometry) []string {
	grid := make([][]rune, c.height)
	for row := range grid {
		grid[row] = make([]rune, c.width)
		for col := range grid[row] {
			grid[row][col] = blankRune
		}
	}

	switch {
	case g.Radius > 0:
		c.drawCircle(grid, g)
	case len(g.Upper) > 0:
		c.drawLung(grid, g)
	case len(g.Curve) > 0:
		c.drawWave(grid, g)
	}

	lines := make([]string, c.height)
	for row := range grid {
		lines[row] = string(grid[row])
	}
	return lines
}

// cellCenter maps a cell to normalized coordinates with y up.
func (c Canvas) cellCenter(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) / float64(c.width)
	y = 1 - (float64(row)+0.5)/float64(c.height)
	return x, y
}

func (c Canvas) drawCircle(grid [][]rune, g shape.Geometry) {
	// Ring tolerance of roughly one cell so the dashed anchor stays a thin,
	// unbroken-looking circle at any canvas size.
	tol := math.Max(1/float64(c.width), cellAspect/float64(c.height))

	for row := range grid {
		for col := range grid[row] {
			x, y := c.cellCenter(col, row)
			dist := math.Hypot(x-0.5, y-0.5)
			switch {
			case dist <= g.Radius:
				grid[row][col] = fillRune
			case math.Abs(dist-g.Reference) <= tol && (col+row)%2 == 0:
				grid[row][col] = ringRune
			}
		}
	}
}

func (c Canvas) drawLung(grid [][]rune, g shape.Geometry) {
	for col := 0; col < c.width; col++ {
		x := (float64(col) + 0.5) / float64(c.width)
		upper := sampleY(g.Upper, x/g.XMax)
		lower := sampleY(g.Lower, x/g.XMax)
		for row := 0; row < c.height; row++ {
			_, y := c.cellCenter(col, row)
			if y >= lower && y <= upper {
				grid[row][col] = fillRune
			}
		}
	}
}

func (c Canvas) drawWave(grid [][]rune, g shape.Geometry) {
	for col := 0; col < c.width; col++ {
		x := (float64(col) + 0.5) / float64(c.width)
		curve := sampleY(g.Curve, x)
		lo, hi := math.Min(curve, shape.Baseline), math.Max(curve, shape.Baseline)
		for row := 0; row < c.height; row++ {
			_, y := c.cellCenter(col, row)
			if y >= lo && y <= hi {
				grid[row][col] = fillRune
			}
		}
	}
}

// sampleY looks up the curve height at a normalized position in [0,1] by
// nearest sample. The curves are dense enough (100 samples) that nearest
// neighbor is indistinguishable from interpolation at terminal resolution.
func sampleY(points []shape.Point, t float64) float64 {
	if len(points) == 0 {
		return shape.Baseline
	}
	i := int(math.Round(t * float64(len(points)-1)))
	if i < 0 {
		i = 0
	}
	if i >= len(points) {
		i = len(points) - 1
	}
	return points[i].Y
}

// CenterLabel pads the label so it sits centered under a canvas of the
// given width, accounting for wide runes.
func CenterLabel(label string, width int) string {
	w := runewidth.StringWidth(label)
	if w >= width {
		return label
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + label
}
