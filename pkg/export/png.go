// Package export writes frame snapshots of the breathing animation as PNG
// or SVG images, and can fan a whole cycle's frames out to disk.
package export

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/shape"
)

// Default raster snapshot size, matching the original 8x6 figure shape.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

type rgb struct{ r, g, b float64 }

// Fill and stroke colors per style, with the advisory phase tint used only
// for the heading text.
var (
	colSkyBlue    = rgb{0.53, 0.81, 0.92}
	colLightGreen = rgb{0.56, 0.93, 0.56}
	colPink       = rgb{1.00, 0.75, 0.80}
	colRed        = rgb{0.86, 0.20, 0.27}
	colBlue       = rgb{0.26, 0.45, 0.76}
	colLightBlue  = rgb{0.68, 0.85, 0.90}
	colGray       = rgb{0.55, 0.55, 0.55}
	colInk        = rgb{0.10, 0.10, 0.12}
)

func phaseTint(p breath.Phase) rgb {
	if p == breath.PhaseExhale {
		return colLightGreen
	}
	return colSkyBlue
}

// WritePNG renders one frame snapshot to w at the given pixel size.
func WritePNG(w io.Writer, g shape.Geometry, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	fw, fh := float64(width), float64(height)

	switch g.Style {
	case breath.StyleCircle:
		// Square reference frame centered in the image.
		frame := fw
		if fh < fw {
			frame = fh
		}
		cx, cy := fw/2, fh/2

		dc.SetRGBA(colSkyBlue.r, colSkyBlue.g, colSkyBlue.b, 0.7)
		dc.DrawCircle(cx, cy, g.Radius*frame)
		dc.Fill()

		dc.SetRGBA(colGray.r, colGray.g, colGray.b, 0.5)
		dc.SetLineWidth(2)
		dc.SetDash(8, 6)
		dc.DrawCircle(cx, cy, g.Reference*frame)
		dc.Stroke()
		dc.SetDash()

	case breath.StyleLung:
		dc.SetRGBA(colPink.r, colPink.g, colPink.b, 0.7)
		tracePath(dc, g.Upper, g.XMax, fw, fh, false)
		tracePath(dc, g.Lower, g.XMax, fw, fh, true)
		dc.ClosePath()
		dc.FillPreserve()
		dc.SetRGBA(colRed.r, colRed.g, colRed.b, 0.8)
		dc.SetLineWidth(2)
		dc.Stroke()

	case breath.StyleWave:
		// Fill between the baseline and the curve, then stroke the curve.
		dc.SetRGBA(colLightBlue.r, colLightBlue.g, colLightBlue.b, 0.7)
		tracePath(dc, g.Curve, g.XMax, fw, fh, false)
		dc.LineTo(fw, fh*(1-shape.Baseline))
		dc.LineTo(0, fh*(1-shape.Baseline))
		dc.ClosePath()
		dc.Fill()

		dc.SetRGB(colBlue.r, colBlue.g, colBlue.b)
		dc.SetLineWidth(3)
		tracePath(dc, g.Curve, g.XMax, fw, fh, false)
		dc.Stroke()

	default:
		return fmt.Errorf("unknown visualization style: %q", g.Style)
	}

	tint := phaseTint(g.Phase)
	dc.SetRGB(tint.r, tint.g, tint.b)
	dc.DrawStringAnchored(g.Phase.Heading(), fw/2, fh*0.06, 0.5, 0.5)

	dc.SetRGB(colInk.r, colInk.g, colInk.b)
	dc.DrawStringAnchored(g.Label, fw/2, fh*0.95, 0.5, 0.5)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// tracePath adds the sampled curve to the current path, scaled to pixels.
// Reversed tracing lets two curves join into one fillable outline.
func tracePath(dc *gg.Context, points []shape.Point, xMax, fw, fh float64, reverse bool) {
	for i := range points {
		p := points[i]
		if reverse {
			p = points[len(points)-1-i]
		}
		px := p.X / xMax * fw
		py := (1 - p.Y) * fh
		if i == 0 && !reverse {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
}
