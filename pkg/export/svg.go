package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/mvello/breathe/pkg/breath"
	"github.com/mvello/breathe/pkg/shape"
)

// WriteSVG renders one frame snapshot to w as a standalone SVG document.
func WriteSVG(w io.Writer, g shape.Geometry, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	doc := svg.New(w)
	doc.Start(width, height)
	doc.Rect(0, 0, width, height, "fill:white")

	fw, fh := float64(width), float64(height)

	switch g.Style {
	case breath.StyleCircle:
		frame := fw
		if fh < fw {
			frame = fh
		}
		cx, cy := width/2, height/2
		doc.Circle(cx, cy, int(g.Radius*frame),
			"fill:skyblue;fill-opacity:0.7")
		doc.Circle(cx, cy, int(g.Reference*frame),
			"fill:none;stroke:gray;stroke-opacity:0.5;stroke-width:2;stroke-dasharray:8,6")

	case breath.StyleLung:
		xs, ys := outlinePoints(g.Upper, g.Lower, g.XMax, fw, fh)
		doc.Polygon(xs, ys, "fill:pink;fill-opacity:0.7;stroke:crimson;stroke-opacity:0.8;stroke-width:2")

	case breath.StyleWave:
		baseY := int((1 - shape.Baseline) * fh)
		xs, ys := curvePoints(g.Curve, g.XMax, fw, fh)
		fillX := append(append([]int{}, xs...), width, 0)
		fillY := append(append([]int{}, ys...), baseY, baseY)
		doc.Polygon(fillX, fillY, "fill:lightblue;fill-opacity:0.7")
		doc.Polyline(xs, ys, "fill:none;stroke:steelblue;stroke-width:3")

	default:
		doc.End()
		return fmt.Errorf("unknown visualization style: %q", g.Style)
	}

	tint := "skyblue"
	if g.Phase == breath.PhaseExhale {
		tint = "lightgreen"
	}
	doc.Text(width/2, int(fh*0.07), g.Phase.Heading(),
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", height/18, tint))
	doc.Text(width/2, int(fh*0.96), g.Label,
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#1a1a1f", height/20))

	doc.End()
	return nil
}

func curvePoints(points []shape.Point, xMax, fw, fh float64) (xs, ys []int) {
	xs = make([]int, len(points))
	ys = make([]int, len(points))
	for i, p := range points {
		xs[i] = int(p.X / xMax * fw)
		ys[i] = int((1 - p.Y) * fh)
	}
	return xs, ys
}

// outlinePoints joins the upper curve with the reversed lower curve into a
// single closed outline.
func outlinePoints(upper, lower []shape.Point, xMax, fw, fh float64) (xs, ys []int) {
	ux, uy := curvePoints(upper, xMax, fw, fh)
	lx, ly := curvePoints(lower, xMax, fw, fh)
	for i := len(lx) - 1; i >= 0; i-- {
		ux = append(ux, lx[i])
		uy = append(uy, ly[i])
	}
	return ux, uy
}
