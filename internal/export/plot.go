// Package export renders single-member response curves outside the
// multi-frame canvas: publication-style line charts via gonum/plot and
// quick terminal previews via asciigraph.
package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/render"
	"github.com/alexiusacademia/godiag/internal/response"
)

// curveSamples is the sampling density of exported curves.
const curveSamples = 60

// Curve samples the response of kind k along member m and returns the
// positions (in model units from end i) and values.
func Curve(mdl *model.Model, k render.Kind, m int) (xs, ys []float64, err error) {
	if m < 0 || m >= len(mdl.Members) {
		return nil, nil, fmt.Errorf("member %d out of range (members=%d)", m, len(mdl.Members))
	}
	length := mdl.MemberLength(m)
	if length <= 0 {
		return nil, nil, fmt.Errorf("member %d has zero length", m)
	}

	ev := response.New(mdl)
	var at func(xi float64) float64
	switch k {
	case render.Axial:
		at = func(xi float64) float64 { return ev.Axial(m, xi) }
	case render.Shear:
		at = func(xi float64) float64 { return ev.Shear(m, response.AxisY, xi) }
	case render.Moment:
		at = func(xi float64) float64 { return ev.Moment(m, response.AxisY, xi) }
	case render.Ratio:
		at = func(xi float64) float64 { return mdl.RatioAt(m, xi) }
	default:
		return nil, nil, fmt.Errorf("no member curve for %s diagrams", k)
	}

	for i := 0; i <= curveSamples; i++ {
		xi := float64(i) / float64(curveSamples)
		xs = append(xs, xi*length)
		ys = append(ys, at(xi))
	}
	return xs, ys, nil
}

func axisLabel(k render.Kind) string {
	switch k {
	case render.Axial:
		return "Axial force N (kN)"
	case render.Shear:
		return "Shear force V (kN)"
	case render.Moment:
		return "Bending moment M (kN-m)"
	case render.Ratio:
		return "Capacity ratio"
	}
	return ""
}

// SaveCurvePlot writes the response curve of member m to an image file.
// The format follows the extension (png, svg, pdf); anything else gets
// a png suffix.
func SaveCurvePlot(mdl *model.Model, k render.Kind, m int, filename string) error {
	xs, ys, err := Curve(mdl, k, m)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Member %d: %s", m, axisLabel(k))
	p.X.Label.Text = "Position along member (m)"
	p.Y.Label.Text = axisLabel(k)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	p.Add(line)

	zero, err := plotter.NewLine(plotter.XYs{
		{X: xs[0], Y: 0},
		{X: xs[len(xs)-1], Y: 0},
	})
	if err != nil {
		return err
	}
	zero.LineStyle.Width = vg.Points(1)
	zero.LineStyle.Color = color.Gray{Y: 128}
	zero.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zero)

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		os.MkdirAll(dir, 0755)
	}

	width := 8 * vg.Inch
	height := 4 * vg.Inch
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
