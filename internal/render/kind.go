package render

import (
	"image/color"

	"github.com/alexiusacademia/godiag/internal/frame"
	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/response"
)

// Kind selects the diagram to render.
type Kind int

const (
	Deformation Kind = iota
	Axial
	Shear
	Moment
	Ratio
)

func (k Kind) String() string {
	switch k {
	case Deformation:
		return "deformation"
	case Axial:
		return "axial"
	case Shear:
		return "shear"
	case Moment:
		return "moment"
	case Ratio:
		return "ratio"
	}
	return "unknown"
}

// planeAxis picks the transverse response axis shown in a plane: xy
// frames show the Qy/Mz pair, the other planes the Qz/My pair.
func planeAxis(p frame.PlaneMode) response.Axis {
	if p == frame.PlaneXY {
		return response.AxisY
	}
	return response.AxisZ
}

// kindSpec is one row of the diagram dispatch table: how to extract the
// plotted value, how to scale it and when a frame qualifies.
type kindSpec struct {
	// fraction of the smaller drawable dimension granted to the peak
	// value when sizing the pixel scale.
	fraction float64
	// threshold a frame's response must reach to be emitted.
	threshold float64
	// flip draws positive values on the opposite side of the member
	// (moments are drawn on the tension side).
	flip bool
	fill color.RGBA
	line color.RGBA
	value func(ev *response.Evaluator, mdl *model.Model, p frame.PlaneMode, m int, xi float64) float64
}

var kindSpecs = map[Kind]kindSpec{
	Axial: {
		fraction:  0.06,
		threshold: 0.001,
		fill:      color.RGBA{R: 70, G: 130, B: 180, A: 90},
		line:      color.RGBA{R: 70, G: 130, B: 180, A: 255},
		value: func(ev *response.Evaluator, _ *model.Model, _ frame.PlaneMode, m int, xi float64) float64 {
			return ev.Axial(m, xi)
		},
	},
	Shear: {
		fraction:  0.06,
		threshold: 0.001,
		fill:      color.RGBA{R: 60, G: 160, B: 60, A: 90},
		line:      color.RGBA{R: 60, G: 160, B: 60, A: 255},
		value: func(ev *response.Evaluator, _ *model.Model, p frame.PlaneMode, m int, xi float64) float64 {
			return ev.Shear(m, planeAxis(p), xi)
		},
	},
	Moment: {
		fraction:  0.06,
		threshold: 0.001,
		flip:      true,
		fill:      color.RGBA{R: 200, G: 80, B: 80, A: 90},
		line:      color.RGBA{R: 200, G: 80, B: 80, A: 255},
		value: func(ev *response.Evaluator, _ *model.Model, p frame.PlaneMode, m int, xi float64) float64 {
			return ev.Moment(m, planeAxis(p), xi)
		},
	},
	Ratio: {
		fraction:  0.08,
		threshold: 0.001,
		value: func(_ *response.Evaluator, mdl *model.Model, _ frame.PlaneMode, m int, xi float64) float64 {
			return mdl.RatioAt(m, xi)
		},
	},
}

// deformationThreshold is the in-plane displacement magnitude below
// which a frame is considered visually at rest.
const deformationThreshold = 0.01

// RatioColor maps a capacity ratio to its status color; 1.0 and above
// means the section check fails.
func RatioColor(v float64) color.RGBA {
	switch {
	case v < 0.5:
		return color.RGBA{R: 0, G: 160, B: 0, A: 255}
	case v < 0.7:
		return color.RGBA{R: 130, G: 200, B: 60, A: 255}
	case v < 0.9:
		return color.RGBA{R: 230, G: 195, B: 0, A: 255}
	case v < 1.0:
		return color.RGBA{R: 240, G: 140, B: 0, A: 255}
	default:
		return color.RGBA{R: 215, G: 25, B: 25, A: 255}
	}
}
