// Package scale solves for display scale factors: a global displacement
// magnification for the deformed-shape diagram and per-kind pixel scales
// for force and capacity-ratio envelopes. Every solution is constrained
// so that no sampled point renders outside its frame's drawable margin.
package scale

import (
	"math"

	"github.com/alexiusacademia/godiag/internal/frame"
	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/response"
)

const (
	// pixelEps guards divisions by near-zero pixel deltas.
	pixelEps = 1e-6
	// maxDisplacementScale clamps the global estimate.
	maxDisplacementScale = 100000.0

	// displacementSafety and stressSafety back the solved limits off
	// their exact clip boundary.
	displacementSafety = 0.98
	stressSafety       = 0.95

	// targetFraction sizes the estimated deformation against the
	// structure's bounding diagonal.
	targetFraction = 0.05
)

// guard zeroes non-finite or non-positive scales.
func guard(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return 0
	}
	return s
}

// Displacement solves the deformation display scale. The global target
// aims the peak deformation at a fraction of the structure size; each
// frame then tightens it so no sampled deformed point leaves the
// drawable margin. A positive manual scale bypasses the estimate and is
// used as given.
func Displacement(mdl *model.Model, ev *response.Evaluator, frames []*frame.Frame, manual float64, subdivisions int) float64 {
	if mdl.Displacements == nil || len(frames) == 0 {
		return 0
	}
	if manual > 0 {
		return guard(manual)
	}

	maxDisp := mdl.Displacements.MaxTranslation()
	if maxDisp < pixelEps {
		return 0
	}
	target := mdl.BoundingDiagonal() * targetFraction / maxDisp
	target = guard(target)
	if target > maxDisplacementScale {
		target = maxDisplacementScale
	}
	if target == 0 {
		return 0
	}

	solved := target
	for _, f := range frames {
		limit := frameDisplacementLimit(mdl, ev, f, subdivisions)
		if limit >= 0 && limit < solved {
			solved = limit
		}
	}
	return guard(solved * displacementSafety)
}

// frameDisplacementLimit returns the largest scale that keeps every
// sampled deformed point of f's members inside the drawable margin, or
// -1 when the frame imposes no limit.
func frameDisplacementLimit(mdl *model.Model, ev *response.Evaluator, f *frame.Frame, subdivisions int) float64 {
	if subdivisions < 1 {
		subdivisions = 20
	}
	left, top, right, bottom := f.Inner()
	limit := -1.0
	for _, m := range f.Members {
		mb := mdl.Members[m]
		pi := mdl.Nodes[mb.I].Point()
		pj := mdl.Nodes[mb.J].Point()
		span := pj.Sub(pi)
		for k := 0; k <= subdivisions; k++ {
			xi := float64(k) / float64(subdivisions)
			deformed, ok := ev.Deformation(m, xi, 1)
			if !ok {
				continue
			}
			base := pi.Add(span.Scale(xi))
			bx, by := f.PixelPoint(base)
			dx, dy := f.PixelPoint(deformed)
			du := dx - bx
			dv := dy - by

			for _, axis := range [2]struct {
				delta float64
				avail float64
			}{
				{du, availTowards(du, bx, left, right)},
				{dv, availTowards(dv, by, top, bottom)},
			} {
				if math.Abs(axis.delta) < pixelEps {
					continue
				}
				if axis.avail <= 0 {
					return 0
				}
				s := axis.avail / math.Abs(axis.delta)
				if limit < 0 || s < limit {
					limit = s
				}
			}
		}
	}
	return limit
}

// availTowards returns the pixel distance from pos to the margin edge in
// the direction of motion.
func availTowards(delta, pos, lo, hi float64) float64 {
	if delta >= 0 {
		return hi - pos
	}
	return pos - lo
}

// Pixel solves a force or ratio pixel scale: the value-to-pixel factor
// starting from a fixed fraction of the smaller drawable dimension over
// the global peak magnitude, then limited per frame so every sampled
// offset stays clear of all four drawable edges.
func Pixel(mdl *model.Model, frames []*frame.Frame, fraction, globalMax, drawW, drawH float64, subdivisions int, sample func(f *frame.Frame, m int, xi float64) float64) float64 {
	if globalMax < pixelEps || len(frames) == 0 {
		return 0
	}
	s := fraction * math.Min(drawW, drawH) / globalMax
	s = guard(s)
	if s == 0 {
		return 0
	}
	if subdivisions < 1 {
		subdivisions = 20
	}

	limit := s
	for _, f := range frames {
		left, top, right, bottom := f.Inner()
		for _, m := range f.Members {
			mb := mdl.Members[m]
			pi := mdl.Nodes[mb.I].Point()
			span := mdl.Nodes[mb.J].Point().Sub(pi)
			for k := 0; k <= subdivisions; k++ {
				xi := float64(k) / float64(subdivisions)
				v := math.Abs(sample(f, m, xi))
				if v < pixelEps {
					continue
				}
				px, py := f.PixelPoint(pi.Add(span.Scale(xi)))
				d := math.Min(
					math.Min(px-left, right-px),
					math.Min(py-top, bottom-py),
				)
				if d <= 0 {
					return 0
				}
				if c := d / v; c < limit {
					limit = c
				}
			}
		}
	}
	return guard(limit * stressSafety)
}
