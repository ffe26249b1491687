// Package render orchestrates diagram drawing: it discovers the
// projection frames, resolves display scales, samples the response
// evaluator and issues all drawing-surface calls, delegating callout
// placement to the layout engine. One Render call is a complete,
// self-contained recomputation; nothing is cached between calls.
package render

import (
	"fmt"
	"image/color"
	"math"

	"go.uber.org/zap"

	"github.com/alexiusacademia/godiag/internal/frame"
	"github.com/alexiusacademia/godiag/internal/layout"
	"github.com/alexiusacademia/godiag/internal/model"
	"github.com/alexiusacademia/godiag/internal/response"
	"github.com/alexiusacademia/godiag/internal/scale"
)

// Config tunes canvas geometry and sampling. Zero values take defaults.
type Config struct {
	FrameWidth   float64 // per-frame viewport width, logical pixels
	FrameHeight  float64 // per-frame viewport height
	Padding      float64 // gap around and between frames
	Margin       float64 // drawable margin inside each frame
	PixelRatio   float64 // device pixel density multiplier
	Subdivisions int     // samples per member curve
	ManualScale  float64 // deformation scale override; 0 solves it
	Logger       *zap.Logger
}

func (c *Config) setDefaults() {
	if c.FrameWidth <= 0 {
		c.FrameWidth = 420
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = 320
	}
	if c.Padding <= 0 {
		c.Padding = 16
	}
	if c.Margin <= 0 {
		c.Margin = 40
	}
	if c.PixelRatio <= 0 {
		c.PixelRatio = 1
	}
	if c.Subdivisions < 1 {
		c.Subdivisions = 20
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Result reports what a render pass produced.
type Result struct {
	Frames int     // qualifying frames drawn
	Scale  float64 // resolved display or pixel scale
}

// Renderer draws diagrams for one model snapshot.
type Renderer struct {
	mdl *model.Model
	ev  *response.Evaluator
	cfg Config
	log *zap.Logger
}

// New returns a Renderer over mdl.
func New(mdl *model.Model, cfg Config) *Renderer {
	cfg.setDefaults()
	return &Renderer{
		mdl: mdl,
		ev:  response.New(mdl),
		cfg: cfg,
		log: cfg.Logger,
	}
}

var (
	colBackground = color.RGBA{R: 252, G: 252, B: 250, A: 255}
	colBorder     = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	colUndeformed = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	colDeformed   = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	colNode       = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	colLabel      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colMemberTag  = color.RGBA{R: 110, G: 110, B: 110, A: 255}
	colOutline    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	labelSize   = 10.0
	labelPad    = 3.0
	labelGap    = 12.0
	nodeMarker  = 3.0
	curveWidth  = 1.8
	envelopeEps = 1e-9
)

// Render draws the diagram of kind k onto s and returns the number of
// frames drawn and the resolved scale. A nil surface, an empty model or
// an all-quiet response draws nothing.
func (r *Renderer) Render(s Surface, k Kind) Result {
	if s == nil || len(r.mdl.Nodes) == 0 || len(r.mdl.Members) == 0 {
		return Result{}
	}
	frames := frame.Build(r.mdl, r.probe(k))
	if len(frames) == 0 {
		r.log.Debug("no qualifying frames", zap.String("kind", k.String()))
		return Result{}
	}

	n := float64(len(frames))
	canvasW := n*r.cfg.FrameWidth + (n+1)*r.cfg.Padding
	canvasH := r.cfg.FrameHeight + 2*r.cfg.Padding
	s.Begin(int(math.Ceil(canvasW)), int(math.Ceil(canvasH)), r.cfg.PixelRatio)

	for i, f := range frames {
		x := r.cfg.Padding + float64(i)*(r.cfg.FrameWidth+r.cfg.Padding)
		f.SetViewport(x, r.cfg.Padding, r.cfg.FrameWidth, r.cfg.FrameHeight, r.cfg.Margin)
	}

	resolved := r.resolveScale(k, frames)
	r.log.Debug("render",
		zap.String("kind", k.String()),
		zap.Int("frames", len(frames)),
		zap.Float64("scale", resolved))

	for _, f := range frames {
		r.drawFrame(s, f, k, resolved)
	}
	return Result{Frames: len(frames), Scale: resolved}
}

// probe builds the frame-qualification probe for kind k.
func (r *Renderer) probe(k Kind) frame.Probe {
	if k == Deformation {
		field := r.mdl.Displacements
		return frame.Probe{
			Threshold: deformationThreshold,
			NodeValue: func(p frame.PlaneMode, n int) float64 {
				if field == nil {
					return 0
				}
				u, v := p.Project(field.Translation(n))
				return math.Hypot(u, v)
			},
		}
	}
	spec := kindSpecs[k]
	return frame.Probe{
		Threshold: spec.threshold,
		MemberValue: func(p frame.PlaneMode, m int) float64 {
			return response.MaxAbsCurve(r.cfg.Subdivisions, func(xi float64) float64 {
				return spec.value(r.ev, r.mdl, p, m, xi)
			})
		},
	}
}

func (r *Renderer) resolveScale(k Kind, frames []*frame.Frame) float64 {
	if k == Deformation {
		return scale.Displacement(r.mdl, r.ev, frames, r.cfg.ManualScale, r.cfg.Subdivisions)
	}
	spec := kindSpecs[k]
	var globalMax float64
	for _, f := range frames {
		for _, m := range f.Members {
			v := response.MaxAbsCurve(r.cfg.Subdivisions, func(xi float64) float64 {
				return spec.value(r.ev, r.mdl, f.Plane, m, xi)
			})
			if v > globalMax {
				globalMax = v
			}
		}
	}
	drawW := r.cfg.FrameWidth - 2*r.cfg.Margin
	drawH := r.cfg.FrameHeight - 2*r.cfg.Margin
	return scale.Pixel(r.mdl, frames, spec.fraction, globalMax, drawW, drawH, r.cfg.Subdivisions,
		func(f *frame.Frame, m int, xi float64) float64 {
			return spec.value(r.ev, r.mdl, f.Plane, m, xi)
		})
}

func (r *Renderer) drawFrame(s Surface, f *frame.Frame, k Kind, resolved float64) {
	s.Save()
	defer s.Restore()
	s.ClipRect(f.OriginX, f.OriginY, f.DrawW, f.DrawH)
	s.FillRect(f.OriginX, f.OriginY, f.DrawW, f.DrawH, colBackground)
	s.StrokeRect(f.OriginX, f.OriginY, f.DrawW, f.DrawH, Stroke{Width: 1, Color: colBorder})

	title := fmt.Sprintf("plane %s @ %.2f", f.Plane, f.Coord)
	s.DrawText(title, f.OriginX+f.DrawW/2, f.OriginY+labelSize+2, TextStyle{Size: labelSize, Color: colMemberTag})

	r.drawUndeformed(s, f)

	var envelopes []envelope
	if k == Deformation {
		r.drawDeformed(s, f, resolved)
	} else {
		envelopes = r.drawEnvelopes(s, f, k, resolved)
	}

	var obstacles []layout.Rect
	r.drawNodeCallouts(s, f, &obstacles)
	r.drawMemberCallouts(s, f, &obstacles)
	for _, env := range envelopes {
		r.drawValueCallouts(s, f, k, env, &obstacles)
	}
}

// envelope carries one member's drawn envelope geometry to the value
// callout pass.
type envelope struct {
	member int
	peak   float64
	peakXi float64
	tx, ty float64
	offset []layout.Point
}

func (r *Renderer) drawUndeformed(s Surface, f *frame.Frame) {
	for _, m := range f.Members {
		mb := r.mdl.Members[m]
		x1, y1 := f.PixelPoint(r.mdl.Nodes[mb.I].Point())
		x2, y2 := f.PixelPoint(r.mdl.Nodes[mb.J].Point())
		s.StrokePath([]layout.Point{{X: x1, Y: y1}, {X: x2, Y: y2}},
			Stroke{Width: 1, Color: colUndeformed})
	}
}

func (r *Renderer) drawDeformed(s Surface, f *frame.Frame, dispScale float64) {
	if dispScale <= 0 {
		return
	}
	for _, m := range f.Members {
		pts := make([]layout.Point, 0, r.cfg.Subdivisions+1)
		for k := 0; k <= r.cfg.Subdivisions; k++ {
			xi := float64(k) / float64(r.cfg.Subdivisions)
			p, ok := r.ev.Deformation(m, xi, dispScale)
			if !ok {
				pts = nil
				break
			}
			px, py := f.PixelPoint(p)
			pts = append(pts, layout.Point{X: px, Y: py})
		}
		if len(pts) > 1 {
			s.StrokePath(pts, Stroke{Width: curveWidth, Color: colDeformed})
		}
	}
}

// drawEnvelopes draws the filled response envelope of every member that
// carries a value and returns their geometry for the callout pass.
func (r *Renderer) drawEnvelopes(s Surface, f *frame.Frame, k Kind, pxScale float64) []envelope {
	if pxScale <= 0 {
		return nil
	}
	var envs []envelope
	spec := kindSpecs[k]
	side := 1.0
	if spec.flip {
		side = -1
	}
	for _, m := range f.Members {
		mb := r.mdl.Members[m]
		pi := r.mdl.Nodes[mb.I].Point()
		span := r.mdl.Nodes[mb.J].Point().Sub(pi)

		x1, y1 := f.PixelPoint(pi)
		x2, y2 := f.PixelPoint(pi.Add(span))
		tx, ty := x2-x1, y2-y1
		tlen := math.Hypot(tx, ty)
		if tlen < envelopeEps {
			continue
		}
		tx, ty = tx/tlen, ty/tlen
		nx, ny := -ty, tx

		base := make([]layout.Point, 0, r.cfg.Subdivisions+1)
		offset := make([]layout.Point, 0, r.cfg.Subdivisions+1)
		peak, peakXi := 0.0, 0.0
		any := false
		for kk := 0; kk <= r.cfg.Subdivisions; kk++ {
			xi := float64(kk) / float64(r.cfg.Subdivisions)
			v := spec.value(r.ev, r.mdl, f.Plane, m, xi)
			bx, by := f.PixelPoint(pi.Add(span.Scale(xi)))
			d := v * pxScale * side
			base = append(base, layout.Point{X: bx, Y: by})
			offset = append(offset, layout.Point{X: bx + nx*d, Y: by + ny*d})
			if math.Abs(v) > math.Abs(peak) {
				peak, peakXi = v, xi
			}
			if math.Abs(v) > spec.threshold {
				any = true
			}
		}
		if !any {
			continue
		}

		poly := make([]layout.Point, 0, len(base)+len(offset))
		poly = append(poly, base...)
		for i := len(offset) - 1; i >= 0; i-- {
			poly = append(poly, offset[i])
		}
		fill, line := spec.fill, spec.line
		if k == Ratio {
			line = RatioColor(r.mdl.MaxRatio(m))
			fill = line
			fill.A = 90
		}
		s.FillPolygon(poly, fill)
		s.StrokePath(offset, Stroke{Width: 1.2, Color: line})

		envs = append(envs, envelope{member: m, peak: peak, peakXi: peakXi, tx: tx, ty: ty, offset: offset})
	}
	return envs
}

// drawValueCallouts writes the end values and the peak value of one
// member's envelope, outlined for legibility over the fill.
func (r *Renderer) drawValueCallouts(s Surface, f *frame.Frame, k Kind, env envelope, obstacles *[]layout.Rect) {
	spec := kindSpecs[k]
	m, peak, peakXi := env.member, env.peak, env.peakXi
	offset := env.offset
	vi := spec.value(r.ev, r.mdl, f.Plane, m, 0)
	vj := spec.value(r.ev, r.mdl, f.Plane, m, 1)

	type callout struct {
		text   string
		anchor layout.Point
		show   bool
	}
	last := len(offset) - 1
	peakIdx := int(peakXi * float64(last))
	callouts := []callout{
		{formatValue(vi), offset[0], math.Abs(vi) > spec.threshold},
		{formatValue(vj), offset[last], math.Abs(vj) > spec.threshold},
		{formatValue(peak), offset[peakIdx], peakIdx != 0 && peakIdx != last && math.Abs(peak) > spec.threshold},
	}
	style := TextStyle{Size: labelSize, Color: spec.line, Outline: colOutline}
	if k == Ratio {
		style.Color = RatioColor(r.mdl.MaxRatio(m))
	}
	cands := layout.DirectionalOffsets(env.tx, env.ty, labelGap)
	for _, c := range callouts {
		if !c.show {
			continue
		}
		w, h := s.MeasureText(c.text, labelSize)
		pl := layout.Place(c.anchor, w+2*labelPad, h+2*labelPad, cands, *obstacles)
		s.DrawText(c.text, pl.At.X, pl.At.Y, style)
		*obstacles = append(*obstacles, pl.Rect)
	}
}

func (r *Renderer) drawNodeCallouts(s Surface, f *frame.Frame, obstacles *[]layout.Rect) {
	cands := layout.DefaultOffsets(labelGap)
	for _, n := range f.Nodes {
		px, py := f.PixelPoint(r.mdl.Nodes[n].Point())
		s.FillRect(px-nodeMarker, py-nodeMarker, 2*nodeMarker, 2*nodeMarker, colNode)

		text := fmt.Sprintf("%d", n)
		w, h := s.MeasureText(text, labelSize)
		pl := layout.Place(layout.Point{X: px, Y: py}, w+2*labelPad, h+2*labelPad, cands, *obstacles)
		s.DrawText(text, pl.At.X, pl.At.Y, TextStyle{Size: labelSize, Color: colLabel})
		*obstacles = append(*obstacles, pl.Rect)
	}
}

func (r *Renderer) drawMemberCallouts(s Surface, f *frame.Frame, obstacles *[]layout.Rect) {
	for _, m := range f.Members {
		mb := r.mdl.Members[m]
		x1, y1 := f.PixelPoint(r.mdl.Nodes[mb.I].Point())
		x2, y2 := f.PixelPoint(r.mdl.Nodes[mb.J].Point())
		tx, ty := x2-x1, y2-y1
		tlen := math.Hypot(tx, ty)
		if tlen < envelopeEps {
			continue
		}
		text := fmt.Sprintf("(%d)", m)
		w, h := s.MeasureText(text, labelSize)
		mid := layout.Point{X: (x1 + x2) / 2, Y: (y1 + y2) / 2}
		pl := layout.Place(mid, w+2*labelPad, h+2*labelPad,
			layout.DirectionalOffsets(tx/tlen, ty/tlen, labelGap), *obstacles)
		s.DrawText(text, pl.At.X, pl.At.Y, TextStyle{Size: labelSize, Color: colMemberTag})
		*obstacles = append(*obstacles, pl.Rect)
	}
}

func formatValue(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
