// Package frame partitions the model into projection frames: one per
// distinct coordinate of each orthogonal structural plane that carries a
// visible response. Each frame owns the 2D projection geometry used to
// map model space onto its slice of the canvas.
package frame

import (
	"math"
	"sort"

	"github.com/alexiusacademia/godiag/internal/model"
)

// PlaneMode identifies one of the three orthogonal projection planes.
type PlaneMode int

const (
	PlaneXY PlaneMode = iota
	PlaneXZ
	PlaneYZ
)

// Modes lists all planes in grouping order.
var Modes = []PlaneMode{PlaneXY, PlaneXZ, PlaneYZ}

func (p PlaneMode) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	}
	return "?"
}

// Project maps a model-space point to the plane's 2D coordinates.
func (p PlaneMode) Project(pt model.Point3) (u, v float64) {
	switch p {
	case PlaneXZ:
		return pt.X, pt.Z
	case PlaneYZ:
		return pt.Y, pt.Z
	default:
		return pt.X, pt.Y
	}
}

// OutOfPlane returns the coordinate perpendicular to the plane.
func (p PlaneMode) OutOfPlane(pt model.Point3) float64 {
	switch p {
	case PlaneXZ:
		return pt.Y
	case PlaneYZ:
		return pt.X
	default:
		return pt.Z
	}
}

// CoordTol merges near-duplicate out-of-plane coordinates and decides
// endpoint membership in a candidate plane.
const CoordTol = 0.01

// Frame is one qualifying projection plane instance together with its
// derived display geometry. Frames live for a single render pass.
type Frame struct {
	Plane   PlaneMode
	Coord   float64
	Nodes   []int
	Members []int

	// Bounding box of the visible members' projected endpoints.
	MinU, MinV float64
	MaxU, MaxV float64
	CenterU    float64
	CenterV    float64

	// Scale maps model units to pixels; set by SetViewport.
	Scale float64

	// Viewport placement on the canvas, in pixels.
	OriginX float64
	OriginY float64
	DrawW   float64
	DrawH   float64
	Margin  float64
}

// Probe decides whether a candidate frame carries a visible response.
// NodeValue reports the magnitude relevant to the diagram at one node as
// seen in the given plane; MemberValue reports the peak magnitude along
// one member. Either may be nil.
type Probe struct {
	NodeValue   func(p PlaneMode, n int) float64
	MemberValue func(p PlaneMode, m int) float64
	Threshold   float64
}

// Build discovers all qualifying frames of the model: for each plane,
// one candidate per merged out-of-plane coordinate, retained when at
// least one member lies fully in-plane and the probed response reaches
// the threshold somewhere in it.
func Build(mdl *model.Model, probe Probe) []*Frame {
	var frames []*Frame
	for _, mode := range Modes {
		for _, coord := range planeCoords(mdl, mode) {
			f := candidate(mdl, mode, coord)
			if f == nil {
				continue
			}
			if !qualifies(f, probe) {
				continue
			}
			f.computeBounds(mdl)
			frames = append(frames, f)
		}
	}
	return dropSubsumed(frames)
}

// dropSubsumed removes frames whose member set is contained in another
// frame's set: a member visible in two planes would otherwise produce
// the same diagram twice. Equal sets keep the earliest plane.
func dropSubsumed(frames []*Frame) []*Frame {
	sets := make([]map[int]bool, len(frames))
	for i, f := range frames {
		sets[i] = make(map[int]bool, len(f.Members))
		for _, m := range f.Members {
			sets[i][m] = true
		}
	}
	covers := func(j, i int) bool {
		for m := range sets[i] {
			if !sets[j][m] {
				return false
			}
		}
		return true
	}
	var out []*Frame
	for i := range frames {
		subsumed := false
		for j := range frames {
			if j == i || len(sets[j]) < len(sets[i]) {
				continue
			}
			if len(sets[j]) == len(sets[i]) && j > i {
				continue
			}
			if covers(j, i) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, frames[i])
		}
	}
	return out
}

// planeCoords collects the distinct out-of-plane coordinates of all
// nodes, merging values closer than CoordTol.
func planeCoords(mdl *model.Model, mode PlaneMode) []float64 {
	vals := make([]float64, 0, len(mdl.Nodes))
	for _, n := range mdl.Nodes {
		vals = append(vals, mode.OutOfPlane(n.Point()))
	}
	sort.Float64s(vals)
	var merged []float64
	for _, v := range vals {
		if len(merged) == 0 || v-merged[len(merged)-1] > CoordTol {
			merged = append(merged, v)
		}
	}
	return merged
}

// candidate builds the frame at one plane coordinate, or nil when no
// member lies fully in-plane.
func candidate(mdl *model.Model, mode PlaneMode, coord float64) *Frame {
	inPlane := make([]bool, len(mdl.Nodes))
	var nodes []int
	for i, n := range mdl.Nodes {
		if math.Abs(mode.OutOfPlane(n.Point())-coord) <= CoordTol {
			inPlane[i] = true
			nodes = append(nodes, i)
		}
	}
	var members []int
	for k, mb := range mdl.Members {
		if inPlane[mb.I] && inPlane[mb.J] {
			members = append(members, k)
		}
	}
	if len(members) == 0 {
		return nil
	}
	return &Frame{Plane: mode, Coord: coord, Nodes: nodes, Members: members}
}

func qualifies(f *Frame, probe Probe) bool {
	if probe.NodeValue != nil {
		for _, n := range f.Nodes {
			if probe.NodeValue(f.Plane, n) >= probe.Threshold {
				return true
			}
		}
	}
	if probe.MemberValue != nil {
		for _, m := range f.Members {
			if probe.MemberValue(f.Plane, m) >= probe.Threshold {
				return true
			}
		}
	}
	return false
}

func (f *Frame) computeBounds(mdl *model.Model) {
	first := true
	for _, m := range f.Members {
		mb := mdl.Members[m]
		for _, n := range []int{mb.I, mb.J} {
			u, v := f.Plane.Project(mdl.Nodes[n].Point())
			if first {
				f.MinU, f.MaxU = u, u
				f.MinV, f.MaxV = v, v
				first = false
				continue
			}
			f.MinU = math.Min(f.MinU, u)
			f.MaxU = math.Max(f.MaxU, u)
			f.MinV = math.Min(f.MinV, v)
			f.MaxV = math.Max(f.MaxV, v)
		}
	}
	f.CenterU = (f.MinU + f.MaxU) / 2
	f.CenterV = (f.MinV + f.MaxV) / 2
}

const lengthEps = 1e-9

// SetViewport places the frame on the canvas and derives the base
// geometric scale: the largest uniform scale that fits the bounding box
// in the drawable area, backed off to 90%.
func (f *Frame) SetViewport(x, y, w, h, margin float64) {
	f.OriginX, f.OriginY = x, y
	f.DrawW, f.DrawH = w, h
	f.Margin = margin

	width := f.MaxU - f.MinU
	height := f.MaxV - f.MinV
	availW := w - 2*margin
	availH := h - 2*margin

	scale := math.Inf(1)
	if width > lengthEps {
		scale = availW / width
	}
	if height > lengthEps {
		scale = math.Min(scale, availH/height)
	}
	if math.IsInf(scale, 1) {
		// Point-like frame: any positive scale fits.
		scale = 1
	}
	if !(scale > 0) || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 0
	}
	f.Scale = scale * 0.9
}

// Pixel maps plane coordinates to canvas pixels, y growing downward.
func (f *Frame) Pixel(u, v float64) (px, py float64) {
	px = f.OriginX + f.DrawW/2 + (u-f.CenterU)*f.Scale
	py = f.OriginY + f.DrawH/2 - (v-f.CenterV)*f.Scale
	return px, py
}

// PixelPoint projects a model-space point into the frame and maps it to
// canvas pixels.
func (f *Frame) PixelPoint(p model.Point3) (px, py float64) {
	u, v := f.Plane.Project(p)
	return f.Pixel(u, v)
}

// Inner returns the drawable area inside the margin as left, top,
// right, bottom pixel edges.
func (f *Frame) Inner() (l, t, r, b float64) {
	return f.OriginX + f.Margin, f.OriginY + f.Margin,
		f.OriginX + f.DrawW - f.Margin, f.OriginY + f.DrawH - f.Margin
}
