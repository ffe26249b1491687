// Package response recovers continuous per-member response curves
// (axial force, shear, bending moment and deformed shape) from the
// discrete nodal and end-force data of the input snapshot. All
// evaluations are pure functions of (member, normalized position).
package response

import (
	"math"

	"github.com/alexiusacademia/godiag/internal/model"
)

// Axis selects the transverse direction of a shear or moment curve.
// AxisY pairs the local-y shear Qy with the bending moment Mz; AxisZ
// pairs Qz with My.
type Axis int

const (
	AxisY Axis = iota
	AxisZ
)

const (
	// lengthEps guards divisions by member length.
	lengthEps = 1e-9
	// degenerateLength is the span below which a member has no defined
	// response curve at all.
	degenerateLength = 1e-10
)

// Evaluator computes response curves for the members of one model
// snapshot. It holds no mutable state and is safe to share.
type Evaluator struct {
	mdl *model.Model
}

// New returns an Evaluator over mdl.
func New(mdl *model.Model) *Evaluator {
	return &Evaluator{mdl: mdl}
}

// resolve walks a fallback chain of optional components and returns the
// first one present, reporting whether any was.
func resolve(chain ...*float64) (float64, bool) {
	for _, p := range chain {
		if p != nil {
			return *p, true
		}
	}
	return 0, false
}

// value is resolve with a zero default.
func value(chain ...*float64) float64 {
	v, _ := resolve(chain...)
	return v
}

// Axial returns the axial force at normalized position xi, linearly
// interpolated between the reported end values.
func (e *Evaluator) Axial(m int, xi float64) float64 {
	f := e.mdl.Force(m)
	if f == nil {
		return 0
	}
	ni := value(f.Ni)
	nj := value(f.Nj, f.Ni)
	return ni + (nj-ni)*xi
}

// endShears resolves the end shears for the chosen axis. A missing far
// end falls back to the near end, making the curve constant.
func endShears(f *model.MemberForce, axis Axis) (qi, qj float64) {
	if axis == AxisZ {
		qi = value(f.Qzi, f.Qi)
		qj, _ = resolveOr(qi, f.Qzj, f.Qj)
		return qi, qj
	}
	qi = value(f.Qyi, f.Qi)
	qj, _ = resolveOr(qi, f.Qyj, f.Qj)
	return qi, qj
}

func resolveOr(def float64, chain ...*float64) (float64, bool) {
	if v, ok := resolve(chain...); ok {
		return v, true
	}
	return def, false
}

// uniformLoad returns the distributed load used for shear and moment
// curves along axis: the supplied known load when present, otherwise the
// equivalent uniform load implied by the end-shear difference.
func uniformLoad(f *model.MemberForce, axis Axis, qi, qj, length float64) float64 {
	var known *float64
	if axis == AxisZ {
		known = f.Wz
	} else {
		known = f.W
	}
	if known != nil {
		return *known
	}
	if length < lengthEps {
		return 0
	}
	return (qi - qj) / length
}

// Shear returns the shear force at normalized position xi assuming the
// load is uniform over the member.
func (e *Evaluator) Shear(m int, axis Axis, xi float64) float64 {
	f := e.mdl.Force(m)
	if f == nil {
		return 0
	}
	length := e.mdl.MemberLength(m)
	qi, qj := endShears(f, axis)
	w := uniformLoad(f, axis, qi, qj, length)
	return qi - w*xi*length
}

// Moment returns the bending moment at normalized position xi. The open
// form M_i + Q_i·x - w·x²/2 is corrected linearly so the curve lands
// exactly on the reported M_j; this is a first-order blend, not an exact
// reconstruction when the true load shape is not uniform.
func (e *Evaluator) Moment(m int, axis Axis, xi float64) float64 {
	f := e.mdl.Force(m)
	if f == nil {
		return 0
	}
	length := e.mdl.MemberLength(m)
	qi, qj := endShears(f, axis)
	var mi, mj float64
	if axis == AxisZ {
		mi = value(f.Myi, f.Mi)
		mj, _ = resolveOr(mi, f.Myj, f.Mj)
	} else {
		mi = value(f.Mzi, f.Mi)
		mj, _ = resolveOr(mi, f.Mzj, f.Mj)
	}
	w := uniformLoad(f, axis, qi, qj, length)

	x := xi * length
	raw := mi + qi*x - 0.5*w*x*x
	if length < lengthEps {
		return raw
	}
	endPredicted := mi + qi*length - 0.5*w*length*length
	delta := endPredicted - mj
	return raw - delta*(x/length)
}

// MaxAbsCurve samples a curve at n+1 evenly spaced positions and returns
// the largest absolute value seen.
func MaxAbsCurve(n int, at func(xi float64) float64) float64 {
	if n < 1 {
		n = 1
	}
	var max float64
	for k := 0; k <= n; k++ {
		v := math.Abs(at(float64(k) / float64(n)))
		if v > max {
			max = v
		}
	}
	return max
}
