package response

import (
	"math"

	"github.com/alexiusacademia/godiag/internal/model"
)

// hermite returns the four cubic Hermite basis values at xi.
func hermite(xi float64) (h1, h2, h3, h4 float64) {
	x2 := xi * xi
	x3 := x2 * xi
	h1 = 1 - 3*x2 + 2*x3
	h2 = xi - 2*x2 + x3
	h3 = 3*x2 - 2*x3
	h4 = -x2 + x3
	return
}

// localAxes builds a right-handed member frame from the unit tangent t.
// The reference axis flips when the member runs nearly parallel to it.
func localAxes(t model.Point3) (ny, nz model.Point3) {
	ref := model.Point3{Z: 1}
	if math.Abs(t.Dot(ref)) > 0.99 {
		ref = model.Point3{Y: 1}
	}
	ny = ref.Cross(t)
	n := ny.Norm()
	if n < lengthEps {
		return model.Point3{Y: 1}, model.Point3{Z: 1}
	}
	ny = ny.Scale(1 / n)
	nz = t.Cross(ny)
	return ny, nz
}

// Deformation returns the deformed position of member m at normalized
// position xi, with the computed deformation scaled by dispScale. In
// planar analysis the nodal translations interpolate linearly; in
// spatial analysis the transverse components follow a cubic Hermite
// curve through the end rotations so the bent shape is reproduced.
// Degenerate members and missing displacement data report ok = false.
func (e *Evaluator) Deformation(m int, xi, dispScale float64) (model.Point3, bool) {
	field := e.mdl.Displacements
	if field == nil || m < 0 || m >= len(e.mdl.Members) {
		return model.Point3{}, false
	}
	mb := e.mdl.Members[m]
	pi := e.mdl.Nodes[mb.I].Point()
	pj := e.mdl.Nodes[mb.J].Point()
	span := pj.Sub(pi)
	length := span.Norm()
	if length < degenerateLength {
		return model.Point3{}, false
	}

	di := field.Translation(mb.I)
	dj := field.Translation(mb.J)
	base := pi.Add(span.Scale(xi))

	if field.Dof() == 3 {
		d := di.Add(dj.Sub(di).Scale(xi))
		return base.Add(d.Scale(dispScale)), true
	}

	t := span.Scale(1 / length)
	ny, nz := localAxes(t)
	ri := field.Rotation(mb.I)
	rj := field.Rotation(mb.J)

	// Project end translations and rotations onto the member frame.
	ui, uj := di.Dot(t), dj.Dot(t)
	vyi, vyj := di.Dot(ny), dj.Dot(ny)
	vzi, vzj := di.Dot(nz), dj.Dot(nz)
	tzi, tzj := ri.Dot(nz), rj.Dot(nz)
	tyi, tyj := ri.Dot(ny), rj.Dot(ny)

	h1, h2, h3, h4 := hermite(xi)
	u := ui + (uj-ui)*xi
	vy := h1*vyi + h2*length*tzi + h3*vyj + h4*length*tzj
	// Rotation about local y moves the section the opposite way along
	// local z under the right-handed convention.
	vz := h1*vzi - h2*length*tyi + h3*vzj - h4*length*tyj

	d := t.Scale(u).Add(ny.Scale(vy)).Add(nz.Scale(vz))
	return base.Add(d.Scale(dispScale)), true
}
