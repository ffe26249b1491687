package response

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/godiag/internal/model"
)

func fp(v float64) *float64 { return &v }

// beamModel is a single 4 m member along x with the given force record.
func beamModel(t *testing.T, f model.MemberForce) *model.Model {
	t.Helper()
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	mdl.Forces = []model.MemberForce{f}
	return mdl
}

func TestAxialInterpolatesEndValues(t *testing.T) {
	mdl := beamModel(t, model.MemberForce{Ni: fp(10), Nj: fp(-10)})
	ev := New(mdl)

	assert.Equal(t, 10.0, ev.Axial(0, 0))
	assert.Equal(t, -10.0, ev.Axial(0, 1))
	assert.InDelta(t, 0.0, ev.Axial(0, 0.5), 1e-12)

	// Linear: strictly decreasing between the ends.
	prev := ev.Axial(0, 0)
	for k := 1; k <= 10; k++ {
		v := ev.Axial(0, float64(k)/10)
		assert.Less(t, v, prev)
		prev = v
	}
}

func TestAxialFallsBackToNearEnd(t *testing.T) {
	mdl := beamModel(t, model.MemberForce{Ni: fp(7)})
	ev := New(mdl)
	assert.Equal(t, 7.0, ev.Axial(0, 0))
	assert.Equal(t, 7.0, ev.Axial(0, 1))
}

func TestShearEquivalentUniformLoad(t *testing.T) {
	// w_eq = (5 - (-5)) / 4 = 2.5
	mdl := beamModel(t, model.MemberForce{Qi: fp(5), Qj: fp(-5)})
	ev := New(mdl)

	assert.InDelta(t, 5.0, ev.Shear(0, AxisY, 0), 1e-12)
	assert.InDelta(t, 0.0, ev.Shear(0, AxisY, 0.5), 1e-12)
	assert.InDelta(t, -5.0, ev.Shear(0, AxisY, 1), 1e-12)
}

func TestShearPrefersSuppliedLoad(t *testing.T) {
	mdl := beamModel(t, model.MemberForce{Qi: fp(5), Qj: fp(-5), W: fp(1)})
	ev := New(mdl)
	// With w = 1 the curve no longer reaches the reported Q_j.
	assert.InDelta(t, 5.0-1*4, ev.Shear(0, AxisY, 1), 1e-12)
}

func TestShearAxisFallback(t *testing.T) {
	mdl := beamModel(t, model.MemberForce{Qi: fp(3)})
	ev := New(mdl)
	// Missing far end falls back to the near end: constant curve.
	assert.Equal(t, 3.0, ev.Shear(0, AxisY, 0))
	assert.Equal(t, 3.0, ev.Shear(0, AxisY, 1))
	// Axis-specific component wins over the generic one.
	mdl2 := beamModel(t, model.MemberForce{Qi: fp(3), Qzi: fp(9), Qzj: fp(9)})
	ev2 := New(mdl2)
	assert.Equal(t, 9.0, ev2.Shear(0, AxisZ, 0))
}

func TestMomentClosedFormAndCorrection(t *testing.T) {
	// M_i=10, Q_i=5, L=4, w=2.5, M_j=0:
	// raw(x=2) = 10 + 5*2 - 0.5*2.5*4 = 15
	// predicted end = 10 + 20 - 20 = 10, delta = 10
	// corrected(x=2) = 15 - 10*(2/4) = 10
	mdl := beamModel(t, model.MemberForce{
		Mi: fp(10), Mj: fp(0), Qi: fp(5), W: fp(2.5),
	})
	ev := New(mdl)

	assert.InDelta(t, 10.0, ev.Moment(0, AxisY, 0.5), 1e-9)
	assert.InDelta(t, 0.0, ev.Moment(0, AxisY, 1), 1e-9)
	assert.InDelta(t, 10.0, ev.Moment(0, AxisY, 0), 1e-9)
}

func TestMomentAlwaysLandsOnEndMoment(t *testing.T) {
	cases := []model.MemberForce{
		{Mi: fp(3.2), Mj: fp(7), Qi: fp(-2)},
		{Mi: fp(-12), Mj: fp(4.5), Qi: fp(8), Qj: fp(-1)},
		{Mzi: fp(100), Mzj: fp(-40), Qyi: fp(33), Qyj: fp(12), W: fp(5)},
	}
	for _, f := range cases {
		mdl := beamModel(t, f)
		ev := New(mdl)
		var want float64
		switch {
		case f.Mzj != nil:
			want = *f.Mzj
		default:
			want = *f.Mj
		}
		got := ev.Moment(0, AxisY, 1)
		assert.InDelta(t, want, got, 1e-6*math.Max(1, math.Abs(want)))
	}
}

func TestMissingForceRecordIsZero(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	ev := New(mdl)
	assert.Zero(t, ev.Axial(0, 0.5))
	assert.Zero(t, ev.Shear(0, AxisY, 0.5))
	assert.Zero(t, ev.Moment(0, AxisY, 0.5))
}

func TestDeformationLinear2D(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	field, err := model.NewDisplacementField([]float64{0, 0, 0, 0, 0.01, 0}, 2)
	require.NoError(t, err)
	mdl.Displacements = field

	ev := New(mdl)
	p, ok := ev.Deformation(0, 0.5, 1)
	require.True(t, ok)
	assert.InDelta(t, 2.0, p.X, 1e-12)
	assert.InDelta(t, 0.005, p.Y, 1e-12)
}

func TestDeformationHermiteEnds(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	vals := []float64{
		0.001, 0.002, -0.003, 0.01, -0.02, 0.03, // node 0: t, r
		-0.004, 0.005, 0.006, -0.01, 0.02, -0.03, // node 1
	}
	field, err := model.NewDisplacementField(vals, 2)
	require.NoError(t, err)
	mdl.Displacements = field

	ev := New(mdl)
	const scale = 2.5
	p0, ok := ev.Deformation(0, 0, scale)
	require.True(t, ok)
	want0 := mdl.Nodes[0].Point().Add(field.Translation(0).Scale(scale))
	assert.InDelta(t, want0.X, p0.X, 1e-9)
	assert.InDelta(t, want0.Y, p0.Y, 1e-9)
	assert.InDelta(t, want0.Z, p0.Z, 1e-9)

	p1, ok := ev.Deformation(0, 1, scale)
	require.True(t, ok)
	want1 := mdl.Nodes[1].Point().Add(field.Translation(1).Scale(scale))
	assert.InDelta(t, want1.X, p1.X, 1e-9)
	assert.InDelta(t, want1.Y, p1.Y, 1e-9)
	assert.InDelta(t, want1.Z, p1.Z, 1e-9)
}

func TestDeformationRotationBendsInterior(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	// Zero translations, equal and opposite end rotations about z:
	// the member bows symmetrically between fixed ends.
	vals := []float64{
		0, 0, 0, 0, 0, 0.01,
		0, 0, 0, 0, 0, -0.01,
	}
	field, err := model.NewDisplacementField(vals, 2)
	require.NoError(t, err)
	mdl.Displacements = field

	ev := New(mdl)
	q1, ok := ev.Deformation(0, 0.25, 1)
	require.True(t, ok)
	assert.Greater(t, math.Abs(q1.Y-0.0), 1e-9)

	q3, ok := ev.Deformation(0, 0.75, 1)
	require.True(t, ok)
	assert.InDelta(t, q1.Y, q3.Y, 1e-9)

	// v(xi) = L*(H2(xi) - H4(xi))*0.01 peaks at midspan.
	mid, ok := ev.Deformation(0, 0.5, 1)
	require.True(t, ok)
	assert.InDelta(t, 4*0.25*0.01, mid.Y, 1e-9)
}

func TestDeformationDegenerateMember(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 1, Y: 2}, {X: 1, Y: 2}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	field, err := model.NewDisplacementField([]float64{0, 0, 0, 0, 0, 0}, 2)
	require.NoError(t, err)
	mdl.Displacements = field

	_, ok := New(mdl).Deformation(0, 0.5, 1)
	assert.False(t, ok)
}

func TestDeformationWithoutField(t *testing.T) {
	mdl, err := model.NewModel(
		[]model.Node{{X: 0}, {X: 4}},
		[]model.Member{{I: 0, J: 1}},
	)
	require.NoError(t, err)
	_, ok := New(mdl).Deformation(0, 0.5, 1)
	assert.False(t, ok)
}

func TestMaxAbsCurve(t *testing.T) {
	v := MaxAbsCurve(10, func(xi float64) float64 { return -3 * xi })
	assert.InDelta(t, 3.0, v, 1e-12)
}
